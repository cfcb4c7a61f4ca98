/*
Copyright © 2026 The tdl Authors
*/
package mcp

import (
	"log"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/viper"

	"github.com/taskdeck/tdl/store"
)

// NewServer builds the MCP server with all task and history tools
// registered. The caller runs it over the transport of its choice.
func NewServer(version string, taskStore store.TaskStore, historyStore store.HistoryStore) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "tdl-mcp",
		Version: version,
	}
	server := mcpsdk.NewServer(impl, &mcpsdk.ServerOptions{})
	RegisterCoreTools(server, taskStore, historyStore)
	return server
}

// RegisterCoreTools registers the task and history tools.
func RegisterCoreTools(server *mcpsdk.Server, taskStore store.TaskStore, historyStore store.HistoryStore) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add-task",
		Description: "Create a task from an entry string. Category levels prefix the text: \"l1/l2::text\". Entries with at most one level get the current project prefixed as level 1 unless noProjectPrefix is set.",
	}, addTaskHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "bulk-add-tasks",
		Description: "Create several tasks in one call. Each entry follows the add-task format; items may override noProjectPrefix/project per entry. Items are added independently; a failure partway leaves earlier items in place.",
	}, bulkAddTasksHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list-tasks",
		Description: "List active tasks. Args: currentProjectOnly, filter {category, subcategory, untagged, currentProject, dateFrom, dateTo, searchText}. Returns tasks+count.",
	}, listTasksHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "update-task",
		Description: "Patch the selected task(s). Selector: exactly one of id, ids, filter. Updatable: text, level1-3; clearLevel1-3 remove a category level. Clearing a level with deeper levels still set is rejected.",
	}, updateTaskHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "remove-tasks",
		Description: "Delete the selected task(s) permanently. No history entry is written. Selector: exactly one of id, ids, filter; empty filters are rejected.",
	}, removeTasksHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "complete-tasks",
		Description: "Complete the selected task(s): stamps completedAt and moves them to today's history. Restorable with restore-tasks until the day rolls over.",
	}, completeTasksHandler(taskStore, historyStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "query-history",
		Description: "List tasks completed today. The ledger clears itself on first access of a new local day. Filter date bounds apply to completedAt.",
	}, queryHistoryHandler(historyStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "restore-tasks",
		Description: "Move completed entries back to the active list with their ids and creation times intact, dropping completedAt.",
	}, restoreTasksHandler(taskStore, historyStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "remove-history",
		Description: "Delete the selected entries from today's history.",
	}, removeHistoryHandler(historyStore))
}

func logError(err error) {
	if viper.GetBool("verbose") {
		log.Printf("[MCP ERROR] %v", err)
	}
}

func logInfo(msg string) {
	if viper.GetBool("verbose") {
		log.Printf("[MCP INFO] %s", msg)
	}
}

func logToolCall(toolName string, params interface{}) {
	if viper.GetBool("verbose") {
		log.Printf("[MCP TOOL] %s called with params: %+v", toolName, params)
	}
}
