/*
Copyright © 2026 The tdl Authors
*/
package mcp

// Basic MCP tools: add, bulk-add, list, update, remove, complete

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taskdeck/tdl/store"
	"github.com/taskdeck/tdl/types"
)

// addTaskHandler creates a new task from an entry string
func addTaskHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.AddTaskParams, types.MutationResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.AddTaskParams]) (*mcpsdk.CallToolResultFor[types.MutationResponse], error) {
		args := params.Arguments
		logToolCall("add-task", args)

		if strings.TrimSpace(args.Entry) == "" {
			return nil, types.NewStoreError("MISSING_ENTRY", "Task entry is required", map[string]interface{}{
				"field": "entry",
			})
		}

		mut, err := taskStore.Add(args.Entry, store.AddOptions{
			NoProjectPrefix: args.NoProjectPrefix,
			Project:         args.Project,
		})
		if err != nil {
			logError(err)
			return nil, err
		}

		task := mut.Affected[0]
		logInfo(fmt.Sprintf("Created task: %s", task.ID))

		return &mcpsdk.CallToolResultFor[types.MutationResponse]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{
				Text: fmt.Sprintf("Created task %q with ID: %s", task.Text, task.ID),
			}},
			StructuredContent: mutationToResponse(mut),
		}, nil
	}
}

// bulkAddTasksHandler creates several tasks in one call
func bulkAddTasksHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.BulkAddTasksParams, types.MutationResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.BulkAddTasksParams]) (*mcpsdk.CallToolResultFor[types.MutationResponse], error) {
		args := params.Arguments
		logToolCall("bulk-add-tasks", args)

		items := bulkItemsFromParams(args)
		if len(items) == 0 {
			return nil, types.NewStoreError("MISSING_ENTRIES", "At least one task entry is required", map[string]interface{}{
				"field": "entries",
			})
		}

		mut, err := taskStore.BulkAdd(items, store.AddOptions{
			NoProjectPrefix: args.NoProjectPrefix,
			Project:         args.Project,
		})
		if err != nil {
			// Adds are independent; report what landed alongside the failure.
			logError(err)
			return nil, fmt.Errorf("bulk add failed after %d of %d items: %w", len(mut.Affected), len(items), err)
		}

		logInfo(fmt.Sprintf("Created %d tasks", len(mut.Affected)))

		return &mcpsdk.CallToolResultFor[types.MutationResponse]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{
				Text: fmt.Sprintf("Created %d tasks", len(mut.Affected)),
			}},
			StructuredContent: mutationToResponse(mut),
		}, nil
	}
}

// listTasksHandler lists active tasks with optional scope and filter
func listTasksHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.ListTasksParams, types.TaskListResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ListTasksParams]) (*mcpsdk.CallToolResultFor[types.TaskListResponse], error) {
		args := params.Arguments
		logToolCall("list-tasks", args)

		tasks, err := taskStore.List(filterFromParams(args.Filter), args.CurrentProjectOnly)
		if err != nil {
			logError(err)
			return nil, err
		}

		return &mcpsdk.CallToolResultFor[types.TaskListResponse]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{
				Text: fmt.Sprintf("Found %d tasks", len(tasks)),
			}},
			StructuredContent: types.TaskListResponse{
				Tasks: tasksToPayloads(tasks),
				Count: len(tasks),
			},
		}, nil
	}
}

// updateTaskHandler patches the selected task(s)
func updateTaskHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.UpdateTaskParams, types.MutationResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.UpdateTaskParams]) (*mcpsdk.CallToolResultFor[types.MutationResponse], error) {
		args := params.Arguments
		logToolCall("update-task", args)

		mut, err := taskStore.Update(selectorFromParams(args.SelectorParams), patchFromParams(args))
		if err != nil {
			logError(err)
			return nil, err
		}

		return &mcpsdk.CallToolResultFor[types.MutationResponse]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{
				Text: fmt.Sprintf("Updated %d tasks", len(mut.Affected)),
			}},
			StructuredContent: mutationToResponse(mut),
		}, nil
	}
}

// removeTasksHandler deletes the selected task(s); no history side effect
func removeTasksHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.RemoveTasksParams, types.MutationResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.RemoveTasksParams]) (*mcpsdk.CallToolResultFor[types.MutationResponse], error) {
		args := params.Arguments
		logToolCall("remove-tasks", args)

		mut, err := taskStore.Remove(selectorFromParams(args.SelectorParams))
		if err != nil {
			logError(err)
			return nil, err
		}

		return &mcpsdk.CallToolResultFor[types.MutationResponse]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{
				Text: fmt.Sprintf("Removed %d tasks", len(mut.Affected)),
			}},
			StructuredContent: mutationToResponse(mut),
		}, nil
	}
}

// completeTasksHandler completes the selected task(s) into today's history
func completeTasksHandler(taskStore store.TaskStore, historyStore store.HistoryStore) mcpsdk.ToolHandlerFor[types.CompleteTasksParams, types.MutationResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.CompleteTasksParams]) (*mcpsdk.CallToolResultFor[types.MutationResponse], error) {
		args := params.Arguments
		logToolCall("complete-tasks", args)

		mut, entries, err := taskStore.Complete(selectorFromParams(args.SelectorParams), historyStore)
		if err != nil {
			logError(err)
			return nil, err
		}

		logInfo(fmt.Sprintf("Completed %d tasks", len(entries)))

		return &mcpsdk.CallToolResultFor[types.MutationResponse]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{
				Text: fmt.Sprintf("Completed %d tasks", len(entries)),
			}},
			StructuredContent: mutationToResponse(mut),
		}, nil
	}
}
