/*
Copyright © 2026 The tdl Authors
*/
package mcp

// History MCP tools: query, restore, remove

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taskdeck/tdl/store"
	"github.com/taskdeck/tdl/types"
)

// queryHistoryHandler lists today's completed tasks
func queryHistoryHandler(historyStore store.HistoryStore) mcpsdk.ToolHandlerFor[types.QueryHistoryParams, types.HistoryListResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.QueryHistoryParams]) (*mcpsdk.CallToolResultFor[types.HistoryListResponse], error) {
		args := params.Arguments
		logToolCall("query-history", args)

		entries, err := historyStore.Query(filterFromParams(args.Filter), args.CurrentProjectOnly)
		if err != nil {
			logError(err)
			return nil, err
		}

		return &mcpsdk.CallToolResultFor[types.HistoryListResponse]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{
				Text: fmt.Sprintf("Found %d completed tasks today", len(entries)),
			}},
			StructuredContent: types.HistoryListResponse{
				Entries: entriesToPayloads(entries),
				Count:   len(entries),
			},
		}, nil
	}
}

// restoreTasksHandler moves completed entries back to the active collection
func restoreTasksHandler(taskStore store.TaskStore, historyStore store.HistoryStore) mcpsdk.ToolHandlerFor[types.RestoreTasksParams, types.MutationResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.RestoreTasksParams]) (*mcpsdk.CallToolResultFor[types.MutationResponse], error) {
		args := params.Arguments
		logToolCall("restore-tasks", args)

		mut, err := taskStore.Restore(selectorFromParams(args.SelectorParams), historyStore)
		if err != nil {
			logError(err)
			return nil, err
		}

		logInfo(fmt.Sprintf("Restored %d tasks", len(mut.Affected)))

		return &mcpsdk.CallToolResultFor[types.MutationResponse]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{
				Text: fmt.Sprintf("Restored %d tasks to the active list", len(mut.Affected)),
			}},
			StructuredContent: mutationToResponse(mut),
		}, nil
	}
}

// removeHistoryHandler deletes entries from today's history
func removeHistoryHandler(historyStore store.HistoryStore) mcpsdk.ToolHandlerFor[types.RemoveHistoryParams, types.HistoryListResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.RemoveHistoryParams]) (*mcpsdk.CallToolResultFor[types.HistoryListResponse], error) {
		args := params.Arguments
		logToolCall("remove-history", args)

		mut, err := historyStore.Remove(selectorFromParams(args.SelectorParams))
		if err != nil {
			logError(err)
			return nil, err
		}

		return &mcpsdk.CallToolResultFor[types.HistoryListResponse]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{
				Text: fmt.Sprintf("Removed %d history entries", len(mut.Affected)),
			}},
			StructuredContent: types.HistoryListResponse{
				Entries: entriesToPayloads(mut.Entries),
				Count:   len(mut.Entries),
			},
		}, nil
	}
}
