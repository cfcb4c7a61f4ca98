package mcp

// Converters between store values and MCP wire shapes.

import (
	"time"

	"github.com/taskdeck/tdl/models"
	"github.com/taskdeck/tdl/store"
	"github.com/taskdeck/tdl/types"
)

func taskToPayload(t models.Task) types.TaskPayload {
	return types.TaskPayload{
		ID:           t.ID,
		Text:         t.Text,
		Category:     t.CategoryPath.String(),
		CategoryPath: t.CategoryPath,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}

func entryToPayload(e models.HistoryEntry) types.TaskPayload {
	p := taskToPayload(e.Task)
	p.CompletedAt = e.CompletedAt.Format(time.RFC3339)
	return p
}

func tasksToPayloads(tasks []models.Task) []types.TaskPayload {
	out := make([]types.TaskPayload, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToPayload(t))
	}
	return out
}

func entriesToPayloads(entries []models.HistoryEntry) []types.TaskPayload {
	out := make([]types.TaskPayload, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToPayload(e))
	}
	return out
}

func mutationToResponse(mut store.Mutation) types.MutationResponse {
	return types.MutationResponse{
		Affected:   tasksToPayloads(mut.Affected),
		Collection: tasksToPayloads(mut.Collection),
		Count:      len(mut.Affected),
	}
}

func filterFromParams(p *types.FilterParams) *store.Filter {
	if p == nil {
		return nil
	}
	return &store.Filter{
		Category:       p.Category,
		Subcategory:    p.Subcategory,
		Untagged:       p.Untagged,
		CurrentProject: p.CurrentProject,
		DateFrom:       p.DateFrom,
		DateTo:         p.DateTo,
		SearchText:     p.SearchText,
	}
}

// bulkItemsFromParams flattens the two bulk-add forms into store items. Plain
// entries inherit the call-level options; items with any override field set
// carry explicit per-item options built on top of those defaults.
func bulkItemsFromParams(p types.BulkAddTasksParams) []store.AddItem {
	items := make([]store.AddItem, 0, len(p.Entries)+len(p.Items))
	for _, entry := range p.Entries {
		items = append(items, store.AddItem{Entry: entry})
	}
	for _, it := range p.Items {
		item := store.AddItem{Entry: it.Entry}
		if it.NoProjectPrefix != nil || it.Project != "" {
			opts := store.AddOptions{NoProjectPrefix: p.NoProjectPrefix, Project: p.Project}
			if it.NoProjectPrefix != nil {
				opts.NoProjectPrefix = *it.NoProjectPrefix
			}
			if it.Project != "" {
				opts.Project = it.Project
			}
			item.Options = &opts
		}
		items = append(items, item)
	}
	return items
}

// selectorFromParams maps wire selector params onto the store's tagged
// union. Form validation (exactly one of id/ids/filter) stays in the store.
func selectorFromParams(p types.SelectorParams) store.Selector {
	return store.Selector{
		ID:     p.ID,
		IDs:    p.IDs,
		Filter: filterFromParams(p.Filter),
	}
}

// patchFromParams builds the update patch map. Clear flags win over values
// for the same level; absent fields stay out of the map so they are left
// untouched.
func patchFromParams(p types.UpdateTaskParams) map[string]interface{} {
	patch := make(map[string]interface{})
	if p.Text != "" {
		patch["text"] = p.Text
	}
	if p.Level1 != "" {
		patch["level1"] = p.Level1
	}
	if p.Level2 != "" {
		patch["level2"] = p.Level2
	}
	if p.Level3 != "" {
		patch["level3"] = p.Level3
	}
	if p.ClearLevel1 {
		patch["level1"] = nil
	}
	if p.ClearLevel2 {
		patch["level2"] = nil
	}
	if p.ClearLevel3 {
		patch["level3"] = nil
	}
	return patch
}
