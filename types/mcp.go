/*
Copyright © 2026 The tdl Authors
*/
package types

// MCP Tool Parameter Types

// FilterParams mirror the store filter. All present fields AND together.
type FilterParams struct {
	Category       string `json:"category,omitempty" mcp:"Exact match on category level 1"`
	Subcategory    string `json:"subcategory,omitempty" mcp:"Exact match on category level 2"`
	Untagged       bool   `json:"untagged,omitempty" mcp:"Match only tasks with no category"`
	CurrentProject bool   `json:"currentProject,omitempty" mcp:"Match tasks whose category level 1 equals the current project"`
	DateFrom       string `json:"dateFrom,omitempty" mcp:"Inclusive lower date bound (2006-01-02 or RFC 3339)"`
	DateTo         string `json:"dateTo,omitempty" mcp:"Inclusive upper date bound (2006-01-02 or RFC 3339)"`
	SearchText     string `json:"searchText,omitempty" mcp:"Case-insensitive substring match on task text"`
}

// SelectorParams designate the target task(s). Exactly one of id, ids, or
// filter must be set.
type SelectorParams struct {
	ID     string        `json:"id,omitempty" mcp:"Target a single task by id"`
	IDs    []string      `json:"ids,omitempty" mcp:"Target a set of tasks by id (must be non-empty)"`
	Filter *FilterParams `json:"filter,omitempty" mcp:"Target every task matching this filter (must have at least one field)"`
}

// AddTaskParams for creating a new task
type AddTaskParams struct {
	Entry           string `json:"entry" mcp:"Task entry, optionally category-prefixed: \"l1/l2::text\", \"l1::text\" or \"text\" (required)"`
	NoProjectPrefix bool   `json:"noProjectPrefix,omitempty" mcp:"Disable auto-prefixing the current project name as category level 1"`
	Project         string `json:"project,omitempty" mcp:"Override the resolved project name for this add"`
}

// BulkAddItemParams is one entry of a bulk add. Its override fields, when
// set, replace the call-level defaults for this entry only.
type BulkAddItemParams struct {
	Entry           string `json:"entry" mcp:"Task entry, optionally category-prefixed (required)"`
	NoProjectPrefix *bool  `json:"noProjectPrefix,omitempty" mcp:"Override the call-level noProjectPrefix for this entry"`
	Project         string `json:"project,omitempty" mcp:"Override the project name for this entry"`
}

// BulkAddTasksParams for creating several tasks in one call
type BulkAddTasksParams struct {
	Entries         []string            `json:"entries,omitempty" mcp:"Task entries, each optionally category-prefixed"`
	Items           []BulkAddItemParams `json:"items,omitempty" mcp:"Entries with per-item overrides, added after entries"`
	NoProjectPrefix bool                `json:"noProjectPrefix,omitempty" mcp:"Disable auto-prefixing the current project name"`
	Project         string              `json:"project,omitempty" mcp:"Override the resolved project name for all entries"`
}

// ListTasksParams for listing and filtering active tasks
type ListTasksParams struct {
	CurrentProjectOnly bool          `json:"currentProjectOnly,omitempty" mcp:"Restrict to tasks of the current project"`
	Filter             *FilterParams `json:"filter,omitempty" mcp:"Optional filter narrowing the listing"`
}

// UpdateTaskParams for patching the selected task(s). Absent fields are left
// untouched; clearLevelN removes that category level.
type UpdateTaskParams struct {
	SelectorParams
	Text        string `json:"text,omitempty" mcp:"New task text"`
	Level1      string `json:"level1,omitempty" mcp:"New category level 1"`
	Level2      string `json:"level2,omitempty" mcp:"New category level 2"`
	Level3      string `json:"level3,omitempty" mcp:"New category level 3"`
	ClearLevel1 bool   `json:"clearLevel1,omitempty" mcp:"Clear category level 1 (deeper levels must be absent or cleared too)"`
	ClearLevel2 bool   `json:"clearLevel2,omitempty" mcp:"Clear category level 2"`
	ClearLevel3 bool   `json:"clearLevel3,omitempty" mcp:"Clear category level 3"`
}

// RemoveTasksParams for deleting the selected task(s)
type RemoveTasksParams struct {
	SelectorParams
}

// CompleteTasksParams for completing the selected task(s)
type CompleteTasksParams struct {
	SelectorParams
}

// QueryHistoryParams for listing today's completed tasks
type QueryHistoryParams struct {
	CurrentProjectOnly bool          `json:"currentProjectOnly,omitempty" mcp:"Restrict to entries of the current project"`
	Filter             *FilterParams `json:"filter,omitempty" mcp:"Optional filter; date bounds apply to completedAt"`
}

// RestoreTasksParams for moving completed entries back to the active list
type RestoreTasksParams struct {
	SelectorParams
}

// RemoveHistoryParams for deleting entries from today's history
type RemoveHistoryParams struct {
	SelectorParams
}

// MCP Tool Response Types

// TaskPayload is the wire form of a task or history entry.
type TaskPayload struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Category     string   `json:"category,omitempty"`
	CategoryPath []string `json:"categoryPath,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	CompletedAt  string   `json:"completedAt,omitempty"`
}

// MutationResponse reports a state change: the affected records plus the
// post-operation collection.
type MutationResponse struct {
	Affected   []TaskPayload `json:"affected"`
	Collection []TaskPayload `json:"collection"`
	Count      int           `json:"count"`
}

// TaskListResponse reports a query over the active collection.
type TaskListResponse struct {
	Tasks []TaskPayload `json:"tasks"`
	Count int           `json:"count"`
}

// HistoryListResponse reports a query over the history ledger.
type HistoryListResponse struct {
	Entries []TaskPayload `json:"entries"`
	Count   int           `json:"count"`
}
