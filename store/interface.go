package store

import (
	"time"

	"github.com/taskdeck/tdl/models"
)

// Mutation is the result of a state-changing operation on the active
// collection: the full post-operation collection in display order, plus the
// record(s) the operation touched.
type Mutation struct {
	Collection []models.Task `json:"collection"`
	Affected   []models.Task `json:"affected"`
}

// HistoryMutation is the history-side counterpart of Mutation.
type HistoryMutation struct {
	Entries  []models.HistoryEntry `json:"entries"`
	Affected []models.HistoryEntry `json:"affected"`
}

// AddOptions control how a single add is performed.
type AddOptions struct {
	// NoProjectPrefix disables prefixing the resolved project name onto
	// entries with at most one explicit category level.
	NoProjectPrefix bool
	// Project overrides the resolved project name for this add.
	Project string
}

// AddItem is one entry in a bulk add. Options, when set, override the
// call-level defaults for this item only.
type AddItem struct {
	Entry   string
	Options *AddOptions
}

// TaskStore defines the interface for the active-task collection.
type TaskStore interface {
	// Initialize configures the store; it must be called before any other
	// operation. Recognized keys: dataFile, maxCategoryDepth.
	Initialize(config map[string]string) error

	// Add parses an entry string ("l1/l2::text"), optionally prefixes the
	// current project, assigns a fresh id, and persists the task.
	Add(entry string, opts AddOptions) (Mutation, error)

	// BulkAdd applies Add per item. It is not atomic across items: a
	// failure partway leaves earlier items persisted.
	BulkAdd(items []AddItem, defaults AddOptions) (Mutation, error)

	// Update applies a field patch to every task the selector resolves.
	// Recognized keys: text, level1, level2, level3. A key set to nil
	// clears that category level; an absent key leaves the field alone.
	Update(sel Selector, patch map[string]interface{}) (Mutation, error)

	// Remove deletes the tasks the selector resolves. No history side
	// effect.
	Remove(sel Selector) (Mutation, error)

	// Complete stamps each resolved task with a completion time, records
	// it in the history ledger, and removes it from the active collection.
	// The ledger is persisted before the active collection is rewritten,
	// so a crash between the two writes can duplicate a task but never
	// lose one.
	Complete(sel Selector, history HistoryStore) (Mutation, []models.HistoryEntry, error)

	// Restore moves completed entries back into the active collection,
	// stripping their completion stamps. The active collection is
	// persisted before the ledger is rewritten.
	Restore(sel Selector, history HistoryStore) (Mutation, error)

	// GetByIndex translates a 1-based display ordinal into the task at
	// that position of the current scope-filtered view. The view is
	// re-resolved at call time, never cached.
	GetByIndex(index int, currentProjectOnly bool) (models.Task, error)

	// List returns tasks in display order, optionally restricted to the
	// current project and/or narrowed by a filter.
	List(filter *Filter, currentProjectOnly bool) ([]models.Task, error)

	// ListView returns the display view: tasks grouped by category with
	// their 1-based display indexes, in the same order GetByIndex uses.
	ListView(currentProjectOnly bool) ([]TaskGroup, error)

	// Close releases the store's file lock.
	Close() error
}

// HistoryStore defines the interface for the completed-task ledger. Every
// entry point applies the lazy day-rollover rule before doing anything else.
type HistoryStore interface {
	Initialize(config map[string]string) error

	// Record appends completed tasks to the ledger.
	Record(tasks []models.Task, completedAt time.Time) ([]models.HistoryEntry, error)

	// Query returns the ledger entries, optionally restricted to the
	// current project and/or narrowed by a filter.
	Query(filter *Filter, currentProjectOnly bool) ([]models.HistoryEntry, error)

	// Update applies a field patch to every entry the selector resolves,
	// with the same patch semantics as the task store.
	Update(sel Selector, patch map[string]interface{}) (HistoryMutation, error)

	// Remove deletes the entries the selector resolves.
	Remove(sel Selector) (HistoryMutation, error)

	Close() error
}
