package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/taskdeck/tdl/models"
)

const defaultHistoryFile = "history.json"

var _ HistoryStore = (*FileHistoryStore)(nil)

// FileHistoryStore owns the completed-task ledger, persisted as a JSON
// object {completed, lastCleared}. The ledger only holds completions from
// the current local calendar day: the first access on a new day clears it.
// There is no background process; the rule is evaluated on access, which is
// all an intermittently-running tool needs.
type FileHistoryStore struct {
	file           *collectionFile
	maxDepth       int
	resolveProject func() string

	// now is the clock used for the rollover comparison; tests inject a
	// fixed one.
	now func() time.Time
}

// NewFileHistoryStore creates a history store. resolveProject supplies the
// current project name on demand; it may be nil.
func NewFileHistoryStore(resolveProject func() string) *FileHistoryStore {
	if resolveProject == nil {
		resolveProject = func() string { return "" }
	}
	return &FileHistoryStore{
		maxDepth:       models.DefaultMaxCategoryDepth,
		resolveProject: resolveProject,
		now:            time.Now,
	}
}

// Initialize configures the store. It expects a 'dataFile' key with the path
// to the ledger file, defaulting to 'history.json' in the working directory.
// 'maxCategoryDepth' takes the same values as the task store's.
func (h *FileHistoryStore) Initialize(config map[string]string) error {
	path := config[dataFileKey]
	if path == "" {
		path = defaultHistoryFile
	}
	if val := config[maxCategoryDepthKey]; val != "" {
		depth, err := strconv.Atoi(val)
		if err != nil || depth < 1 {
			return fmt.Errorf("invalid %s: %q", maxCategoryDepthKey, val)
		}
		h.maxDepth = depth
	}
	file, err := newCollectionFile(path)
	if err != nil {
		return err
	}
	h.file = file
	return nil
}

// sameLocalDay reports whether a and b fall on the same local calendar day.
func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// rollover applies the lazy day-rollover rule to the in-memory ledger: when
// the current local date differs from the date of the last clear, the
// entries are dropped and the clear boundary advances. The rule is "same day
// as last clear", not "age of entry", so a week of inactivity still clears
// exactly once.
func (h *FileHistoryStore) rollover(ledger *models.HistoryLedger) bool {
	now := h.now()
	if sameLocalDay(ledger.LastCleared, now) {
		return false
	}
	ledger.Completed = nil
	ledger.LastCleared = now
	return true
}

// loadLedgerLocked reads the ledger and applies the rollover rule,
// persisting immediately when the rollover cleared anything. Callers must
// hold the file lock.
func (h *FileHistoryStore) loadLedgerLocked() (models.HistoryLedger, error) {
	var ledger models.HistoryLedger
	if err := h.file.load(&ledger); err != nil {
		return models.HistoryLedger{}, fmt.Errorf("failed to load history ledger: %w", err)
	}
	if h.rollover(&ledger) {
		if err := h.saveLedgerLocked(ledger); err != nil {
			return models.HistoryLedger{}, fmt.Errorf("failed to persist history rollover: %w", err)
		}
	}
	return ledger, nil
}

func (h *FileHistoryStore) saveLedgerLocked(ledger models.HistoryLedger) error {
	if ledger.Completed == nil {
		ledger.Completed = []models.HistoryEntry{}
	}
	return h.file.save(ledger)
}

// Record appends completed tasks to the ledger, stamped with completedAt.
func (h *FileHistoryStore) Record(tasks []models.Task, completedAt time.Time) ([]models.HistoryEntry, error) {
	if err := h.file.lock(); err != nil {
		return nil, err
	}
	defer h.file.unlock()

	ledger, err := h.loadLedgerLocked()
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0, len(tasks))
	for _, t := range tasks {
		entries = append(entries, models.HistoryEntry{Task: t, CompletedAt: completedAt})
	}
	ledger.Completed = append(ledger.Completed, entries...)

	if err := h.saveLedgerLocked(ledger); err != nil {
		return nil, fmt.Errorf("failed to save history ledger: %w", err)
	}
	return entries, nil
}

// Query returns the ledger entries after applying the rollover rule,
// restricted to the current project when requested and optionally narrowed
// by a filter. Date bounds apply to completedAt.
func (h *FileHistoryStore) Query(filter *Filter, currentProjectOnly bool) ([]models.HistoryEntry, error) {
	if err := h.file.lock(); err != nil {
		return nil, err
	}
	defer h.file.unlock()

	ledger, err := h.loadLedgerLocked()
	if err != nil {
		return nil, err
	}

	entries := ledger.Completed
	if currentProjectOnly {
		if project := h.resolveProject(); project != "" {
			scoped := make([]models.HistoryEntry, 0, len(entries))
			for _, e := range entries {
				if e.CategoryPath.MatchesLevel1(project) {
					scoped = append(scoped, e)
				}
			}
			entries = scoped
		}
	}

	if filter == nil {
		return entries, nil
	}
	compiled, err := filter.compile(h.resolveProject())
	if err != nil {
		return nil, err
	}
	matched := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if compiled.matches(e.Task, e.CompletedAt) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Update applies the patch to every ledger entry the selector resolves, with
// the same patch semantics and selector validation as the task store.
func (h *FileHistoryStore) Update(sel Selector, patch map[string]interface{}) (HistoryMutation, error) {
	if err := validatePatch(patch); err != nil {
		return HistoryMutation{}, err
	}

	if err := h.file.lock(); err != nil {
		return HistoryMutation{}, err
	}
	defer h.file.unlock()

	ledger, err := h.loadLedgerLocked()
	if err != nil {
		return HistoryMutation{}, err
	}

	targets, err := resolveTargets(sel, historyRecords(ledger.Completed), h.resolveProject())
	if err != nil {
		return HistoryMutation{}, err
	}

	var affected []models.HistoryEntry
	for i := range ledger.Completed {
		if !targets[ledger.Completed[i].ID] {
			continue
		}
		if err := applyPatch(&ledger.Completed[i].Task, patch, h.maxDepth); err != nil {
			return HistoryMutation{}, err
		}
		affected = append(affected, ledger.Completed[i])
	}

	if err := h.saveLedgerLocked(ledger); err != nil {
		return HistoryMutation{}, fmt.Errorf("failed to save history ledger: %w", err)
	}
	return HistoryMutation{Entries: ledger.Completed, Affected: affected}, nil
}

// Remove deletes the ledger entries the selector resolves.
func (h *FileHistoryStore) Remove(sel Selector) (HistoryMutation, error) {
	if err := h.file.lock(); err != nil {
		return HistoryMutation{}, err
	}
	defer h.file.unlock()

	ledger, err := h.loadLedgerLocked()
	if err != nil {
		return HistoryMutation{}, err
	}

	targets, err := resolveTargets(sel, historyRecords(ledger.Completed), h.resolveProject())
	if err != nil {
		return HistoryMutation{}, err
	}

	var affected []models.HistoryEntry
	kept := ledger.Completed[:0:0]
	for _, e := range ledger.Completed {
		if targets[e.ID] {
			affected = append(affected, e)
		} else {
			kept = append(kept, e)
		}
	}
	ledger.Completed = kept

	if err := h.saveLedgerLocked(ledger); err != nil {
		return HistoryMutation{}, fmt.Errorf("failed to save history ledger: %w", err)
	}
	return HistoryMutation{Entries: ledger.Completed, Affected: affected}, nil
}

// Close releases the store's file lock.
func (h *FileHistoryStore) Close() error {
	if h.file != nil {
		return h.file.close()
	}
	return nil
}

// historyRecords projects ledger entries into resolver records; date bounds
// on history apply to the completion time.
func historyRecords(entries []models.HistoryEntry) []record {
	records := make([]record, len(entries))
	for i, e := range entries {
		records[i] = record{task: e.Task, stamp: e.CompletedAt}
	}
	return records
}
