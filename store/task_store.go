package store

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/tdl/models"
	"github.com/taskdeck/tdl/types"
)

const (
	dataFileKey         = "dataFile"
	maxCategoryDepthKey = "maxCategoryDepth"
	defaultTasksFile    = "tasks.json"
)

var _ TaskStore = (*FileTaskStore)(nil)

// FileTaskStore owns the active-task collection, persisted as a JSON array.
// Every operation reloads the collection from disk under the file lock, so
// concurrent processes always mutate the latest persisted state.
type FileTaskStore struct {
	file           *collectionFile
	tasks          []models.Task
	maxDepth       int
	resolveProject func() string
}

// NewFileTaskStore creates a task store. resolveProject supplies the current
// project name on demand; it may be nil when no resolver is available.
func NewFileTaskStore(resolveProject func() string) *FileTaskStore {
	if resolveProject == nil {
		resolveProject = func() string { return "" }
	}
	return &FileTaskStore{
		maxDepth:       models.DefaultMaxCategoryDepth,
		resolveProject: resolveProject,
	}
}

// Initialize configures the store. It expects a 'dataFile' key with the path
// to the collection file, defaulting to 'tasks.json' in the working
// directory.
func (s *FileTaskStore) Initialize(config map[string]string) error {
	path := config[dataFileKey]
	if path == "" {
		path = defaultTasksFile
	}
	if val := config[maxCategoryDepthKey]; val != "" {
		depth, err := strconv.Atoi(val)
		if err != nil || depth < 1 {
			return fmt.Errorf("invalid %s: %q", maxCategoryDepthKey, val)
		}
		s.maxDepth = depth
	}

	file, err := newCollectionFile(path)
	if err != nil {
		return err
	}
	s.file = file
	return nil
}

func (s *FileTaskStore) loadLocked() error {
	s.tasks = nil
	return s.file.load(&s.tasks)
}

func (s *FileTaskStore) saveLocked() error {
	if s.tasks == nil {
		s.tasks = []models.Task{}
	}
	return s.file.save(s.tasks)
}

// project returns the effective project name for an add: the per-call
// override when present, otherwise the resolver's answer.
func (s *FileTaskStore) project(opts AddOptions) string {
	if opts.Project != "" {
		return opts.Project
	}
	return s.resolveProject()
}

func (s *FileTaskStore) buildTask(entry string, opts AddOptions, now time.Time) (models.Task, error) {
	path, text, err := models.ParseEntryDepth(entry, s.maxDepth)
	if err != nil {
		return models.Task{}, err
	}
	if !opts.NoProjectPrefix && len(path) <= 1 {
		path = path.WithProject(s.project(opts))
	}

	task := models.Task{
		ID:           uuid.NewString(),
		Text:         text,
		CategoryPath: path,
		CreatedAt:    now,
	}
	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("validation failed for new task: %w", err)
	}
	return task, nil
}

// Add parses the entry, applies project prefixing, assigns a fresh id, and
// persists the task.
func (s *FileTaskStore) Add(entry string, opts AddOptions) (Mutation, error) {
	if err := s.file.lock(); err != nil {
		return Mutation{}, err
	}
	defer s.file.unlock()

	if err := s.loadLocked(); err != nil {
		return Mutation{}, fmt.Errorf("failed to reload tasks before add: %w", err)
	}

	task, err := s.buildTask(entry, opts, time.Now())
	if err != nil {
		return Mutation{}, err
	}

	s.tasks = append(s.tasks, task)
	if err := s.saveLocked(); err != nil {
		return Mutation{}, fmt.Errorf("failed to save new task: %w", err)
	}
	return s.mutationLocked(task), nil
}

// BulkAdd applies Add per item, with per-item options overriding the
// call-level defaults. Each item is persisted independently; a failure
// partway leaves earlier items in place and is reported alongside them.
func (s *FileTaskStore) BulkAdd(items []AddItem, defaults AddOptions) (Mutation, error) {
	var affected []models.Task
	var collection []models.Task
	for _, item := range items {
		opts := defaults
		if item.Options != nil {
			opts = *item.Options
		}
		mut, err := s.Add(item.Entry, opts)
		if err != nil {
			return Mutation{Collection: collection, Affected: affected}, err
		}
		affected = append(affected, mut.Affected...)
		collection = mut.Collection
	}
	return Mutation{Collection: collection, Affected: affected}, nil
}

// Update applies the patch to every task the selector resolves. The patch is
// validated before any storage is touched; persistence happens once after
// all matches are updated.
func (s *FileTaskStore) Update(sel Selector, patch map[string]interface{}) (Mutation, error) {
	if err := validatePatch(patch); err != nil {
		return Mutation{}, err
	}

	if err := s.file.lock(); err != nil {
		return Mutation{}, err
	}
	defer s.file.unlock()

	if err := s.loadLocked(); err != nil {
		return Mutation{}, fmt.Errorf("failed to reload tasks before update: %w", err)
	}

	targets, err := resolveTargets(sel, s.recordsLocked(), s.resolveProject())
	if err != nil {
		return Mutation{}, err
	}

	var affected []models.Task
	for i := range s.tasks {
		if !targets[s.tasks[i].ID] {
			continue
		}
		if err := applyPatch(&s.tasks[i], patch, s.maxDepth); err != nil {
			return Mutation{}, err
		}
		affected = append(affected, s.tasks[i])
	}

	if err := s.saveLocked(); err != nil {
		return Mutation{}, fmt.Errorf("failed to save updated tasks: %w", err)
	}
	return s.mutationLocked(affected...), nil
}

// Remove deletes the tasks the selector resolves and persists once.
func (s *FileTaskStore) Remove(sel Selector) (Mutation, error) {
	if err := s.file.lock(); err != nil {
		return Mutation{}, err
	}
	defer s.file.unlock()

	if err := s.loadLocked(); err != nil {
		return Mutation{}, fmt.Errorf("failed to reload tasks before remove: %w", err)
	}

	targets, err := resolveTargets(sel, s.recordsLocked(), s.resolveProject())
	if err != nil {
		return Mutation{}, err
	}

	affected := s.takeLocked(targets)
	if err := s.saveLocked(); err != nil {
		return Mutation{}, fmt.Errorf("failed to save after removing tasks: %w", err)
	}
	return s.mutationLocked(affected...), nil
}

// Complete stamps each resolved task, records it in the history ledger, and
// removes it from the active collection. The ledger write lands first: a
// crash between the two writes leaves the task present in both collections,
// never in neither.
func (s *FileTaskStore) Complete(sel Selector, history HistoryStore) (Mutation, []models.HistoryEntry, error) {
	if err := s.file.lock(); err != nil {
		return Mutation{}, nil, err
	}
	defer s.file.unlock()

	if err := s.loadLocked(); err != nil {
		return Mutation{}, nil, fmt.Errorf("failed to reload tasks before complete: %w", err)
	}

	targets, err := resolveTargets(sel, s.recordsLocked(), s.resolveProject())
	if err != nil {
		return Mutation{}, nil, err
	}

	completed := s.takeLocked(targets)
	entries, err := history.Record(completed, time.Now())
	if err != nil {
		return Mutation{}, nil, fmt.Errorf("failed to record completion: %w", err)
	}

	if err := s.saveLocked(); err != nil {
		return Mutation{}, nil, fmt.Errorf("failed to save after completing tasks: %w", err)
	}
	return s.mutationLocked(completed...), entries, nil
}

// Restore moves completed entries back into the active collection with their
// ids and creation times intact and their completion stamps removed. The
// active collection write lands before the ledger is rewritten.
func (s *FileTaskStore) Restore(sel Selector, history HistoryStore) (Mutation, error) {
	if err := s.file.lock(); err != nil {
		return Mutation{}, err
	}
	defer s.file.unlock()

	if err := s.loadLocked(); err != nil {
		return Mutation{}, fmt.Errorf("failed to reload tasks before restore: %w", err)
	}

	entries, err := history.Query(nil, false)
	if err != nil {
		return Mutation{}, err
	}

	targets, err := resolveTargets(sel, historyRecords(entries), s.resolveProject())
	if err != nil {
		return Mutation{}, err
	}

	var affected []models.Task
	var ids []string
	for _, entry := range entries {
		if targets[entry.ID] {
			affected = append(affected, entry.Task)
			ids = append(ids, entry.ID)
		}
	}

	s.tasks = append(s.tasks, affected...)
	if err := s.saveLocked(); err != nil {
		return Mutation{}, fmt.Errorf("failed to save restored tasks: %w", err)
	}
	if len(ids) > 0 {
		if _, err := history.Remove(ByIDs(ids...)); err != nil {
			return Mutation{}, fmt.Errorf("failed to clear restored entries from history: %w", err)
		}
	}
	return s.mutationLocked(affected...), nil
}

// GetByIndex returns the task at the given 1-based position of the current
// scope-filtered display ordering. The ordering is re-resolved from disk on
// every call so the index always refers to what the user last saw listed.
func (s *FileTaskStore) GetByIndex(index int, currentProjectOnly bool) (models.Task, error) {
	if err := s.file.lock(); err != nil {
		return models.Task{}, err
	}
	defer s.file.unlock()

	if err := s.loadLocked(); err != nil {
		return models.Task{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	view := s.displayLocked(currentProjectOnly)
	if index < 1 || index > len(view) {
		return models.Task{}, types.IndexOutOfRangeError(index, len(view))
	}
	return view[index-1], nil
}

// List returns tasks in display order, scope-filtered and optionally
// narrowed by a filter.
func (s *FileTaskStore) List(filter *Filter, currentProjectOnly bool) ([]models.Task, error) {
	if err := s.file.lock(); err != nil {
		return nil, err
	}
	defer s.file.unlock()

	if err := s.loadLocked(); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	view := s.displayLocked(currentProjectOnly)
	if filter == nil {
		return view, nil
	}

	compiled, err := filter.compile(s.resolveProject())
	if err != nil {
		return nil, err
	}
	matched := make([]models.Task, 0, len(view))
	for _, t := range view {
		if compiled.matches(t, t.CreatedAt) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// TaskView pairs a task with its 1-based display index.
type TaskView struct {
	Index int         `json:"index"`
	Task  models.Task `json:"task"`
}

// TaskGroup is one category bucket of the display view. Category is the
// level-1 label, empty for untagged tasks.
type TaskGroup struct {
	Category string     `json:"category"`
	Tasks    []TaskView `json:"tasks"`
}

// ListView returns the grouped, indexed display view. Indexes run
// sequentially across groups and match GetByIndex positions exactly.
func (s *FileTaskStore) ListView(currentProjectOnly bool) ([]TaskGroup, error) {
	if err := s.file.lock(); err != nil {
		return nil, err
	}
	defer s.file.unlock()

	if err := s.loadLocked(); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	var groups []TaskGroup
	for i, t := range s.displayLocked(currentProjectOnly) {
		key := t.CategoryPath.Level(1)
		if len(groups) == 0 || groups[len(groups)-1].Category != key {
			groups = append(groups, TaskGroup{Category: key})
		}
		g := &groups[len(groups)-1]
		g.Tasks = append(g.Tasks, TaskView{Index: i + 1, Task: t})
	}
	return groups, nil
}

// Close releases the store's file lock.
func (s *FileTaskStore) Close() error {
	if s.file != nil {
		return s.file.close()
	}
	return nil
}

// displayLocked produces the display ordering: untagged tasks first, then
// category groups alphabetically by level 1; within a bucket, creation time
// ascending with id as tie-break. When currentProjectOnly is set and a
// project resolves, only that project's tasks appear; an unresolvable
// project leaves the view unfiltered.
func (s *FileTaskStore) displayLocked(currentProjectOnly bool) []models.Task {
	tasks := make([]models.Task, 0, len(s.tasks))
	if currentProjectOnly {
		if project := s.resolveProject(); project != "" {
			for _, t := range s.tasks {
				if t.CategoryPath.MatchesLevel1(project) {
					tasks = append(tasks, t)
				}
			}
		} else {
			tasks = append(tasks, s.tasks...)
		}
	} else {
		tasks = append(tasks, s.tasks...)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		ci, cj := tasks[i].CategoryPath.Level(1), tasks[j].CategoryPath.Level(1)
		if ci != cj {
			if ci == "" || cj == "" {
				return ci == ""
			}
			return ci < cj
		}
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}

func (s *FileTaskStore) recordsLocked() []record {
	records := make([]record, len(s.tasks))
	for i, t := range s.tasks {
		records[i] = record{task: t, stamp: t.CreatedAt}
	}
	return records
}

// takeLocked removes the targeted tasks from the in-memory collection and
// returns them in their previous collection order.
func (s *FileTaskStore) takeLocked(targets map[string]bool) []models.Task {
	var taken []models.Task
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if targets[t.ID] {
			taken = append(taken, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return taken
}

func (s *FileTaskStore) mutationLocked(affected ...models.Task) Mutation {
	return Mutation{
		Collection: s.displayLocked(false),
		Affected:   affected,
	}
}
