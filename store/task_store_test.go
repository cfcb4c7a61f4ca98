package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/taskdeck/tdl/models"
	"github.com/taskdeck/tdl/types"
)

// newTestTaskStore builds a task store backed by a temp directory. project is
// the name the store resolves for the current project; empty means none.
func newTestTaskStore(t *testing.T, project string) *FileTaskStore {
	t.Helper()
	s := NewFileTaskStore(func() string { return project })
	err := s.Initialize(map[string]string{
		dataFileKey: filepath.Join(t.TempDir(), "tasks.json"),
	})
	if err != nil {
		t.Fatalf("failed to initialize task store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newTestHistoryStore builds a history store in dir with a fixed clock.
func newTestHistoryStore(t *testing.T, dir, project string, now time.Time) *FileHistoryStore {
	t.Helper()
	h := NewFileHistoryStore(func() string { return project })
	err := h.Initialize(map[string]string{
		dataFileKey: filepath.Join(dir, "history.json"),
	})
	if err != nil {
		t.Fatalf("failed to initialize history store: %v", err)
	}
	h.now = func() time.Time { return now }
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func mustAdd(t *testing.T, s *FileTaskStore, entry string, opts AddOptions) models.Task {
	t.Helper()
	mut, err := s.Add(entry, opts)
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", entry, err)
	}
	if len(mut.Affected) != 1 {
		t.Fatalf("Add(%q) affected %d tasks, want 1", entry, len(mut.Affected))
	}
	return mut.Affected[0]
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	s := newTestTaskStore(t, "")
	a := mustAdd(t, s, "first", AddOptions{})
	b := mustAdd(t, s, "second", AddOptions{})
	if a.ID == "" || b.ID == "" {
		t.Fatal("tasks got empty ids")
	}
	if a.ID == b.ID {
		t.Errorf("two adds produced the same id %q", a.ID)
	}
}

func TestAddProjectPrefix(t *testing.T) {
	s := newTestTaskStore(t, "myapp")

	tests := []struct {
		name     string
		entry    string
		opts     AddOptions
		wantPath string
	}{
		{"untagged entry gets project", "fix login", AddOptions{}, "myapp"},
		{"one level shifts under project", "bugs::fix login", AddOptions{}, "myapp/bugs"},
		{"two levels untouched", "other/bugs::fix login", AddOptions{}, "other/bugs"},
		{"noProjectPrefix leaves entry alone", "bugs::fix login", AddOptions{NoProjectPrefix: true}, "bugs"},
		{"project override wins", "bugs::fix login", AddOptions{Project: "side"}, "side/bugs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := mustAdd(t, s, tt.entry, tt.opts)
			if got := task.CategoryPath.String(); got != tt.wantPath {
				t.Errorf("category path = %q, want %q", got, tt.wantPath)
			}
		})
	}
}

func TestAddNoProjectResolved(t *testing.T) {
	s := newTestTaskStore(t, "")
	task := mustAdd(t, s, "buy milk", AddOptions{})
	if len(task.CategoryPath) != 0 {
		t.Errorf("untagged task in no-project context got path %v", task.CategoryPath)
	}
}

func TestAddRejectsTooDeepCategory(t *testing.T) {
	s := newTestTaskStore(t, "")
	_, err := s.Add("a/b/c/d::text", AddOptions{})
	if types.ErrorCode(err) != types.CodeCategoryTooDeep {
		t.Fatalf("error = %v, want CATEGORY_TOO_DEEP", err)
	}
}

func TestBulkAddPartialFailure(t *testing.T) {
	s := newTestTaskStore(t, "")
	items := []AddItem{
		{Entry: "one"},
		{Entry: "a/b/c/d::too deep"},
		{Entry: "three"},
	}
	mut, err := s.BulkAdd(items, AddOptions{})
	if err == nil {
		t.Fatal("expected error from invalid middle item")
	}
	if len(mut.Affected) != 1 {
		t.Fatalf("affected %d tasks, want 1 (the item before the failure)", len(mut.Affected))
	}

	tasks, err := s.List(nil, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("collection holds %d tasks after partial bulk add, want 1", len(tasks))
	}
}

func TestBulkAddPerItemOverrides(t *testing.T) {
	s := newTestTaskStore(t, "myapp")
	items := []AddItem{
		{Entry: "uses defaults"},
		{Entry: "opts out", Options: &AddOptions{NoProjectPrefix: true}},
		{Entry: "elsewhere", Options: &AddOptions{Project: "side"}},
	}

	mut, err := s.BulkAdd(items, AddOptions{})
	if err != nil {
		t.Fatalf("BulkAdd failed: %v", err)
	}
	if len(mut.Affected) != 3 {
		t.Fatalf("affected %d tasks, want 3", len(mut.Affected))
	}

	want := map[string]string{
		"uses defaults": "myapp",
		"opts out":      "",
		"elsewhere":     "side",
	}
	for _, task := range mut.Affected {
		if got := task.CategoryPath.String(); got != want[task.Text] {
			t.Errorf("%q got path %q, want %q", task.Text, got, want[task.Text])
		}
	}
}

func TestUpdateText(t *testing.T) {
	s := newTestTaskStore(t, "")
	task := mustAdd(t, s, "work::old text", AddOptions{NoProjectPrefix: true})

	mut, err := s.Update(ByID(task.ID), map[string]interface{}{"text": "new text"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := mut.Affected[0].Text; got != "new text" {
		t.Errorf("text = %q, want %q", got, "new text")
	}
	if got := mut.Affected[0].CategoryPath.String(); got != "work" {
		t.Errorf("category changed to %q during text update", got)
	}
	if mut.Affected[0].ID != task.ID {
		t.Error("id changed during update")
	}
}

func TestUpdateClearLevel(t *testing.T) {
	s := newTestTaskStore(t, "")
	task := mustAdd(t, s, "work/api::fix auth", AddOptions{NoProjectPrefix: true})

	mut, err := s.Update(ByID(task.ID), map[string]interface{}{"level2": nil})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := mut.Affected[0].CategoryPath.String(); got != "work" {
		t.Errorf("category path = %q, want %q", got, "work")
	}
}

func TestUpdateRejectsSparsePath(t *testing.T) {
	s := newTestTaskStore(t, "")
	task := mustAdd(t, s, "work/api/auth::rotate keys", AddOptions{NoProjectPrefix: true})

	_, err := s.Update(ByID(task.ID), map[string]interface{}{"level2": nil})
	if types.ErrorCode(err) != types.CodeInvalidPatch {
		t.Fatalf("error = %v, want INVALID_PATCH", err)
	}

	// The failed patch must not have been persisted.
	tasks, err := s.List(nil, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got := tasks[0].CategoryPath.String(); got != "work/api/auth" {
		t.Errorf("category path after rejected patch = %q, want unchanged", got)
	}
}

func TestUpdateEmptyPatch(t *testing.T) {
	s := newTestTaskStore(t, "")
	task := mustAdd(t, s, "anything", AddOptions{})

	_, err := s.Update(ByID(task.ID), map[string]interface{}{})
	if types.ErrorCode(err) != types.CodeEmptyPatch {
		t.Fatalf("error = %v, want EMPTY_PATCH", err)
	}
	_, err = s.Update(ByID(task.ID), map[string]interface{}{"bogus": "x"})
	if types.ErrorCode(err) != types.CodeEmptyPatch {
		t.Fatalf("error = %v, want EMPTY_PATCH for unrecognized key", err)
	}
}

func TestRemoveByFilter(t *testing.T) {
	s := newTestTaskStore(t, "")
	mustAdd(t, s, "chores::laundry", AddOptions{NoProjectPrefix: true})
	mustAdd(t, s, "chores::dishes", AddOptions{NoProjectPrefix: true})
	keep := mustAdd(t, s, "work::report", AddOptions{NoProjectPrefix: true})

	mut, err := s.Remove(ByFilter(Filter{Category: "chores"}))
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(mut.Affected) != 2 {
		t.Errorf("removed %d tasks, want 2", len(mut.Affected))
	}

	tasks, _ := s.List(nil, false)
	if len(tasks) != 1 || tasks[0].ID != keep.ID {
		t.Errorf("remaining collection = %v, want only %q", tasks, keep.ID)
	}
}

func TestRemoveMissingID(t *testing.T) {
	s := newTestTaskStore(t, "")
	mustAdd(t, s, "survivor", AddOptions{})

	_, err := s.Remove(ByID("no-such-id"))
	if types.ErrorCode(err) != types.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
	tasks, _ := s.List(nil, false)
	if len(tasks) != 1 {
		t.Error("failed remove mutated the collection")
	}
}

func TestRemoveIDSetAllOrNothing(t *testing.T) {
	s := newTestTaskStore(t, "")
	a := mustAdd(t, s, "one", AddOptions{})

	_, err := s.Remove(ByIDs(a.ID, "missing"))
	if types.ErrorCode(err) != types.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
	tasks, _ := s.List(nil, false)
	if len(tasks) != 1 {
		t.Error("partially-resolved id set mutated the collection")
	}
}

func TestSelectorRejectsEmptyForms(t *testing.T) {
	s := newTestTaskStore(t, "")
	mustAdd(t, s, "survivor", AddOptions{})

	for name, sel := range map[string]Selector{
		"empty selector": {},
		"empty id list":  {IDs: []string{}},
		"empty filter":   {Filter: &Filter{}},
		"two forms":      {ID: "x", Filter: &Filter{Untagged: true}},
	} {
		if _, err := s.Remove(sel); types.ErrorCode(err) != types.CodeInvalidSelector {
			t.Errorf("%s: error = %v, want INVALID_SELECTOR", name, err)
		}
	}

	tasks, _ := s.List(nil, false)
	if len(tasks) != 1 {
		t.Error("invalid selectors mutated the collection")
	}
}

func TestFilterMayMatchNothing(t *testing.T) {
	s := newTestTaskStore(t, "")
	mustAdd(t, s, "work::task", AddOptions{NoProjectPrefix: true})

	mut, err := s.Remove(ByFilter(Filter{Category: "nothing-here"}))
	if err != nil {
		t.Fatalf("zero-match filter should succeed, got %v", err)
	}
	if len(mut.Affected) != 0 {
		t.Errorf("affected %d tasks, want 0", len(mut.Affected))
	}
}

func TestGetByIndex(t *testing.T) {
	s := newTestTaskStore(t, "")
	mustAdd(t, s, "zebra::last group", AddOptions{NoProjectPrefix: true})
	untagged := mustAdd(t, s, "untagged first", AddOptions{})
	mustAdd(t, s, "alpha::middle group", AddOptions{NoProjectPrefix: true})

	// Display order: untagged, then groups alphabetically.
	got, err := s.GetByIndex(1, false)
	if err != nil {
		t.Fatalf("GetByIndex(1) failed: %v", err)
	}
	if got.ID != untagged.ID {
		t.Errorf("index 1 = %q, want the untagged task", got.Text)
	}

	got, _ = s.GetByIndex(2, false)
	if got.CategoryPath.Level(1) != "alpha" {
		t.Errorf("index 2 in group %q, want alpha", got.CategoryPath.Level(1))
	}

	_, err = s.GetByIndex(4, false)
	if types.ErrorCode(err) != types.CodeIndexOutOfRange {
		t.Fatalf("error = %v, want INDEX_OUT_OF_RANGE", err)
	}
	_, err = s.GetByIndex(0, false)
	if types.ErrorCode(err) != types.CodeIndexOutOfRange {
		t.Fatalf("error = %v, want INDEX_OUT_OF_RANGE for index 0", err)
	}
}

func TestGetByIndexScoped(t *testing.T) {
	s := newTestTaskStore(t, "myapp")
	mustAdd(t, s, "other::foreign", AddOptions{NoProjectPrefix: true})
	mine := mustAdd(t, s, "mine", AddOptions{})

	got, err := s.GetByIndex(1, true)
	if err != nil {
		t.Fatalf("GetByIndex failed: %v", err)
	}
	if got.ID != mine.ID {
		t.Errorf("scoped index 1 = %q, want the current project's task", got.Text)
	}
}

func TestListViewIndexesMatchGetByIndex(t *testing.T) {
	s := newTestTaskStore(t, "")
	mustAdd(t, s, "b::two", AddOptions{NoProjectPrefix: true})
	mustAdd(t, s, "a::one", AddOptions{NoProjectPrefix: true})
	mustAdd(t, s, "plain", AddOptions{})

	groups, err := s.ListView(false)
	if err != nil {
		t.Fatalf("ListView failed: %v", err)
	}

	next := 1
	for _, g := range groups {
		for _, tv := range g.Tasks {
			if tv.Index != next {
				t.Fatalf("index %d out of sequence, want %d", tv.Index, next)
			}
			byIdx, err := s.GetByIndex(tv.Index, false)
			if err != nil {
				t.Fatalf("GetByIndex(%d) failed: %v", tv.Index, err)
			}
			if byIdx.ID != tv.Task.ID {
				t.Errorf("index %d resolves to %q in view but %q via GetByIndex", tv.Index, tv.Task.Text, byIdx.Text)
			}
			next++
		}
	}
	if groups[0].Category != "" {
		t.Errorf("first group = %q, want the untagged group", groups[0].Category)
	}
}

func TestCompleteAndRestoreKeepIdentity(t *testing.T) {
	dir := t.TempDir()
	s := newTestTaskStore(t, "")
	h := newTestHistoryStore(t, dir, "", time.Now())

	task := mustAdd(t, s, "work::ship it", AddOptions{NoProjectPrefix: true})

	_, entries, err := s.Complete(ByID(task.ID), h)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != task.ID {
		t.Fatalf("history entry does not carry the task id")
	}
	if entries[0].CompletedAt.IsZero() {
		t.Error("completedAt not stamped")
	}

	tasks, _ := s.List(nil, false)
	if len(tasks) != 0 {
		t.Fatalf("completed task still active")
	}

	mut, err := s.Restore(ByID(task.ID), h)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	restored := mut.Affected[0]
	if restored.ID != task.ID {
		t.Errorf("restored id = %q, want %q", restored.ID, task.ID)
	}
	if !restored.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("restored createdAt = %v, want original %v", restored.CreatedAt, task.CreatedAt)
	}

	remaining, err := h.Query(nil, false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Error("restored entry still in history")
	}
}

func TestRestoreMissingEntry(t *testing.T) {
	dir := t.TempDir()
	s := newTestTaskStore(t, "")
	h := newTestHistoryStore(t, dir, "", time.Now())

	_, err := s.Restore(ByID("never-completed"), h)
	if types.ErrorCode(err) != types.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	s := NewFileTaskStore(nil)
	if err := s.Initialize(map[string]string{dataFileKey: path}); err != nil {
		t.Fatalf("init: %v", err)
	}
	task := mustAdd(t, s, "persist me", AddOptions{})
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2 := NewFileTaskStore(nil)
	if err := s2.Initialize(map[string]string{dataFileKey: path}); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()

	tasks, err := s2.List(nil, false)
	if err != nil {
		t.Fatalf("List after reopen: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Errorf("reopened store lost the task")
	}
}
