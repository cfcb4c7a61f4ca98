package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/tdl/models"
	"github.com/taskdeck/tdl/types"
)

func testTask(text string, path ...string) models.Task {
	return models.Task{
		ID:           uuid.NewString(),
		Text:         text,
		CategoryPath: models.CategoryPath(path),
		CreatedAt:    time.Now(),
	}
}

func TestRecordAndQuery(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.Local)
	h := newTestHistoryStore(t, t.TempDir(), "", now)

	task := testTask("ship release", "work")
	entries, err := h.Record([]models.Task{task}, now)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != task.ID {
		t.Fatalf("Record returned %v", entries)
	}
	if !entries[0].CompletedAt.Equal(now) {
		t.Errorf("completedAt = %v, want %v", entries[0].CompletedAt, now)
	}

	got, err := h.Query(nil, false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != task.ID {
		t.Errorf("Query returned %v", got)
	}
}

func TestRolloverClearsOnNewDay(t *testing.T) {
	dir := t.TempDir()
	day1 := time.Date(2026, 8, 29, 23, 50, 0, 0, time.Local)
	h := newTestHistoryStore(t, dir, "", day1)

	if _, err := h.Record([]models.Task{testTask("yesterday's win")}, day1); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// Same day: nothing clears, no matter how often it is read.
	for i := 0; i < 3; i++ {
		got, err := h.Query(nil, false)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("same-day query %d cleared the ledger", i)
		}
	}

	// Next day: first access clears.
	h.now = func() time.Time { return day1.Add(20 * time.Minute) }
	got, err := h.Query(nil, false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ledger not cleared on new day: %v", got)
	}
}

func TestRolloverClearsOnceAfterGap(t *testing.T) {
	dir := t.TempDir()
	monday := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	h := newTestHistoryStore(t, dir, "", monday)

	if _, err := h.Record([]models.Task{testTask("monday work")}, monday); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// A week of inactivity still rolls over exactly once, on first access.
	saturday := monday.AddDate(0, 0, 5)
	h.now = func() time.Time { return saturday }
	if _, err := h.Record([]models.Task{testTask("saturday work")}, saturday); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := h.Query(nil, false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "saturday work" {
		t.Errorf("ledger after gap = %v, want only the new entry", got)
	}
}

func TestRolloverPersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	day1 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)
	h := newTestHistoryStore(t, dir, "", day1)

	if _, err := h.Record([]models.Task{testTask("old")}, day1); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	day2 := day1.AddDate(0, 0, 1)
	h.now = func() time.Time { return day2 }
	if _, err := h.Query(nil, false); err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	// A second store opened on the same file with the old clock must see the
	// cleared ledger, proving the rollover was written to disk, not just held
	// in memory.
	h2 := newTestHistoryStore(t, dir, "", day2)
	got, err := h2.Query(nil, false)
	if err != nil {
		t.Fatalf("Query on reopened store failed: %v", err)
	}
	if len(got) != 0 {
		t.Error("rollover was not persisted")
	}
}

func TestQueryScopedToProject(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	h := newTestHistoryStore(t, t.TempDir(), "myapp", now)

	mine := testTask("mine", "myapp")
	other := testTask("other", "sideproject")
	if _, err := h.Record([]models.Task{mine, other}, now); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := h.Query(nil, true)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Errorf("scoped query returned %v, want only the current project's entry", got)
	}
}

func TestQueryDateBoundsUseCompletedAt(t *testing.T) {
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.Local)
	h := newTestHistoryStore(t, t.TempDir(), "", now)

	early := testTask("early")
	late := testTask("late")
	if _, err := h.Record([]models.Task{early}, now.Add(-6*time.Hour)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := h.Record([]models.Task{late}, now); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := h.Query(&Filter{DateFrom: now.Add(-time.Hour).Format(time.RFC3339)}, false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != late.ID {
		t.Errorf("dateFrom filter returned %v, want only the late entry", got)
	}
}

func TestHistoryRemove(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	h := newTestHistoryStore(t, t.TempDir(), "", now)

	a := testTask("keep")
	b := testTask("drop")
	if _, err := h.Record([]models.Task{a, b}, now); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	mut, err := h.Remove(ByID(b.ID))
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(mut.Affected) != 1 || mut.Affected[0].ID != b.ID {
		t.Errorf("Remove affected %v", mut.Affected)
	}

	got, _ := h.Query(nil, false)
	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("ledger after remove = %v", got)
	}
}

func TestHistoryUpdate(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	h := newTestHistoryStore(t, t.TempDir(), "", now)

	task := testTask("typo'd txet", "work")
	if _, err := h.Record([]models.Task{task}, now); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	mut, err := h.Update(ByID(task.ID), map[string]interface{}{"text": "fixed text"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := mut.Affected[0].Text; got != "fixed text" {
		t.Errorf("text = %q", got)
	}
	if !mut.Affected[0].CompletedAt.Equal(now) {
		t.Error("completedAt changed during update")
	}
}

func TestHistoryUpdateHonorsConfiguredDepth(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	h := NewFileHistoryStore(func() string { return "" })
	err := h.Initialize(map[string]string{
		dataFileKey:         filepath.Join(t.TempDir(), "history.json"),
		maxCategoryDepthKey: "4",
	})
	if err != nil {
		t.Fatalf("failed to initialize history store: %v", err)
	}
	h.now = func() time.Time { return now }
	t.Cleanup(func() { _ = h.Close() })

	task := testTask("deep", "a", "b", "c", "d")
	if _, err := h.Record([]models.Task{task}, now); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	mut, err := h.Update(ByID(task.ID), map[string]interface{}{"text": "still deep"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := mut.Affected[0].CategoryPath.String(); got != "a/b/c/d" {
		t.Errorf("category path = %q, want the full configured-depth path", got)
	}
}

func TestHistoryRemoveMissingID(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	h := newTestHistoryStore(t, t.TempDir(), "", now)

	_, err := h.Remove(ByID("missing"))
	if types.ErrorCode(err) != types.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}
