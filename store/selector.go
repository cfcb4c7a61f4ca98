package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/tdl/models"
	"github.com/taskdeck/tdl/types"
)

// Selector designates which task(s) an operation targets. Exactly one form
// must be set per call: a single id, a non-empty id set, or a filter. An
// empty or absent filter is rejected rather than silently matching the whole
// collection.
type Selector struct {
	ID     string
	IDs    []string
	Filter *Filter
}

// ByID returns a single-id selector.
func ByID(id string) Selector { return Selector{ID: id} }

// ByIDs returns an id-set selector.
func ByIDs(ids ...string) Selector { return Selector{IDs: ids} }

// ByFilter returns a filter selector.
func ByFilter(f Filter) Selector { return Selector{Filter: &f} }

func (s Selector) validate() error {
	forms := 0
	if s.ID != "" {
		forms++
	}
	if s.IDs != nil {
		forms++
	}
	if s.Filter != nil {
		forms++
	}
	switch {
	case forms == 0:
		return types.NewStoreError(types.CodeInvalidSelector, "selector must set exactly one of id, ids, or filter", nil)
	case forms > 1:
		return types.NewStoreError(types.CodeInvalidSelector, "selector sets more than one form", map[string]interface{}{
			"forms": forms,
		})
	case s.IDs != nil && len(s.IDs) == 0:
		return types.NewStoreError(types.CodeInvalidSelector, "selector ids list is empty", nil)
	case s.Filter != nil && s.Filter.isZero():
		return types.NewStoreError(types.CodeInvalidSelector, "selector filter has no recognized fields", nil)
	}
	return nil
}

// Filter is a predicate specification over a collection. All present fields
// combine with logical AND. Date bounds are inclusive and apply to createdAt
// for active tasks and completedAt for history entries.
type Filter struct {
	Category       string
	Subcategory    string
	Untagged       bool
	CurrentProject bool
	DateFrom       string
	DateTo         string
	SearchText     string
}

func (f *Filter) isZero() bool {
	return f.Category == "" && f.Subcategory == "" && !f.Untagged &&
		!f.CurrentProject && f.DateFrom == "" && f.DateTo == "" && f.SearchText == ""
}

// filterDateLayouts are the accepted calendar timestamp formats for date
// bounds, tried in order.
var filterDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseFilterDate(field, value string) (time.Time, bool, error) {
	for _, layout := range filterDateLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return t, layout == "2006-01-02", nil
		}
	}
	return time.Time{}, false, types.NewStoreError(types.CodeInvalidFilter,
		fmt.Sprintf("unparsable date %q for %s (expected 2006-01-02 or RFC 3339)", value, field),
		map[string]interface{}{
			"field":   field,
			"value":   value,
			"formats": filterDateLayouts,
		})
}

// compiledFilter is a Filter with its date bounds parsed and the project name
// resolved, ready to run over a collection. Compilation happens once per
// operation so an unparsable date fails the call before any record is
// examined.
type compiledFilter struct {
	filter   Filter
	project  string
	from, to time.Time
	hasFrom  bool
	hasTo    bool
}

func (f Filter) compile(project string) (*compiledFilter, error) {
	c := &compiledFilter{filter: f, project: project}
	if f.DateFrom != "" {
		t, _, err := parseFilterDate("dateFrom", f.DateFrom)
		if err != nil {
			return nil, err
		}
		c.from, c.hasFrom = t, true
	}
	if f.DateTo != "" {
		t, dateOnly, err := parseFilterDate("dateTo", f.DateTo)
		if err != nil {
			return nil, err
		}
		if dateOnly {
			// A bare date as an upper bound means "through the end of
			// that day", keeping the bound inclusive.
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		c.to, c.hasTo = t, true
	}
	return c, nil
}

// matches evaluates the filter against one task. stamp is the timestamp the
// date bounds apply to: createdAt for active tasks, completedAt for history.
func (c *compiledFilter) matches(t models.Task, stamp time.Time) bool {
	f := c.filter
	if f.Category != "" && !t.CategoryPath.MatchesLevel1(f.Category) {
		return false
	}
	if f.Subcategory != "" && t.CategoryPath.Level(2) != f.Subcategory {
		return false
	}
	if f.Untagged && len(t.CategoryPath) != 0 {
		return false
	}
	if f.CurrentProject {
		// An unresolvable project matches nothing rather than everything.
		if c.project == "" || !t.CategoryPath.MatchesLevel1(c.project) {
			return false
		}
	}
	if c.hasFrom && stamp.Before(c.from) {
		return false
	}
	if c.hasTo && stamp.After(c.to) {
		return false
	}
	if f.SearchText != "" && !strings.Contains(strings.ToLower(t.Text), strings.ToLower(f.SearchText)) {
		return false
	}
	return true
}

// record is the unit the selector resolver works over: a task plus the
// timestamp its date bounds apply to. Both stores project their collections
// into this shape before resolution.
type record struct {
	task  models.Task
	stamp time.Time
}

// resolveTargets turns a selector into the concrete id set it designates
// within records. Explicit ids must all resolve; the first missing id fails
// the operation with NOT_FOUND before anything is mutated. A filter selector
// may legitimately match nothing.
func resolveTargets(sel Selector, records []record, project string) (map[string]bool, error) {
	if err := sel.validate(); err != nil {
		return nil, err
	}

	byID := make(map[string]bool, len(records))
	for _, r := range records {
		byID[r.task.ID] = true
	}

	targets := make(map[string]bool)
	switch {
	case sel.ID != "":
		if !byID[sel.ID] {
			return nil, types.NotFoundError(sel.ID)
		}
		targets[sel.ID] = true
	case sel.IDs != nil:
		for _, id := range sel.IDs {
			if !byID[id] {
				return nil, types.NotFoundError(id)
			}
			targets[id] = true
		}
	default:
		compiled, err := sel.Filter.compile(project)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			if compiled.matches(r.task, r.stamp) {
				targets[r.task.ID] = true
			}
		}
	}
	return targets, nil
}
