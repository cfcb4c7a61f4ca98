package models

import (
	"fmt"
	"strings"

	"github.com/taskdeck/tdl/types"
)

// DefaultMaxCategoryDepth is the number of category levels a task may carry.
const DefaultMaxCategoryDepth = 3

// CategoryPath is an ordered list of category levels attached to a task,
// broadest first (e.g. project/feature/area). Paths are dense: a level is
// only present when every shallower level is present.
type CategoryPath []string

// ParseEntry splits a task entry string of the form "l1/l2::text", "l1::text"
// or "text" into its category path and text, using the default depth limit.
func ParseEntry(input string) (CategoryPath, string, error) {
	return ParseEntryDepth(input, DefaultMaxCategoryDepth)
}

// ParseEntryDepth parses an entry string with an explicit depth limit.
// The string is split once on the first "::"; the left side, when present,
// splits on "/" into category levels. Empty segments are dropped after
// trimming. Exceeding maxDepth fails with a CATEGORY_TOO_DEEP error.
func ParseEntryDepth(input string, maxDepth int) (CategoryPath, string, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCategoryDepth
	}

	before, after, found := strings.Cut(input, "::")
	if !found {
		return nil, strings.TrimSpace(input), nil
	}

	var path CategoryPath
	for _, seg := range strings.Split(before, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			path = append(path, seg)
		}
	}
	if len(path) > maxDepth {
		return nil, "", types.NewStoreError(types.CodeCategoryTooDeep,
			fmt.Sprintf("category path has %d levels, at most %d allowed (expected \"l1/l2::text\")", len(path), maxDepth),
			map[string]interface{}{
				"depth":    len(path),
				"maxDepth": maxDepth,
				"format":   "l1/l2::text",
			})
	}
	return path, strings.TrimSpace(after), nil
}

// String renders the path back to its display form, levels joined by "/".
// An empty path renders as "".
func (p CategoryPath) String() string {
	return strings.Join(p, "/")
}

// Level returns the 1-based level value, or "" when absent.
func (p CategoryPath) Level(n int) string {
	if n < 1 || n > len(p) {
		return ""
	}
	return p[n-1]
}

// WithProject inserts project as level 1, shifting existing levels right.
// The transform only applies to paths with at most one level: two or more
// explicit levels are assumed to already name a project and are returned
// unchanged.
func (p CategoryPath) WithProject(project string) CategoryPath {
	project = strings.TrimSpace(project)
	if project == "" || len(p) > 1 {
		return p
	}
	out := make(CategoryPath, 0, len(p)+1)
	out = append(out, project)
	return append(out, p...)
}

// MatchesLevel1 reports whether level 1 equals name exactly.
func (p CategoryPath) MatchesLevel1(name string) bool {
	return len(p) >= 1 && p[0] == name
}

// MatchesLevels reports whether levels 1 and 2 equal l1 and l2 exactly.
func (p CategoryPath) MatchesLevels(l1, l2 string) bool {
	return len(p) >= 2 && p[0] == l1 && p[1] == l2
}

// Validate checks density and level well-formedness. Paths built by ParseEntry
// satisfy this by construction; patched paths go through here.
func (p CategoryPath) Validate(maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCategoryDepth
	}
	if len(p) > maxDepth {
		return types.NewStoreError(types.CodeCategoryTooDeep,
			fmt.Sprintf("category path has %d levels, at most %d allowed", len(p), maxDepth),
			map[string]interface{}{"depth": len(p), "maxDepth": maxDepth})
	}
	for i, level := range p {
		if strings.TrimSpace(level) == "" {
			return types.NewStoreError(types.CodeInvalidPatch,
				fmt.Sprintf("category level %d is empty", i+1),
				map[string]interface{}{"level": i + 1})
		}
	}
	return nil
}
