package ui

import (
	"fmt"
	"strings"

	"github.com/taskdeck/tdl/models"
	"github.com/taskdeck/tdl/store"
)

// RenderTaskGroups renders the grouped display view. Indexes come from the
// store so they line up with what index-taking commands act on.
func RenderTaskGroups(groups []store.TaskGroup) string {
	if len(groups) == 0 {
		return StyleSubtle.Render("No tasks.") + "\n"
	}

	var b strings.Builder
	for _, g := range groups {
		header := g.Category
		if header == "" {
			header = "(untagged)"
		}
		b.WriteString(StyleCategory.Render(header))
		b.WriteString("\n")
		for _, tv := range g.Tasks {
			b.WriteString(fmt.Sprintf("  %s %s%s\n",
				StyleIndex.Render(fmt.Sprintf("%3d.", tv.Index)),
				StyleText.Render(tv.Task.Text),
				renderSubPath(tv.Task.CategoryPath)))
		}
	}
	return b.String()
}

// renderSubPath shows the levels below the group header, when any.
func renderSubPath(path models.CategoryPath) string {
	if len(path) < 2 {
		return ""
	}
	return " " + StyleSubtle.Render("["+strings.Join(path[1:], "/")+"]")
}

// RenderHistory renders today's completed entries.
func RenderHistory(entries []models.HistoryEntry) string {
	if len(entries) == 0 {
		return StyleSubtle.Render("Nothing completed today.") + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleCategory.Render("Completed today"))
	b.WriteString("\n")
	for i, e := range entries {
		label := e.Text
		if cat := e.CategoryPath.String(); cat != "" {
			label = cat + " :: " + label
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			StyleIndex.Render(fmt.Sprintf("%3d.", i+1)),
			StyleSuccess.Render("✔"),
			StyleText.Render(label)))
	}
	return b.String()
}
