/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/tdl/internal/ui"
	"github.com/taskdeck/tdl/store"
)

var (
	listCategory string
	listSub      string
	listUntagged bool
	listSearch   string
	listFrom     string
	listTo       string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List tasks grouped by category",
	Long: `List active tasks grouped by their first category level, with the
display indexes that done, update, and rm accept. Filter flags switch to a
flat, filtered listing.`,
	Example: `  tdl list
  tdl list --all
  tdl list --category tdl --search bug
  tdl list --from 2026-08-01 --to 2026-08-30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		projectOnly := currentProjectOnly(cmd)
		filter := listFilter()

		if filter == nil {
			groups, err := taskStore.ListView(projectOnly)
			if err != nil {
				HandleFatalError("Error: Could not list tasks.", err)
			}
			fmt.Print(ui.RenderTaskGroups(groups))
			return
		}

		tasks, err := taskStore.List(filter, projectOnly)
		if err != nil {
			HandleFatalError("Error: Could not list tasks.", err)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks match.")
			return
		}
		for _, t := range tasks {
			if cat := t.CategoryPath.String(); cat != "" {
				fmt.Printf("  %s :: %s\n", cat, t.Text)
			} else {
				fmt.Printf("  %s\n", t.Text)
			}
		}
	},
}

// listFilter assembles the filter from flags, nil when none are set.
func listFilter() *store.Filter {
	f := store.Filter{
		Category:    listCategory,
		Subcategory: listSub,
		Untagged:    listUntagged,
		DateFrom:    listFrom,
		DateTo:      listTo,
		SearchText:  listSearch,
	}
	if f.Category == "" && f.Subcategory == "" && !f.Untagged && f.DateFrom == "" && f.DateTo == "" && f.SearchText == "" {
		return nil
	}
	return &f
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("all", false, "list tasks of every project, not just the current one")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category level 1")
	listCmd.Flags().StringVar(&listSub, "sub", "", "filter by category level 2")
	listCmd.Flags().BoolVar(&listUntagged, "untagged", false, "only tasks without a category")
	listCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive substring match on task text")
	listCmd.Flags().StringVar(&listFrom, "from", "", "created on or after this date (2006-01-02)")
	listCmd.Flags().StringVar(&listTo, "to", "", "created on or before this date (2006-01-02)")
}
