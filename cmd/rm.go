/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskdeck/tdl/store"
)

var (
	rmCategory string
	rmUntagged bool
	rmSearch   string
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:     "rm [index|id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove tasks without completing them",
	Long: `Delete tasks permanently; nothing is written to history. Target a
single task by display index or id, or a whole set with the filter flags.
Filter flags and a positional argument are mutually exclusive.`,
	Example: `  tdl rm 4
  tdl rm --category chores
  tdl rm --untagged --search milk`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		projectOnly := currentProjectOnly(cmd)

		filter := store.Filter{
			Category:   rmCategory,
			Untagged:   rmUntagged,
			SearchText: rmSearch,
		}
		hasFilter := rmCategory != "" || rmUntagged || rmSearch != ""

		var sel store.Selector
		switch {
		case hasFilter && len(args) > 0:
			HandleFatalError("Error: Give either an index/id or filter flags, not both.", nil)
		case hasFilter:
			sel = store.ByFilter(filter)
		case len(args) > 0:
			task, err := resolveTaskArg(taskStore, args[0], projectOnly)
			if err != nil {
				HandleFatalError(fmt.Sprintf("Error: Could not find task %q.", args[0]), err)
			}
			sel = store.ByID(task.ID)
		default:
			task, err := selectTaskInteractive(taskStore, projectOnly, "Select task to remove")
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) {
					fmt.Println("Operation cancelled.")
					return
				}
				if errors.Is(err, errNoTasks) {
					fmt.Println("No tasks available to remove.")
					return
				}
				HandleFatalError("Error: Could not select a task.", err)
			}
			sel = store.ByID(task.ID)
		}

		mut, err := taskStore.Remove(sel)
		if err != nil {
			HandleFatalError("Error: Could not remove tasks.", err)
		}
		if len(mut.Affected) == 0 {
			fmt.Println("Nothing matched; nothing removed.")
			return
		}
		for _, t := range mut.Affected {
			fmt.Printf("Removed: %s\n", t.Text)
		}
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().StringVar(&rmCategory, "category", "", "remove every task with this category level 1")
	rmCmd.Flags().BoolVar(&rmUntagged, "untagged", false, "remove every task without a category")
	rmCmd.Flags().StringVar(&rmSearch, "search", "", "remove every task whose text contains this substring")
	rmCmd.Flags().Bool("all", false, "resolve the index against every project's tasks")
}
