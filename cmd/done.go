/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskdeck/tdl/models"
	"github.com/taskdeck/tdl/store"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [index|id]",
	Aliases: []string{"complete", "d"},
	Short:   "Mark a task as done",
	Long: `Complete a task, moving it into today's history. The argument is a
display index from 'tdl list' (resolved against the list as it is right now)
or a task id. Without an argument an interactive picker opens.`,
	Example: `  tdl done 2
  tdl done 6b3c9d70-4e9f-4c0b-9f2e-1f6a1d2b3c4d
  tdl done`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		historyStore, err := GetHistoryStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the history store.", err)
		}
		defer func() { _ = historyStore.Close() }()

		projectOnly := currentProjectOnly(cmd)

		var task models.Task
		if len(args) > 0 {
			task, err = resolveTaskArg(taskStore, args[0], projectOnly)
			if err != nil {
				HandleFatalError(fmt.Sprintf("Error: Could not find task %q.", args[0]), err)
			}
		} else {
			task, err = selectTaskInteractive(taskStore, projectOnly, "Select task to mark as done")
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) {
					fmt.Println("Operation cancelled.")
					return
				}
				if errors.Is(err, errNoTasks) {
					fmt.Println("No tasks available to mark as done.")
					return
				}
				HandleFatalError("Error: Could not select a task.", err)
			}
		}

		_, entries, err := taskStore.Complete(store.ByID(task.ID), historyStore)
		if err != nil {
			HandleFatalError("Error: Could not complete the task.", err)
		}
		for _, e := range entries {
			fmt.Printf("Done: %s\n", e.Text)
		}
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	doneCmd.Flags().Bool("all", false, "resolve the index against every project's tasks")
}
