/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/tdl/store"
)

var (
	updateText   string
	updateLevels [3]string
	updateClears [3]bool
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:     "update <index|id>",
	Aliases: []string{"edit", "u"},
	Short:   "Update a task's text or category",
	Long: `Update fields of a task. Only the flags you pass are changed.
Clearing a category level while a deeper level is still set is rejected,
since tasks cannot have gaps in their category path.`,
	Example: `  tdl update 3 --text "Fix login bug"
  tdl update 3 --level2 auth
  tdl update 3 --clear-level3`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		task, err := resolveTaskArg(taskStore, args[0], currentProjectOnly(cmd))
		if err != nil {
			HandleFatalError(fmt.Sprintf("Error: Could not find task %q.", args[0]), err)
		}

		patch := make(map[string]interface{})
		if cmd.Flags().Changed("text") {
			patch["text"] = updateText
		}
		for i := 0; i < 3; i++ {
			key := fmt.Sprintf("level%d", i+1)
			if cmd.Flags().Changed(key) {
				patch[key] = updateLevels[i]
			}
			if updateClears[i] {
				patch[key] = nil
			}
		}

		mut, err := taskStore.Update(store.ByID(task.ID), patch)
		if err != nil {
			HandleFatalError("Error: Could not update the task.", err)
		}
		for _, t := range mut.Affected {
			if cat := t.CategoryPath.String(); cat != "" {
				fmt.Printf("Updated: %s :: %s\n", cat, t.Text)
			} else {
				fmt.Printf("Updated: %s\n", t.Text)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateText, "text", "", "new task text")
	updateCmd.Flags().StringVar(&updateLevels[0], "level1", "", "new category level 1")
	updateCmd.Flags().StringVar(&updateLevels[1], "level2", "", "new category level 2")
	updateCmd.Flags().StringVar(&updateLevels[2], "level3", "", "new category level 3")
	updateCmd.Flags().BoolVar(&updateClears[0], "clear-level1", false, "clear category level 1")
	updateCmd.Flags().BoolVar(&updateClears[1], "clear-level2", false, "clear category level 2")
	updateCmd.Flags().BoolVar(&updateClears[2], "clear-level3", false, "clear category level 3")
	updateCmd.Flags().Bool("all", false, "resolve the index against every project's tasks")
}
