/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskdeck/tdl/store"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <index|id>",
	Short: "Restore a completed task to the active list",
	Long: `Move a task completed today back to the active list. It keeps its
id and creation time; only the completion stamp is dropped. The argument is
a 1-based position in 'tdl history' output or a task id.`,
	Example: `  tdl restore 1
  tdl restore 6b3c9d70-4e9f-4c0b-9f2e-1f6a1d2b3c4d`,
	Args: cobra.ExactArgs(1),
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

		id := args[0]
		if index, convErr := strconv.Atoi(args[0]); convErr == nil {
			entries, err := historyStore.Query(nil, projectOnly)
			if err != nil {
				HandleFatalError("Error: Could not read history.", err)
			}
			if index < 1 || index > len(entries) {
				HandleFatalError(fmt.Sprintf("Error: index %d invalid, valid range 1-%d.", index, len(entries)), nil)
			}
			id = entries[index-1].ID
		}

		mut, err := taskStore.Restore(store.ByID(id), historyStore)
		if err != nil {
			HandleFatalError("Error: Could not restore the task.", err)
		}
		for _, t := range mut.Affected {
			fmt.Printf("Restored: %s\n", t.Text)
		}
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().Bool("all", false, "resolve the index against every project's history")
}
