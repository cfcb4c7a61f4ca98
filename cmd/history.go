/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/tdl/internal/ui"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Show tasks completed today",
	Long: `Show the tasks completed today. The history resets the first time
it is touched on a new day, so this is always a view of the current day's
work. Completed tasks can be brought back with 'tdl restore' until then.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		historyStore, err := GetHistoryStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the history store.", err)
		}
		defer func() { _ = historyStore.Close() }()

		entries, err := historyStore.Query(nil, currentProjectOnly(cmd))
		if err != nil {
			HandleFatalError("Error: Could not read history.", err)
		}
		fmt.Print(ui.RenderHistory(entries))
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Bool("all", false, "show every project's completed tasks")
}
