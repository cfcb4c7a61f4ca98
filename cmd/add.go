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
	addNoProject bool
	addProject   string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add <entry>...",
	Aliases: []string{"a"},
	Short:   "Add one or more tasks",
	Long: `Add tasks. Each entry may carry a category prefix of up to three
levels separated from the text by "::". Entries with at most one explicit
level are filed under the current project unless --no-project is given.`,
	Example: `  tdl add "Fix bug"
  tdl add "backend::Fix bug"
  tdl add "other/api::Add endpoint"
  tdl add --no-project "Buy milk" "Call dentist"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		items := make([]store.AddItem, 0, len(args))
		for _, entry := range args {
			items = append(items, store.AddItem{Entry: entry})
		}

		mut, err := taskStore.BulkAdd(items, store.AddOptions{
			NoProjectPrefix: addNoProject,
			Project:         addProject,
		})
		if err != nil {
			if len(mut.Affected) > 0 {
				fmt.Printf("Added %d of %d tasks before failing.\n", len(mut.Affected), len(items))
			}
			HandleFatalError("Error: Could not add task.", err)
		}

		for _, t := range mut.Affected {
			if cat := t.CategoryPath.String(); cat != "" {
				fmt.Printf("Added: %s :: %s\n", cat, t.Text)
			} else {
				fmt.Printf("Added: %s\n", t.Text)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().BoolVar(&addNoProject, "no-project", false, "do not prefix the current project name")
	addCmd.Flags().StringVar(&addProject, "project", "", "override the project name used for prefixing")
}
