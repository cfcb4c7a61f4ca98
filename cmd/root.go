/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskdeck/tdl/internal/project"
	"github.com/taskdeck/tdl/models"
	"github.com/taskdeck/tdl/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tdl",
	Short: "tdl keeps your per-project task list from the command line.",
	Long: `tdl is a small personal task tracker. Tasks carry an optional
category path of up to three levels ("project/feature::text"); entries with
no explicit project are filed under the current one, resolved from git
metadata or the working directory name. Completed tasks live in a history
that resets each day and can be restored until then.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.tdl.yaml or $HOME/.tdl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// resolveProject returns the effective project name: the configured override
// when present, otherwise the name derived from the working directory.
func resolveProject() string {
	cfg := GetConfig()
	if cfg.Project.Name != "" {
		return cfg.Project.Name
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return project.Resolve(wd)
}

// GetStore initializes and returns the active-task store.
func GetStore() (store.TaskStore, error) {
	cfg := GetConfig()
	s := store.NewFileTaskStore(resolveProject)
	err := s.Initialize(map[string]string{
		"dataFile": filepath.Join(cfg.Data.Dir, cfg.Data.TasksFile),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task store: %w", err)
	}
	return s, nil
}

// GetHistoryStore initializes and returns the completed-task store.
func GetHistoryStore() (store.HistoryStore, error) {
	cfg := GetConfig()
	h := store.NewFileHistoryStore(resolveProject)
	err := h.Initialize(map[string]string{
		"dataFile": filepath.Join(cfg.Data.Dir, cfg.Data.HistoryFile),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}
	return h, nil
}

// HandleFatalError prints a message (and the underlying error when verbose)
// and exits.
func HandleFatalError(message string, err error) {
	if err != nil && viper.GetBool("verbose") {
		log.Printf("%s: %v", message, err)
	}
	fmt.Fprintln(os.Stderr, message)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

// currentProjectOnly reports the effective scope for a command: the
// configured preference, overridden by --all when the command defines it.
func currentProjectOnly(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("all"); f != nil && f.Changed {
		all, _ := cmd.Flags().GetBool("all")
		return !all
	}
	return GetConfig().Scope.CurrentProjectOnly
}

// resolveTaskArg translates a user-facing task reference into a concrete
// task. A number is a 1-based display index into the current scoped view,
// re-resolved now; anything else is taken as a task id.
func resolveTaskArg(taskStore store.TaskStore, arg string, projectOnly bool) (models.Task, error) {
	if index, err := strconv.Atoi(arg); err == nil {
		return taskStore.GetByIndex(index, projectOnly)
	}
	tasks, err := taskStore.List(nil, false)
	if err != nil {
		return models.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == arg {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("no task with id or index %q", arg)
}

// selectTaskInteractive presents a prompt to select a task from the current
// scoped view.
func selectTaskInteractive(taskStore store.TaskStore, projectOnly bool, label string) (models.Task, error) {
	tasks, err := taskStore.List(nil, projectOnly)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}
	if len(tasks) == 0 {
		return models.Task{}, errNoTasks
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Text | cyan }} ({{ .CategoryPath }})`,
		Inactive: `  {{ .Text | faint }} ({{ .CategoryPath }})`,
		Selected: `{{ "✔" | green }} {{ .Text | faint }}`,
	}

	searcher := func(input string, index int) bool {
		t := tasks[index]
		return strings.Contains(strings.ToLower(t.Text), strings.ToLower(input))
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err
	}
	return tasks[i], nil
}

var errNoTasks = fmt.Errorf("no tasks found matching your criteria")
