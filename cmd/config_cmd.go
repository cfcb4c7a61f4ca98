/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change tdl settings",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// configScopeCmd gets or sets the default listing scope.
var configScopeCmd = &cobra.Command{
	Use:   "scope [on|off]",
	Short: "Get or set whether listings default to the current project",
	Long: `With no argument, print the current scope setting. With "on",
listings default to the current project only; with "off", they show every
project. Either way individual commands can override with --all.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			if GetConfig().Scope.CurrentProjectOnly {
				fmt.Println("scope: current project only (on)")
			} else {
				fmt.Println("scope: all projects (off)")
			}
			return
		}

		var value bool
		switch args[0] {
		case "on":
			value = true
		case "off":
			value = false
		default:
			HandleFatalError(fmt.Sprintf("Error: scope must be \"on\" or \"off\", got %q.", args[0]), nil)
		}

		viper.Set("scope.currentProjectOnly", value)
		if err := writeConfigFile(); err != nil {
			HandleFatalError("Error: Could not write the config file.", err)
		}
		fmt.Printf("scope set to %s\n", args[0])
	},
}

// writeConfigFile persists the current viper settings, creating the config
// file in the home directory when none exists yet.
func writeConfigFile() error {
	if err := viper.WriteConfig(); err == nil {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(home, configName+".yaml"))
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configScopeCmd)
}
