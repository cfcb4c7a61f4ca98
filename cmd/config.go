/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/taskdeck/tdl/types"
)

const (
	configName = ".tdl"
	envPrefix  = "TDL"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance; it caches struct info.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present; it's fine when it doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g., TDL_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setConfigDefaults()

	if cfgFileFlag := viper.GetString("config"); cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is the common case; anything else is
		// worth surfacing.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config file: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		HandleFatalError("Failed to parse configuration", err)
	}
	if err := validate.Struct(&GlobalAppConfig); err != nil {
		HandleFatalError("Invalid configuration", err)
	}
}

func setConfigDefaults() {
	dataDir := ".tdl"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".tdl")
	}
	viper.SetDefault("data.dir", dataDir)
	viper.SetDefault("data.tasksFile", "tasks.json")
	viper.SetDefault("data.historyFile", "history.json")
	viper.SetDefault("scope.currentProjectOnly", false)
	viper.SetDefault("project.name", "")
}

// GetConfig returns the loaded application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
