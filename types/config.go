/*
Copyright © 2026 The tdl Authors
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Scope   ScopeConfig   `mapstructure:"scope"`
}

// ProjectConfig holds project-resolution settings.
type ProjectConfig struct {
	// Name overrides the resolved project name. When empty, the name is
	// derived from version-control metadata or the working directory.
	Name string `mapstructure:"name"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	Dir         string `mapstructure:"dir" validate:"required"`
	TasksFile   string `mapstructure:"tasksFile" validate:"required"`
	HistoryFile string `mapstructure:"historyFile" validate:"required"`
}

// ScopeConfig holds the display-scope preference.
type ScopeConfig struct {
	// CurrentProjectOnly restricts queries and listings to tasks whose
	// first category level matches the resolved project.
	CurrentProjectOnly bool `mapstructure:"currentProjectOnly"`
}
