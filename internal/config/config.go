// Package config loads audit configuration from an optional
// .codeaudit.yaml file at the audited root.
package config

import (
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"codeaudit/internal/discovery"
	"codeaudit/internal/report"
)

// Config holds the tunable parts of an audit run. Everything has a usable
// default; a missing config file is not an error.
type Config struct {
	// ExcludeDirs are directory names never descended into during discovery.
	ExcludeDirs []string `json:"excludeDirs" mapstructure:"excludeDirs"`

	// ReportFile is the Markdown report output path.
	ReportFile string `json:"reportFile" mapstructure:"reportFile"`

	// Workers is how many files are analyzed concurrently.
	Workers int `json:"workers" mapstructure:"workers"`

	// Graph enables writing the dependency-graph DOT artifact.
	Graph bool `json:"graph" mapstructure:"graph"`

	// GraphFile is the DOT output path when Graph is enabled.
	GraphFile string `json:"graphFile" mapstructure:"graphFile"`

	// Logging controls log format and level.
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		ExcludeDirs: discovery.DefaultExcludedDirs,
		ReportFile:  report.DefaultFilename,
		Workers:     runtime.NumCPU(),
		Graph:       true,
		GraphFile:   "codebase_dependency_map.dot",
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.codeaudit.yaml, falling back
// to defaults when the file does not exist.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("excludeDirs", defaults.ExcludeDirs)
	v.SetDefault("reportFile", defaults.ReportFile)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("graph", defaults.Graph)
	v.SetDefault("graphFile", defaults.GraphFile)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName(".codeaudit")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Clean(root))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values and normalizes degenerate ones.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if c.ReportFile == "" {
		return &ConfigError{Field: "reportFile", Message: "must not be empty"}
	}
	if c.Graph && c.GraphFile == "" {
		return &ConfigError{Field: "graphFile", Message: "must not be empty when graph is enabled"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
