// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the fichas
// binaries.
//
// Configuration comes from a single file named by the FICHAS_CONFIG
// environment variable (via [Load]) or a --config flag (via
// [LoadFile]). There is no directory discovery and no environment
// variable overrides of individual values; ${VAR} expansion on path
// fields is the only substitution performed. Binaries fall back to
// [Default] when no file is named.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the fichas binaries.
type Config struct {
	// Server configures the service endpoint.
	Server ServerConfig `yaml:"server"`

	// Session configures operator session persistence.
	Session SessionConfig `yaml:"session"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`

	// UI configures the terminal interface.
	UI UIConfig `yaml:"ui"`
}

// ServerConfig configures the service endpoint.
type ServerConfig struct {
	// URL is the service root, e.g. "https://os.assistec.example".
	URL string `yaml:"url"`
}

// SessionConfig configures session persistence.
type SessionConfig struct {
	// File overrides the session file path. Empty means the default
	// XDG location.
	File string `yaml:"file"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// File receives log output. Empty disables logging in the TUI
	// (which cannot log to the terminal it draws on).
	File string `yaml:"file"`

	// Level is "debug", "info", "warn", or "error". Default "info".
	Level string `yaml:"level"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	// Mouse enables mouse tracking. Default true.
	Mouse *bool `yaml:"mouse"`

	// SplitPercent is the initial width of the list pane as a
	// percentage of the screen. Default 55, clamped to 20..80.
	SplitPercent int `yaml:"split_percent"`
}

// Default returns the built-in configuration. The server URL is the
// only field without a usable default; binaries require it from the
// file or a flag.
func Default() *Config {
	mouse := true
	return &Config{
		Log: LogConfig{Level: "info"},
		UI: UIConfig{
			Mouse:        &mouse,
			SplitPercent: 55,
		},
	}
}

// Load loads configuration from the file named by FICHAS_CONFIG.
// Fails when the variable is unset; callers that treat the file as
// optional should check the variable themselves and use Default.
func Load() (*Config, error) {
	path := os.Getenv("FICHAS_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("FICHAS_CONFIG environment variable not set; " +
			"set it to the path of your fichas.yaml config file, or use --config")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merging
// over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.expandVariables()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// variablePattern matches ${VAR} and ${VAR:-default} forms.
var variablePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// expandVariables substitutes ${VAR} patterns in path fields. Only
// paths are expanded; the server URL is taken literally.
func (c *Config) expandVariables() {
	for _, field := range []*string{&c.Session.File, &c.Log.File} {
		*field = variablePattern.ReplaceAllStringFunc(*field, func(match string) string {
			groups := variablePattern.FindStringSubmatch(match)
			if value, ok := os.LookupEnv(groups[1]); ok {
				return value
			}
			return groups[3]
		})
	}
}

func (c *Config) validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.UI.SplitPercent != 0 && (c.UI.SplitPercent < 20 || c.UI.SplitPercent > 80) {
		return fmt.Errorf("ui split_percent %d out of range 20..80", c.UI.SplitPercent)
	}
	return nil
}
