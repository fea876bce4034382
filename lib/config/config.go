// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for repairdesk.
//
// Configuration is loaded from a single YAML file specified by the
// REPAIRDESK_CONFIG environment variable or the --config flag. When
// neither is set, built-in defaults apply: everything lives under
// the user's data directory. Environment variables never override
// file values; the only expansion performed is ${VAR} in paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at the config
// file.
const EnvVar = "REPAIRDESK_CONFIG"

// Config is the full repairdesk configuration.
type Config struct {
	// Paths configures where persistent data lives.
	Paths PathsConfig `yaml:"paths"`

	// Rooms configures the room map.
	Rooms RoomsConfig `yaml:"rooms"`
}

// PathsConfig configures directory and file locations.
type PathsConfig struct {
	// Root is the base directory for repairdesk data.
	Root string `yaml:"root"`

	// Database is the SQLite database file path. Defaults to
	// repairdesk.db under Root.
	Database string `yaml:"database"`
}

// RoomsConfig configures the room map.
type RoomsConfig struct {
	// PlanFile is an optional JSONC room plan. Empty means the
	// built-in LC207 plan.
	PlanFile string `yaml:"plan_file"`
}

// Default returns the built-in configuration: data under the user's
// home directory, the built-in room plan.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	root := filepath.Join(homeDir, ".local", "share", "repairdesk")
	return &Config{
		Paths: PathsConfig{
			Root:     root,
			Database: filepath.Join(root, "repairdesk.db"),
		},
	}
}

// Load returns the configuration from the file named by the
// REPAIRDESK_CONFIG environment variable, or the defaults when the
// variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged
// over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Paths.Root == "" {
		return fmt.Errorf("paths.root is required")
	}
	if c.Paths.Database == "" {
		return fmt.Errorf("paths.database is required")
	}
	return nil
}

// EnsurePaths creates the data directory if it does not exist.
func (c *Config) EnsurePaths() error {
	if err := os.MkdirAll(c.Paths.Root, 0o755); err != nil {
		return fmt.Errorf("config: creating %s: %w", c.Paths.Root, err)
	}
	if dir := filepath.Dir(c.Paths.Database); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: creating %s: %w", dir, err)
		}
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths. REPAIRDESK_ROOT refers to the configured root, so the
// database and plan paths can be written relative to it.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"REPAIRDESK_ROOT": c.Paths.Root,
		"HOME":            os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["REPAIRDESK_ROOT"] = c.Paths.Root

	c.Paths.Database = expandVars(c.Paths.Database, vars)
	c.Rooms.PlanFile = expandVars(c.Rooms.PlanFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}
