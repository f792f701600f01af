// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// SaveInterval is how long state changes are coalesced before a
	// snapshot write, as a Go duration string (e.g. "1s", "500ms").
	SaveInterval string `yaml:"save_interval"`
	// SnapshotFile is the snapshot file name inside the data directory.
	SnapshotFile string `yaml:"snapshot_file"`

	DataDir string `yaml:"-"` // set by caller, not from config file
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SaveInterval: "1s",
		SnapshotFile: "todos.json",
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(configPath); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.SaveInterval == "" {
		c.SaveInterval = defaults.SaveInterval
	}
	if c.SnapshotFile == "" {
		c.SnapshotFile = defaults.SnapshotFile
	}
}

// Interval returns the parsed save interval. Validate guarantees the field
// parses, so errors here only occur on an unvalidated Config.
func (c *Config) Interval() time.Duration {
	d, err := time.ParseDuration(c.SaveInterval)
	if err != nil {
		return time.Second
	}
	return d
}

// SnapshotPath returns the full path of the snapshot file.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, c.SnapshotFile)
}
