// Package config loads gfc configuration from YAML files and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by the flowchart command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Config holds all configuration for go-flowchart.
type Config struct {
	// Format is the default output format for the flowchart command.
	Format string `yaml:"format" env:"GFC_FORMAT"`

	// WrapColumn is the word-wrap width for node labels in DOT output.
	WrapColumn int `yaml:"wrap_column" env:"GFC_WRAP_COLUMN"`

	// RankDir is the Graphviz layout direction (TB, LR, BT, RL).
	RankDir string `yaml:"rank_dir" env:"GFC_RANK_DIR"`

	// CacheEnabled toggles the per-file analysis cache used by analyze.
	CacheEnabled bool `yaml:"cache_enabled" env:"GFC_CACHE_ENABLED"`

	// CacheDir is where the analysis cache is persisted.
	CacheDir string `yaml:"cache_dir" env:"GFC_CACHE_DIR"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" env:"GFC_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Format:       FormatText,
		WrapColumn:   30,
		RankDir:      "TB",
		CacheEnabled: true,
		CacheDir:     ".gfc/cache",
		Verbose:      false,
	}
}

// globalConfigFilePath returns the global config file path (~/.gfc/config.yaml)
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gfc/config.yaml"
	}
	return filepath.Join(home, ".gfc", "config.yaml")
}

// ProjectConfigFilePath returns the project-level config file path.
func ProjectConfigFilePath() string {
	return ".gfc/config.yaml"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.gfc/config.yaml)
// 3. Global config (~/.gfc/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalConfigPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalConfigPath, err)
		}
	}

	projectConfigPath := ProjectConfigFilePath()
	if data, err := os.ReadFile(projectConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectConfigPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file path, creating
// parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GFC_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("GFC_WRAP_COLUMN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WrapColumn = n
		}
	}
	if v := os.Getenv("GFC_RANK_DIR"); v != "" {
		cfg.RankDir = v
	}
	if v := os.Getenv("GFC_CACHE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CacheEnabled = b
		}
	}
	if v := os.Getenv("GFC_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("GFC_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatDOT:
	default:
		return fmt.Errorf("invalid format %q (use %s, %s, or %s)", c.Format, FormatText, FormatJSON, FormatDOT)
	}

	if c.WrapColumn <= 0 {
		return fmt.Errorf("wrap_column must be positive, got %d", c.WrapColumn)
	}

	switch c.RankDir {
	case "TB", "LR", "BT", "RL":
	default:
		return fmt.Errorf("invalid rank_dir %q (use TB, LR, BT, or RL)", c.RankDir)
	}

	if c.CacheEnabled && c.CacheDir == "" {
		return fmt.Errorf("cache_dir is required when cache_enabled is true")
	}

	return nil
}
