package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Format != FormatText {
		t.Errorf("expected default format %q, got %q", FormatText, cfg.Format)
	}
	if cfg.WrapColumn != 30 {
		t.Errorf("expected default wrap_column 30, got %d", cfg.WrapColumn)
	}
	if cfg.RankDir != "TB" {
		t.Errorf("expected default rank_dir TB, got %q", cfg.RankDir)
	}
	if !cfg.CacheEnabled {
		t.Error("expected cache to be enabled by default")
	}
	if cfg.CacheDir != ".gfc/cache" {
		t.Errorf("expected default cache_dir .gfc/cache, got %q", cfg.CacheDir)
	}
	if cfg.Verbose {
		t.Error("expected verbose to be disabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "json format",
			mutate:  func(c *Config) { c.Format = FormatJSON },
			wantErr: false,
		},
		{
			name:    "dot format",
			mutate:  func(c *Config) { c.Format = FormatDOT },
			wantErr: false,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "zero wrap column",
			mutate:  func(c *Config) { c.WrapColumn = 0 },
			wantErr: true,
		},
		{
			name:    "negative wrap column",
			mutate:  func(c *Config) { c.WrapColumn = -5 },
			wantErr: true,
		},
		{
			name:    "left-to-right rank dir",
			mutate:  func(c *Config) { c.RankDir = "LR" },
			wantErr: false,
		},
		{
			name:    "unknown rank dir",
			mutate:  func(c *Config) { c.RankDir = "diagonal" },
			wantErr: true,
		},
		{
			name:    "cache enabled without dir",
			mutate:  func(c *Config) { c.CacheDir = "" },
			wantErr: true,
		},
		{
			name: "cache disabled without dir",
			mutate: func(c *Config) {
				c.CacheEnabled = false
				c.CacheDir = ""
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gfc", "config.yaml")

	cfg := DefaultConfig()
	cfg.Format = FormatDOT
	cfg.WrapColumn = 42
	cfg.RankDir = "LR"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	loaded := DefaultConfig()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if loaded.Format != FormatDOT {
		t.Errorf("expected format %q after reload, got %q", FormatDOT, loaded.Format)
	}
	if loaded.WrapColumn != 42 {
		t.Errorf("expected wrap_column 42 after reload, got %d", loaded.WrapColumn)
	}
	if loaded.RankDir != "LR" {
		t.Errorf("expected rank_dir LR after reload, got %q", loaded.RankDir)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GFC_FORMAT", "json")
	t.Setenv("GFC_WRAP_COLUMN", "55")
	t.Setenv("GFC_RANK_DIR", "LR")
	t.Setenv("GFC_CACHE_ENABLED", "false")
	t.Setenv("GFC_VERBOSE", "true")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Format != FormatJSON {
		t.Errorf("expected format json from env, got %q", cfg.Format)
	}
	if cfg.WrapColumn != 55 {
		t.Errorf("expected wrap_column 55 from env, got %d", cfg.WrapColumn)
	}
	if cfg.RankDir != "LR" {
		t.Errorf("expected rank_dir LR from env, got %q", cfg.RankDir)
	}
	if cfg.CacheEnabled {
		t.Error("expected cache disabled from env")
	}
	if !cfg.Verbose {
		t.Error("expected verbose enabled from env")
	}
}

func TestEnvOverridesIgnoreInvalid(t *testing.T) {
	t.Setenv("GFC_WRAP_COLUMN", "not-a-number")
	t.Setenv("GFC_CACHE_ENABLED", "maybe")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.WrapColumn != 30 {
		t.Errorf("expected wrap_column to keep default 30, got %d", cfg.WrapColumn)
	}
	if !cfg.CacheEnabled {
		t.Error("expected cache_enabled to keep default true")
	}
}
