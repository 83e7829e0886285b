// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Inject.SetterPrefix != "Inject" {
		t.Errorf("Inject.SetterPrefix = %q, want Inject", cfg.Inject.SetterPrefix)
	}
	if !cfg.Inject.JIT {
		t.Error("Inject.JIT should be true by default")
	}
	if cfg.Recommend.NeighborhoodSize != 20 {
		t.Errorf("Recommend.NeighborhoodSize = %d, want 20", cfg.Recommend.NeighborhoodSize)
	}
	if cfg.Recommend.MinSimilarity != 0.1 {
		t.Errorf("Recommend.MinSimilarity = %v, want 0.1", cfg.Recommend.MinSimilarity)
	}
	if cfg.Recommend.WarmTimeout != 30*time.Second {
		t.Errorf("Recommend.WarmTimeout = %v, want 30s", cfg.Recommend.WarmTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

// TestValidate tests struct tag validation with koanf field paths
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level must be one of",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format must be one of",
		},
		{
			name:    "empty setter prefix",
			mutate:  func(c *Config) { c.Inject.SetterPrefix = "" },
			wantErr: "inject.setter_prefix is required",
		},
		{
			name:    "setter prefix with symbols",
			mutate:  func(c *Config) { c.Inject.SetterPrefix = "Set_" },
			wantErr: "inject.setter_prefix failed",
		},
		{
			name:    "unknown algorithm",
			mutate:  func(c *Config) { c.Recommend.Algorithm = "als" },
			wantErr: "recommend.algorithm must be one of",
		},
		{
			name:    "zero neighborhood",
			mutate:  func(c *Config) { c.Recommend.NeighborhoodSize = 0 },
			wantErr: "recommend.neighborhood_size must be at least 1",
		},
		{
			name:    "similarity out of range",
			mutate:  func(c *Config) { c.Recommend.MinSimilarity = 1.5 },
			wantErr: "recommend.min_similarity must be at most 1",
		},
		{
			name: "list larger than candidates",
			mutate: func(c *Config) {
				c.Recommend.ListSize = 50
				c.Recommend.MaxCandidates = 10
			},
			wantErr: "recommend.list_size must not exceed MaxCandidates",
		},
		{
			name:    "negative cache size",
			mutate:  func(c *Config) { c.Recommend.CacheSize = -1 },
			wantErr: "recommend.cache_size must be at least 0",
		},
		{
			name:    "missing data file",
			mutate:  func(c *Config) { c.Recommend.DataFile = "/nonexistent/ratings.json" },
			wantErr: "recommend.data_file must be an existing file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestValidate_ReportsAllViolations verifies errors are joined
func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "loud"
	cfg.Recommend.Algorithm = "random"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "logging.level") || !strings.Contains(err.Error(), "recommend.algorithm") {
		t.Errorf("expected both violations, got %q", err.Error())
	}
}

// TestLoad_Defaults loads with no file and no environment overrides
func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recommend.Algorithm != "itemitem" {
		t.Errorf("Recommend.Algorithm = %q, want itemitem", cfg.Recommend.Algorithm)
	}
}

// TestLoad_FileAndEnvPrecedence verifies ENV > File > Defaults
func TestLoad_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recwire.yaml")
	content := `
logging:
  level: debug
inject:
  setter_prefix: Use
recommend:
  algorithm: popularity
  neighborhood_size: 40
  list_size: 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("RECWIRE_NEIGHBORHOOD_SIZE", "55")
	t.Setenv("RECWIRE_WARM_TIMEOUT", "45s")
	t.Setenv("RECWIRE_JIT", "false")
	t.Setenv("RECWIRE_UNRELATED", "ignored")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug (file)", cfg.Logging.Level)
	}
	if cfg.Inject.SetterPrefix != "Use" {
		t.Errorf("Inject.SetterPrefix = %q, want Use (file)", cfg.Inject.SetterPrefix)
	}
	if cfg.Inject.JIT {
		t.Error("Inject.JIT should be false (env)")
	}
	if cfg.Recommend.Algorithm != "popularity" {
		t.Errorf("Recommend.Algorithm = %q, want popularity (file)", cfg.Recommend.Algorithm)
	}
	if cfg.Recommend.NeighborhoodSize != 55 {
		t.Errorf("Recommend.NeighborhoodSize = %d, want 55 (env)", cfg.Recommend.NeighborhoodSize)
	}
	if cfg.Recommend.ListSize != 5 {
		t.Errorf("Recommend.ListSize = %d, want 5 (file)", cfg.Recommend.ListSize)
	}
	if cfg.Recommend.MinSimilarity != 0.1 {
		t.Errorf("Recommend.MinSimilarity = %v, want 0.1 (default)", cfg.Recommend.MinSimilarity)
	}
	if cfg.Recommend.WarmTimeout != 45*time.Second {
		t.Errorf("Recommend.WarmTimeout = %v, want 45s (env)", cfg.Recommend.WarmTimeout)
	}
}

// TestLoad_ConfigPathEnv verifies RECWIRE_CONFIG selects the file
func TestLoad_ConfigPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("recommend:\n  list_size: 3\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recommend.ListSize != 3 {
		t.Errorf("Recommend.ListSize = %d, want 3", cfg.Recommend.ListSize)
	}
}

// TestLoad_Errors covers missing files and invalid values
func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv(ConfigPathEnvVar, "")
		t.Setenv("RECWIRE_ALGORITHM", "svd")

		_, err := Load("")
		if err == nil || !strings.Contains(err.Error(), "recommend.algorithm") {
			t.Errorf("expected algorithm validation error, got %v", err)
		}
	})
}

// TestEnvTransformFunc tests environment variable name mapping
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"RECWIRE_LOG_LEVEL", "logging.level"},
		{"RECWIRE_SETTER_PREFIX", "inject.setter_prefix"},
		{"RECWIRE_MIN_SIMILARITY", "recommend.min_similarity"},
		{"RECWIRE_CONFIG", ""},
		{"RECWIRE_SOMETHING_ELSE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
