// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"recwire.yaml",
	"recwire.yml",
	"/etc/recwire/recwire.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "RECWIRE_CONFIG"

// envPrefix is the prefix of all configuration environment variables.
const envPrefix = "RECWIRE_"

// envMappings maps environment variable names, without prefix and lowercased,
// to koanf paths.
var envMappings = map[string]string{
	"log_level":         "logging.level",
	"log_format":        "logging.format",
	"log_caller":        "logging.caller",
	"setter_prefix":     "inject.setter_prefix",
	"jit":               "inject.jit",
	"algorithm":         "recommend.algorithm",
	"neighborhood_size": "recommend.neighborhood_size",
	"min_similarity":    "recommend.min_similarity",
	"list_size":         "recommend.list_size",
	"max_candidates":    "recommend.max_candidates",
	"exclude_seen":      "recommend.exclude_seen",
	"cache_size":        "recommend.cache_size",
	"data_file":         "recommend.data_file",
	"warm_timeout":      "recommend.warm_timeout",
}

// Load loads configuration using koanf with the following precedence
// (highest to lowest):
//
//  1. Environment Variables: RECWIRE_* overrides
//  2. Config File: path, else RECWIRE_CONFIG, else the first of DefaultConfigPaths
//  3. Defaults: built-in defaults
//
// An explicit path that does not exist is an error; a missing default file is not.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// RECWIRE_NEIGHBORHOOD_SIZE -> recommend.neighborhood_size
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile resolves the config file to load. Returns an empty path
// when no file is configured and none of the default paths exist.
func findConfigFile(path string) (string, error) {
	explicit := path
	if explicit == "" {
		explicit = os.Getenv(ConfigPathEnvVar)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unknown variables map to an empty key and are ignored.
//
// Examples:
//   - RECWIRE_LOG_LEVEL -> logging.level
//   - RECWIRE_MIN_SIMILARITY -> recommend.min_similarity
//   - RECWIRE_CONFIG -> (ignored)
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return envMappings[key]
}
