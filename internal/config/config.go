// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Inject    InjectConfig    `koanf:"inject"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - RECWIRE_LOG_LEVEL: trace, debug, info, warn, error, disabled (default: info)
//   - RECWIRE_LOG_FORMAT: json, console (default: console)
//   - RECWIRE_LOG_CALLER: include caller info (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// InjectConfig holds component resolver configuration.
//
// Environment Variables:
//   - RECWIRE_SETTER_PREFIX: name prefix of injection methods (default: Inject)
//   - RECWIRE_JIT: bind unregistered concrete types on demand (default: true)
type InjectConfig struct {
	// SetterPrefix identifies injection methods by name.
	SetterPrefix string `koanf:"setter_prefix" validate:"required,alpha"`

	// JIT enables just-in-time binding of unregistered struct types.
	JIT bool `koanf:"jit"`
}

// RecommendConfig holds recommender configuration.
//
// Environment Variables:
//   - RECWIRE_ALGORITHM: popularity or itemitem (default: itemitem)
//   - RECWIRE_NEIGHBORHOOD_SIZE: item-item neighbors per scored item (default: 20)
//   - RECWIRE_MIN_SIMILARITY: similarity threshold for neighbors (default: 0.1)
//   - RECWIRE_LIST_SIZE: recommendations per user (default: 10)
//   - RECWIRE_MAX_CANDIDATES: upper bound for list size (default: 1000)
//   - RECWIRE_EXCLUDE_SEEN: drop items the user already rated (default: true)
//   - RECWIRE_CACHE_SIZE: cached recommendation lists, 0 disables (default: 1024)
//   - RECWIRE_DATA_FILE: JSON interactions file (default: built-in sample)
//   - RECWIRE_WARM_TIMEOUT: component warm-up timeout (default: 30s)
type RecommendConfig struct {
	Algorithm        string        `koanf:"algorithm" validate:"oneof=popularity itemitem"`
	NeighborhoodSize int           `koanf:"neighborhood_size" validate:"min=1,max=1000"`
	MinSimilarity    float64       `koanf:"min_similarity" validate:"gte=-1,lte=1"`
	ListSize         int           `koanf:"list_size" validate:"min=1,ltefield=MaxCandidates"`
	MaxCandidates    int           `koanf:"max_candidates" validate:"min=1"`
	ExcludeSeen      bool          `koanf:"exclude_seen"`
	CacheSize        int           `koanf:"cache_size" validate:"gte=0"`
	DataFile         string        `koanf:"data_file" validate:"omitempty,file"`
	WarmTimeout      time.Duration `koanf:"warm_timeout" validate:"gte=0"`
}

// defaultConfig returns a Config with all default values.
// These defaults are applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		Inject: InjectConfig{
			SetterPrefix: "Inject",
			JIT:          true,
		},
		Recommend: RecommendConfig{
			Algorithm:        "itemitem",
			NeighborhoodSize: 20,
			MinSimilarity:    0.1,
			ListSize:         10,
			MaxCandidates:    1000,
			ExcludeSeen:      true,
			CacheSize:        1024,
			DataFile:         "",
			WarmTimeout:      30 * time.Second,
		},
	}
}
