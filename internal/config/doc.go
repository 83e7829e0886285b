// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

/*
Package config loads and validates Recwire configuration.

Configuration is layered with koanf: built-in defaults, then an optional
YAML file, then RECWIRE_* environment variables. The result is validated
with go-playground/validator struct tags; all violations are reported
together.

# Configuration File

	logging:
	  level: debug
	  format: console
	inject:
	  setter_prefix: Inject
	  jit: true
	recommend:
	  algorithm: itemitem
	  neighborhood_size: 30
	  min_similarity: 0.05
	  list_size: 10
	  cache_size: 1024

The file is taken from the path passed to Load, else RECWIRE_CONFIG, else
the first existing entry of DefaultConfigPaths.

# Usage

	cfg, err := config.Load(*configFlag)
	if err != nil {
	    logging.Fatal().Err(err).Msg("invalid configuration")
	}
*/
package config
