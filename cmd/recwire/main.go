// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

// Package main is the entry point for the recwire command.
//
// recwire assembles a recommender from its components with the inject
// container, warms it, and prints top-N recommendations for a user together
// with a dependency report: the registered components, those that depend on
// the data source, and those that could be shared across data sets.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (RECWIRE_*)
//   - Config file (-config, RECWIRE_CONFIG, or config.yaml)
//   - Built-in defaults
//
// # Example Usage
//
//	recwire -user 1 -n 5
//	RECWIRE_ALGORITHM=popularity recwire -user 6
//	RECWIRE_DATA_FILE=ratings.json recwire -config recwire.yaml -user 42
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/recwire/internal/config"
	"github.com/tomtom215/recwire/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	userID := flag.Int("user", 1, "user to recommend for")
	n := flag.Int("n", 0, "number of recommendations (0 uses recommend.list_size)")
	flag.Parse()

	// Load configuration first to get logging settings
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, logging.WithComponent("recwire"))
	ctx = logging.ContextWithNewCorrelationID(ctx)

	if err := run(ctx, cfg, *userID, *n, os.Stdout); err != nil {
		stop()
		logging.Fatal().Err(err).Msg("recwire failed")
	}
}

// run builds the recommender with the context logger and writes the report
// for userID to w.
func run(ctx context.Context, cfg *config.Config, userID, n int, w io.Writer) error {
	a, err := newApp(cfg, logging.FromContext(ctx))
	if err != nil {
		return err
	}

	rep, err := a.buildReport(ctx, userID, n)
	if err != nil {
		return err
	}
	if err := rep.write(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
