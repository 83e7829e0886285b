// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/recwire/internal/config"
	"github.com/tomtom215/recwire/internal/inject"
	"github.com/tomtom215/recwire/internal/logging"
	"github.com/tomtom215/recwire/internal/recommend"
)

// app is a configured container with a monitor watching the data source.
type app struct {
	cfg       *config.Config
	container *inject.Container
	monitor   *inject.Monitor
	logger    zerolog.Logger
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	src, err := loadSource(cfg.Recommend.DataFile)
	if err != nil {
		return nil, err
	}

	c := inject.New(inject.Config{
		SetterPrefix: cfg.Inject.SetterPrefix,
		DisableJIT:   !cfg.Inject.JIT,
	}, logger)
	mon := inject.NewMonitorFor[recommend.DataSource]()
	c.Observe(mon)

	opts := &recommend.Options{
		Algorithm:        cfg.Recommend.Algorithm,
		NeighborhoodSize: cfg.Recommend.NeighborhoodSize,
		MinSimilarity:    cfg.Recommend.MinSimilarity,
		ListSize:         cfg.Recommend.ListSize,
		ExcludeSeen:      cfg.Recommend.ExcludeSeen,
		CacheSize:        cfg.Recommend.CacheSize,
		MaxCandidates:    cfg.Recommend.MaxCandidates,
	}
	if err := recommend.Configure(c, opts, src, logger); err != nil {
		return nil, err
	}

	logger.Info().
		Str("algorithm", cfg.Recommend.Algorithm).
		Int("items", len(src.Items())).
		Int("interactions", len(src.Interactions())).
		Msg("Recommender configured")

	return &app{cfg: cfg, container: c, monitor: mon, logger: logger}, nil
}

func loadSource(path string) (*recommend.MemorySource, error) {
	if path == "" {
		return recommend.SampleSource(), nil
	}
	return recommend.LoadSource(path)
}

// report is the JSON document printed by the command.
type report struct {
	User            int                    `json:"user"`
	Algorithm       string                 `json:"algorithm"`
	Recommendations []recommend.ScoredItem `json:"recommendations"`
	Components      []inject.Key           `json:"components"`
	Dependents      []inject.Key           `json:"data_source_dependents"`
	Shareable       []inject.Key           `json:"shareable"`
	WarmDuration    string                 `json:"warm_duration"`
}

// buildReport warms the components, then recommends for userID.
func (a *app) buildReport(ctx context.Context, userID, n int) (*report, error) {
	ctx = logging.ContextWithLogger(ctx, a.logger)
	warmCtx := ctx
	if a.cfg.Recommend.WarmTimeout > 0 {
		var cancel context.CancelFunc
		warmCtx, cancel = context.WithTimeout(ctx, a.cfg.Recommend.WarmTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := recommend.Warm(warmCtx, a.container); err != nil {
		return nil, fmt.Errorf("warm components: %w", err)
	}
	warmed := time.Since(start)

	rec, err := inject.Get[*recommend.TopNRecommender](a.container)
	if err != nil {
		return nil, err
	}
	recs, err := rec.Recommend(ctx, userID, n)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Int("user", userID).
		Int("results", len(recs)).
		Msg("Recommendations ready")

	return &report{
		User:            userID,
		Algorithm:       a.cfg.Recommend.Algorithm,
		Recommendations: recs,
		Components:      a.container.Keys(),
		Dependents:      a.monitor.Dependents(),
		Shareable:       recommend.Shareable(a.container, a.monitor),
		WarmDuration:    warmed.String(),
	}, nil
}

func (r *report) write(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
