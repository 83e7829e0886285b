// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/recwire/internal/inject"
	"github.com/tomtom215/recwire/internal/logging"
)

// Qualifiers of the configurable parameters.
const (
	NeighborhoodSize = "NeighborhoodSize"
	MinSimilarity    = "MinSimilarity"
	ListSize         = "ListSize"
	ExcludeSeen      = "ExcludeSeen"
	CacheSize        = "CacheSize"
	MaxCandidates    = "MaxCandidates"
)

// Algorithm names accepted by Configure.
const (
	AlgorithmPopularity = "popularity"
	AlgorithmItemItem   = "itemitem"
)

// Defaults registered for the qualified parameters.
const (
	DefaultNeighborhoodSize = 20
	DefaultMinSimilarity    = 0.1
	DefaultListSize         = 10
	DefaultExcludeSeen      = true
	DefaultCacheSize        = 1024
	DefaultMaxCandidates    = 1000
)

// Options overrides the registered parameter defaults.
type Options struct {
	Algorithm        string
	NeighborhoodSize int
	MinSimilarity    float64
	ListSize         int
	ExcludeSeen      bool
	CacheSize        int
	MaxCandidates    int
}

// Configure registers the recommender components with the container.
//
// Every component is described with its constructor, and the components the
// chosen scorer needs are bound explicitly, so the graph resolves with or
// without just-in-time binding. Parameter defaults are registered next to
// them and overridden by explicit bindings when opts is non-nil. ItemScorer
// is bound to the scorer named by opts.Algorithm (item-item when opts is nil).
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Configure(c *inject.Container, opts *Options, src DataSource, logger zerolog.Logger) error {
	if src == nil {
		return errors.New("configure recommender: nil data source")
	}

	algorithm := AlgorithmItemItem
	if opts != nil && opts.Algorithm != "" {
		algorithm = opts.Algorithm
	}

	steps := []func() error{
		func() error { return describe(c) },
		func() error { return registerDefaults(c) },
		func() error { return inject.BindValue[DataSource](c, src) },
		func() error { return inject.BindValue(c, logger) },
		func() error { return inject.BindTo[*TopNRecommender, *TopNRecommender](c) },
		func() error { return bindScorer(c, algorithm) },
	}
	if opts != nil {
		steps = append(steps, func() error { return bindOverrides(c, opts) })
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("configure recommender: %w", err)
		}
	}

	logger.Debug().
		Str("component", "recommend").
		Str("algorithm", algorithm).
		Msg("recommender configured")
	return nil
}

func describe(c *inject.Container) error {
	descriptions := []struct {
		t       reflect.Type
		members []inject.Member
	}{
		{
			t:       reflect.TypeFor[*Popularity](),
			members: []inject.Member{inject.Ctor(NewPopularity)},
		},
		{
			t: reflect.TypeFor[*ItemItemModelBuilder](),
			members: []inject.Member{
				inject.Ctor(NewItemItemModelBuilder, inject.Plain(), inject.Qualified(MinSimilarity)),
			},
		},
		{
			t: reflect.TypeFor[*ItemItemScorer](),
			members: []inject.Member{
				inject.Ctor(NewItemItemScorer, inject.Plain(), inject.Qualified(NeighborhoodSize)),
			},
		},
		{
			t: reflect.TypeFor[*TopNRecommender](),
			members: []inject.Member{
				inject.Ctor(NewTopNRecommender, inject.Plain(), inject.Plain(), inject.Qualified(ListSize)),
				inject.Setter("InjectExcludeSeen", inject.Qualified(ExcludeSeen)),
				inject.Setter("InjectCacheSize", inject.Qualified(CacheSize)),
				inject.Setter("InjectMaxCandidates", inject.Qualified(MaxCandidates)),
			},
		},
	}

	for _, d := range descriptions {
		if err := c.Describe(d.t, d.members...); err != nil {
			return err
		}
	}
	return nil
}

func registerDefaults(c *inject.Container) error {
	defaults := map[inject.Key]any{
		inject.QualifiedKeyOf[int](NeighborhoodSize): DefaultNeighborhoodSize,
		inject.QualifiedKeyOf[float64](MinSimilarity): DefaultMinSimilarity,
		inject.QualifiedKeyOf[int](ListSize):          DefaultListSize,
		inject.QualifiedKeyOf[bool](ExcludeSeen):      DefaultExcludeSeen,
		inject.QualifiedKeyOf[int](CacheSize):         DefaultCacheSize,
		inject.QualifiedKeyOf[int](MaxCandidates):     DefaultMaxCandidates,
	}
	for key, v := range defaults {
		if err := c.Default(key, inject.DefaultValue(v)); err != nil {
			return err
		}
	}
	return nil
}

// bindScorer binds ItemScorer and, for item-item, the model builder chain.
// Only the chosen scorer's components are bound, so Shareable never reports
// a component that was registered but not built.
func bindScorer(c *inject.Container, algorithm string) error {
	switch algorithm {
	case AlgorithmItemItem:
		if err := inject.BindTo[*ItemItemModelBuilder, *ItemItemModelBuilder](c); err != nil {
			return err
		}
		if err := inject.BindBuilderFor[*ItemItemModel, *ItemItemModelBuilder](c); err != nil {
			return err
		}
		return inject.BindTo[ItemScorer, *ItemItemScorer](c)
	case AlgorithmPopularity:
		return inject.BindTo[ItemScorer, *Popularity](c)
	default:
		return fmt.Errorf("unknown algorithm %q", algorithm)
	}
}

func bindOverrides(c *inject.Container, opts *Options) error {
	if opts.NeighborhoodSize > 0 {
		if err := inject.BindValue(c, opts.NeighborhoodSize, NeighborhoodSize); err != nil {
			return err
		}
	}
	if err := inject.BindValue(c, opts.MinSimilarity, MinSimilarity); err != nil {
		return err
	}
	if opts.ListSize > 0 {
		if err := inject.BindValue(c, opts.ListSize, ListSize); err != nil {
			return err
		}
	}
	if opts.MaxCandidates > 0 {
		if err := inject.BindValue(c, opts.MaxCandidates, MaxCandidates); err != nil {
			return err
		}
	}
	if err := inject.BindValue(c, opts.CacheSize, CacheSize); err != nil {
		return err
	}
	return inject.BindValue(c, opts.ExcludeSeen, ExcludeSeen)
}

// WarmKeys are the components resolved by Warm when no keys are given.
func WarmKeys() []inject.Key {
	return []inject.Key{
		inject.KeyOf[ItemScorer](),
		inject.KeyOf[*TopNRecommender](),
	}
}

// Warm resolves the given components concurrently so that the first request
// does not pay for model builds. It returns the first resolution error, or
// the context error when ctx ends before all components are ready.
func Warm(ctx context.Context, c *inject.Container, keys ...inject.Key) error {
	if len(keys) == 0 {
		keys = WarmKeys()
	}
	logger := logging.Ctx(ctx)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := c.Resolve(key)
			if err != nil {
				return fmt.Errorf("warm %s: %w", key, err)
			}
			if v == nil {
				return fmt.Errorf("warm %s: %w", key, &inject.UnsatisfiedDependencyError{Key: key})
			}
			logger.Debug().Stringer("key", key).Msg("component warmed")
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return fmt.Errorf("warm components: %w", ctx.Err())
	}

	logger.Info().
		Int("components", len(keys)).
		Dur("duration", time.Since(start)).
		Msg("components warmed")
	return nil
}

// Shareable returns the registered keys whose components do not depend on
// the monitor's watched type. Such components may be shared across data
// sets. The result only reflects components instantiated so far.
func Shareable(c *inject.Container, mon *inject.Monitor) []inject.Key {
	var out []inject.Key
	for _, key := range c.Keys() {
		if key.Type == mon.Watched() || mon.DependsOn(key) {
			continue
		}
		out = append(out, key)
	}
	return out
}
