// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recwire/internal/inject"
)

func newWiredContainer(t *testing.T, opts *Options) (*inject.Container, *inject.Monitor) {
	t.Helper()
	c := inject.New(inject.DefaultConfig(), zerolog.Nop())
	mon := inject.NewMonitorFor[DataSource]()
	c.Observe(mon)
	if err := Configure(c, opts, SampleSource(), zerolog.Nop()); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	return c, mon
}

func TestConfigure_Defaults(t *testing.T) {
	t.Parallel()

	c, _ := newWiredContainer(t, nil)

	rec, err := inject.Get[*TopNRecommender](c)
	if err != nil {
		t.Fatalf("Get(*TopNRecommender) error = %v", err)
	}
	scorer, ok := rec.Scorer().(*ItemItemScorer)
	if !ok {
		t.Fatalf("scorer = %T, want *ItemItemScorer", rec.Scorer())
	}
	if scorer.neighborhoodSize != DefaultNeighborhoodSize {
		t.Errorf("neighborhoodSize = %d, want %d", scorer.neighborhoodSize, DefaultNeighborhoodSize)
	}
	if rec.listSize != DefaultListSize {
		t.Errorf("listSize = %d, want %d", rec.listSize, DefaultListSize)
	}
	if !rec.excludeSeen {
		t.Error("excludeSeen should default to true")
	}
	if rec.lists == nil {
		t.Error("list cache should be enabled by default")
	}
	if rec.maxCands != DefaultMaxCandidates {
		t.Errorf("maxCands = %d, want %d", rec.maxCands, DefaultMaxCandidates)
	}

	// The model is built once and shared.
	model, err := inject.Get[*ItemItemModel](c)
	if err != nil {
		t.Fatalf("Get(*ItemItemModel) error = %v", err)
	}
	if scorer.model != model {
		t.Error("scorer was built with a different model instance")
	}

	recs, err := rec.Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations for user 1")
	}
	for _, r := range recs {
		switch r.Item.ID {
		case 1, 2, 3:
			t.Errorf("recommended already seen item %d", r.Item.ID)
		}
	}
}

func TestConfigure_Overrides(t *testing.T) {
	t.Parallel()

	c, _ := newWiredContainer(t, &Options{
		Algorithm:        AlgorithmPopularity,
		NeighborhoodSize: 5,
		MinSimilarity:    0.3,
		ListSize:         3,
		ExcludeSeen:      false,
		MaxCandidates:    50,
	})

	rec, err := inject.Get[*TopNRecommender](c)
	if err != nil {
		t.Fatalf("Get(*TopNRecommender) error = %v", err)
	}
	if _, ok := rec.Scorer().(*Popularity); !ok {
		t.Errorf("scorer = %T, want *Popularity", rec.Scorer())
	}
	if rec.listSize != 3 {
		t.Errorf("listSize = %d, want 3", rec.listSize)
	}
	if rec.excludeSeen {
		t.Error("excludeSeen override not applied")
	}
	if rec.maxCands != 50 {
		t.Errorf("maxCands = %d, want 50", rec.maxCands)
	}
	if rec.lists != nil {
		t.Error("a zero cache size should disable the list cache")
	}

	builder, err := inject.Get[*ItemItemModelBuilder](c)
	if err != nil {
		t.Fatalf("Get(*ItemItemModelBuilder) error = %v", err)
	}
	if builder.minSimilarity != 0.3 {
		t.Errorf("minSimilarity = %v, want 0.3", builder.minSimilarity)
	}

	recs, err := rec.Recommend(context.Background(), 6, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Recommend() returned %d items, want 3", len(recs))
	}
	// Item 2 is the most popular and user 6 has seen it.
	if recs[0].Item.ID != 2 {
		t.Errorf("first recommendation = %d, want 2", recs[0].Item.ID)
	}
}

func TestConfigure_ZeroMinSimilarity(t *testing.T) {
	t.Parallel()

	c, _ := newWiredContainer(t, &Options{MinSimilarity: 0, ExcludeSeen: true})

	builder, err := inject.Get[*ItemItemModelBuilder](c)
	if err != nil {
		t.Fatalf("Get(*ItemItemModelBuilder) error = %v", err)
	}
	if builder.minSimilarity != 0 {
		t.Errorf("minSimilarity = %v, want 0", builder.minSimilarity)
	}
}

func TestConfigure_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *Options
		src  DataSource
	}{
		{"nil source", nil, nil},
		{"unknown algorithm", &Options{Algorithm: "svd"}, SampleSource()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := inject.New(inject.DefaultConfig(), zerolog.Nop())
			if err := Configure(c, tt.opts, tt.src, zerolog.Nop()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfigure_Twice(t *testing.T) {
	t.Parallel()

	c, _ := newWiredContainer(t, nil)
	err := Configure(c, nil, SampleSource(), zerolog.Nop())
	if !errors.Is(err, inject.ErrDuplicateBinding) {
		t.Errorf("second Configure() error = %v, want ErrDuplicateBinding", err)
	}
}

func TestWarm(t *testing.T) {
	t.Parallel()

	c, mon := newWiredContainer(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Warm(ctx, c); err != nil {
		t.Fatalf("Warm() error = %v", err)
	}

	for _, key := range []inject.Key{
		inject.KeyOf[*ItemItemModelBuilder](),
		inject.KeyOf[*ItemItemModel](),
		inject.KeyOf[ItemScorer](),
		inject.KeyOf[*TopNRecommender](),
	} {
		if !mon.DependsOn(key) {
			t.Errorf("%s should depend on the data source", key)
		}
	}

	shareable := Shareable(c, mon)
	var hasLogger bool
	for _, key := range shareable {
		if key == inject.KeyOf[DataSource]() {
			t.Error("the data source itself is not shareable")
		}
		if mon.DependsOn(key) {
			t.Errorf("%s is dependent but reported shareable", key)
		}
		if key == inject.KeyOf[zerolog.Logger]() {
			hasLogger = true
		}
	}
	if !hasLogger {
		t.Errorf("logger should be shareable, got %v", shareable)
	}
}

func TestWarm_WithoutJIT(t *testing.T) {
	t.Parallel()

	for _, algorithm := range []string{AlgorithmItemItem, AlgorithmPopularity} {
		t.Run(algorithm, func(t *testing.T) {
			t.Parallel()

			c := inject.New(inject.Config{
				SetterPrefix: inject.DefaultSetterPrefix,
				DisableJIT:   true,
			}, zerolog.Nop())
			mon := inject.NewMonitorFor[DataSource]()
			c.Observe(mon)
			opts := &Options{Algorithm: algorithm, ExcludeSeen: true, CacheSize: DefaultCacheSize}
			if err := Configure(c, opts, SampleSource(), zerolog.Nop()); err != nil {
				t.Fatalf("Configure() error = %v", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := Warm(ctx, c); err != nil {
				t.Fatalf("Warm() error = %v", err)
			}

			rec := inject.Must[*TopNRecommender](c)
			if got := rec.Scorer().Name(); got != algorithm {
				t.Errorf("scorer = %q, want %q", got, algorithm)
			}
			for _, key := range Shareable(c, mon) {
				if key == inject.KeyOf[*Popularity]() || key == inject.KeyOf[*ItemItemModelBuilder]() {
					t.Errorf("%s was never built but is reported shareable", key)
				}
			}
		})
	}
}

func TestWarm_Canceled(t *testing.T) {
	t.Parallel()

	c, _ := newWiredContainer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Warm(ctx, c); !errors.Is(err, context.Canceled) {
		t.Errorf("Warm() error = %v, want context.Canceled", err)
	}
}

func TestWarm_Unresolvable(t *testing.T) {
	t.Parallel()

	c, _ := newWiredContainer(t, nil)

	// Interfaces without a binding cannot be resolved.
	type unbound interface{ Unbound() }
	err := Warm(context.Background(), c, inject.KeyOf[unbound]())
	if !errors.Is(err, inject.ErrUnsatisfiedDependency) {
		t.Errorf("Warm() error = %v, want ErrUnsatisfiedDependency", err)
	}
}
