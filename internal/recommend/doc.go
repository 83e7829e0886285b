// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

// Package recommend provides the recommender components assembled by the
// inject container.
//
// # Components
//
//   - DataSource: interactions and item catalog (MemorySource, LoadSource)
//   - Popularity: user-independent baseline scorer
//   - ItemItemModelBuilder: builds an ItemItemModel of cosine similarities
//   - ItemItemScorer: neighborhood-weighted item-item scorer
//   - TopNRecommender: ranks scorer output into recommendation lists
//
// # Wiring
//
// Configure describes every component's constructor and registers the
// parameter defaults, so the container builds the whole graph just in time:
//
//	c := inject.New(inject.DefaultConfig(), logger)
//	mon := inject.NewMonitorFor[recommend.DataSource]()
//	c.Observe(mon)
//
//	if err := recommend.Configure(c, nil, recommend.SampleSource(), logger); err != nil {
//	    return err
//	}
//	if err := recommend.Warm(ctx, c); err != nil {
//	    return err
//	}
//	rec := inject.Must[*recommend.TopNRecommender](c)
//	items, err := rec.Recommend(ctx, userID, 0)
//
// Components that depend on the DataSource, directly or through another
// component, are reported by the monitor. Shareable lists the rest.
//
// # Thread Safety
//
// Models and scorers are immutable once built and safe for concurrent use.
package recommend
