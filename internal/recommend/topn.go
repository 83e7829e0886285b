// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package recommend

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recwire/internal/cache"
	"github.com/tomtom215/recwire/internal/metrics"
)

// listKey identifies a cached recommendation list.
type listKey struct {
	user int
	n    int
}

// TopNRecommender turns an ItemScorer into ranked recommendation lists.
type TopNRecommender struct {
	scorer      ItemScorer
	src         DataSource
	listSize    int
	excludeSeen bool
	maxCands    int
	lists       *cache.LRU[listKey, []ScoredItem]
	logger      zerolog.Logger
}

// NewTopNRecommender creates a recommender returning listSize items by default.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTopNRecommender(scorer ItemScorer, src DataSource, listSize int, logger zerolog.Logger) *TopNRecommender {
	return &TopNRecommender{
		scorer:      scorer,
		src:         src,
		listSize:    listSize,
		excludeSeen: true,
		logger:      logger.With().Str("component", "recommend").Logger(),
	}
}

// InjectExcludeSeen sets whether items the user already interacted with are
// left out of recommendation lists.
func (r *TopNRecommender) InjectExcludeSeen(exclude bool) {
	r.excludeSeen = exclude
	if r.lists != nil {
		r.lists.Clear()
	}
}

// InjectCacheSize enables caching of up to size recommendation lists.
// A size of zero or less disables the cache.
func (r *TopNRecommender) InjectCacheSize(size int) {
	if size <= 0 {
		r.lists = nil
		return
	}
	r.lists = cache.NewLRU[listKey, []ScoredItem](size, cache.DefaultTTL)
}

// InjectMaxCandidates caps how many candidates are passed to the scorer.
// The most interacted-with items are kept. Zero or less means no cap.
func (r *TopNRecommender) InjectMaxCandidates(limit int) {
	r.maxCands = limit
	if r.lists != nil {
		r.lists.Clear()
	}
}

// Scorer returns the underlying scorer.
func (r *TopNRecommender) Scorer() ItemScorer { return r.scorer }

// Recommend returns up to n items for the user, best first. n <= 0 uses the
// configured list size. Ties are broken by item ID.
func (r *TopNRecommender) Recommend(ctx context.Context, userID, n int) ([]ScoredItem, error) {
	if n <= 0 {
		n = r.listSize
	}
	key := listKey{user: userID, n: n}
	if r.lists != nil {
		if recs, ok := r.lists.Get(key); ok {
			return slices.Clone(recs), nil
		}
	}

	start := time.Now()
	recs, err := r.recommend(ctx, userID, n)
	metrics.RecordRecommendation(r.scorer.Name(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if r.lists != nil {
		r.lists.Add(key, slices.Clone(recs))
	}

	r.logger.Debug().
		Int("user", userID).
		Str("scorer", r.scorer.Name()).
		Int("results", len(recs)).
		Dur("duration", time.Since(start)).
		Msg("recommendations generated")
	return recs, nil
}

func (r *TopNRecommender) recommend(ctx context.Context, userID, n int) ([]ScoredItem, error) {
	catalog, counts := r.catalog()
	exclude := make(map[int]struct{})
	if r.excludeSeen {
		for _, id := range r.src.History(userID) {
			exclude[id] = struct{}{}
		}
	}

	candidates := make([]int, 0, len(catalog))
	for id := range catalog {
		if _, ok := exclude[id]; !ok {
			candidates = append(candidates, id)
		}
	}
	if r.maxCands > 0 && len(candidates) > r.maxCands {
		sort.Slice(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if counts[a] != counts[b] {
				return counts[a] > counts[b]
			}
			return a < b
		})
		candidates = candidates[:r.maxCands]
	}
	sort.Ints(candidates)

	scores, err := r.scorer.Score(ctx, userID, candidates)
	if err != nil {
		return nil, fmt.Errorf("score candidates for user %d: %w", userID, err)
	}

	out := make([]ScoredItem, 0, len(scores))
	for id, score := range scores {
		out = append(out, ScoredItem{
			Item:   catalog[id],
			Score:  score,
			Reason: r.scorer.Name(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// catalog returns the known items by ID, including items that only appear
// in interactions, along with each item's interaction count.
func (r *TopNRecommender) catalog() (map[int]Item, map[int]int) {
	items := r.src.Items()
	interactions := r.src.Interactions()
	catalog := make(map[int]Item, len(items))
	counts := make(map[int]int, len(items))
	for _, it := range items {
		catalog[it.ID] = it
	}
	for i := range interactions {
		id := interactions[i].ItemID
		counts[id]++
		if _, ok := catalog[id]; !ok {
			catalog[id] = Item{ID: id}
		}
	}
	return catalog, counts
}
