// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package recommend

import (
	"context"
)

// Popularity scores items by their total interaction confidence, normalized
// to [0, 1]. It ignores the user and serves as a baseline and cold-start
// fallback.
//
//	score(item) = sum(confidence) / max_item(sum(confidence))
type Popularity struct {
	scores map[int]float64
}

// NewPopularity computes popularity scores from the data source.
func NewPopularity(src DataSource) *Popularity {
	interactions := src.Interactions()
	scores := make(map[int]float64)
	for i := range interactions {
		scores[interactions[i].ItemID] += interactions[i].Weight()
	}

	var maxScore float64
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore > 0 {
		for id := range scores {
			scores[id] /= maxScore
		}
	}
	return &Popularity{scores: scores}
}

// Name implements ItemScorer.
func (p *Popularity) Name() string { return "popularity" }

// Score implements ItemScorer. The user is ignored.
func (p *Popularity) Score(ctx context.Context, _ int, candidates []int) (map[int]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(candidates))
	for _, id := range candidates {
		if s, ok := p.scores[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}
