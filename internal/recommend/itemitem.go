// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package recommend

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/tomtom215/recwire/internal/metrics"
)

// ErrNoInteractions is returned when a model is built from an empty data source.
var ErrNoInteractions = errors.New("recommend: no interactions")

// Neighbor is a similar item with its similarity score.
type Neighbor struct {
	ID         int
	Similarity float64
}

// ItemItemModel holds item-item cosine similarities and user rating vectors.
// It is immutable once built and safe for concurrent use.
type ItemItemModel struct {
	// neighbors lists similar items per item, most similar first.
	neighbors map[int][]Neighbor

	// ratings maps user -> item -> confidence.
	ratings map[int]map[int]float64
}

// Neighbors returns up to n neighbors of item, most similar first.
// n <= 0 returns all neighbors.
func (m *ItemItemModel) Neighbors(item, n int) []Neighbor {
	nbrs := m.neighbors[item]
	if n > 0 && len(nbrs) > n {
		nbrs = nbrs[:n]
	}
	return nbrs
}

// Similarity returns the similarity between two items, or 0 when they are
// not neighbors.
func (m *ItemItemModel) Similarity(a, b int) float64 {
	for _, nb := range m.neighbors[a] {
		if nb.ID == b {
			return nb.Similarity
		}
	}
	return 0
}

// ItemItemModelBuilder computes an ItemItemModel from a data source.
type ItemItemModelBuilder struct {
	src           DataSource
	minSimilarity float64
}

// NewItemItemModelBuilder creates a builder keeping neighbors with at least
// minSimilarity.
func NewItemItemModelBuilder(src DataSource, minSimilarity float64) *ItemItemModelBuilder {
	return &ItemItemModelBuilder{src: src, minSimilarity: minSimilarity}
}

// Build computes cosine similarities between item vectors (user -> confidence).
func (b *ItemItemModelBuilder) Build() (*ItemItemModel, error) {
	start := time.Now()
	defer func() { metrics.RecordModelBuild("itemitem", time.Since(start)) }()

	interactions := b.src.Interactions()
	if len(interactions) == 0 {
		return nil, ErrNoInteractions
	}

	ratings := make(map[int]map[int]float64)
	itemVecs := make(map[int]map[int]float64)
	for i := range interactions {
		in := &interactions[i]
		w := in.Weight()
		if ratings[in.UserID] == nil {
			ratings[in.UserID] = make(map[int]float64)
		}
		// Keep the strongest signal per user-item pair
		if w > ratings[in.UserID][in.ItemID] {
			ratings[in.UserID][in.ItemID] = w
		}
	}
	for user, items := range ratings {
		for item, w := range items {
			if itemVecs[item] == nil {
				itemVecs[item] = make(map[int]float64)
			}
			itemVecs[item][user] = w
		}
	}

	norms := make(map[int]float64, len(itemVecs))
	ids := make([]int, 0, len(itemVecs))
	for item, vec := range itemVecs {
		var sum float64
		for _, w := range vec {
			sum += w * w
		}
		norms[item] = math.Sqrt(sum)
		ids = append(ids, item)
	}
	sort.Ints(ids)

	neighbors := make(map[int][]Neighbor, len(ids))
	for x, a := range ids {
		for _, c := range ids[x+1:] {
			sim := cosine(itemVecs[a], itemVecs[c], norms[a], norms[c])
			if sim <= 0 || sim < b.minSimilarity {
				continue
			}
			neighbors[a] = append(neighbors[a], Neighbor{ID: c, Similarity: sim})
			neighbors[c] = append(neighbors[c], Neighbor{ID: a, Similarity: sim})
		}
	}
	for id := range neighbors {
		nbrs := neighbors[id]
		sort.Slice(nbrs, func(i, j int) bool {
			if nbrs[i].Similarity != nbrs[j].Similarity {
				return nbrs[i].Similarity > nbrs[j].Similarity
			}
			return nbrs[i].ID < nbrs[j].ID
		})
	}

	return &ItemItemModel{neighbors: neighbors, ratings: ratings}, nil
}

// cosine returns the cosine similarity of two sparse vectors.
func cosine(a, b map[int]float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for k, v := range a {
		dot += v * b[k]
	}
	return dot / (normA * normB)
}

// ItemItemScorer scores items by their similarity to the items a user
// interacted with, using the neighborhoodSize most similar rated items.
//
//	score(u, i) = sum_{j in N(i;u)} sim(i, j) * r(u, j) / sum_{j in N(i;u)} |sim(i, j)|
type ItemItemScorer struct {
	model            *ItemItemModel
	neighborhoodSize int
}

// NewItemItemScorer creates a scorer over model.
func NewItemItemScorer(model *ItemItemModel, neighborhoodSize int) *ItemItemScorer {
	return &ItemItemScorer{model: model, neighborhoodSize: neighborhoodSize}
}

// Name implements ItemScorer.
func (s *ItemItemScorer) Name() string { return "itemitem" }

// Score implements ItemScorer.
func (s *ItemItemScorer) Score(ctx context.Context, userID int, candidates []int) (map[int]float64, error) {
	rated := s.model.ratings[userID]
	out := make(map[int]float64, len(candidates))
	if len(rated) == 0 {
		return out, nil
	}

	for _, item := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var num, den float64
		used := 0
		for _, nb := range s.model.neighbors[item] {
			r, ok := rated[nb.ID]
			if !ok {
				continue
			}
			num += nb.Similarity * r
			den += math.Abs(nb.Similarity)
			used++
			if used == s.neighborhoodSize {
				break
			}
		}
		if den > 0 {
			out[item] = num / den
		}
	}
	return out, nil
}
