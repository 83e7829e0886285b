// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package recommend

import (
	"context"
	"time"
)

// InteractionType classifies user-item interactions for implicit feedback.
type InteractionType int

const (
	// InteractionAbandoned indicates the item was abandoned early.
	InteractionAbandoned InteractionType = iota
	// InteractionSampled indicates the item was sampled.
	InteractionSampled
	// InteractionEngaged indicates the user engaged with the item.
	InteractionEngaged
	// InteractionCompleted indicates the item was completed.
	InteractionCompleted
)

// String returns a human-readable name for the interaction type.
func (t InteractionType) String() string {
	switch t {
	case InteractionAbandoned:
		return "abandoned"
	case InteractionSampled:
		return "sampled"
	case InteractionEngaged:
		return "engaged"
	case InteractionCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Confidence returns the confidence weight for this interaction type.
func (t InteractionType) Confidence() float64 {
	switch t {
	case InteractionCompleted:
		return 1.0
	case InteractionEngaged:
		return 0.7
	case InteractionSampled:
		return 0.3
	case InteractionAbandoned:
		return 0.1 // Non-zero to keep abandoned items in the vectors
	default:
		return 0.0
	}
}

// Interaction represents a user-item interaction event.
type Interaction struct {
	UserID int             `json:"user_id"`
	ItemID int             `json:"item_id"`
	Type   InteractionType `json:"type"`

	// Confidence overrides the type's confidence when positive.
	Confidence float64 `json:"confidence,omitempty"`

	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Weight returns the interaction's confidence, falling back to the type's.
func (i *Interaction) Weight() float64 {
	if i.Confidence > 0 {
		return i.Confidence
	}
	return i.Type.Confidence()
}

// Item represents a catalog item.
type Item struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres,omitempty"`
	Year   int      `json:"year,omitempty"`
}

// ScoredItem represents an item with a recommendation score.
type ScoredItem struct {
	Item   Item    `json:"item"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// ItemScorer scores candidate items for a user.
// Items the scorer has no opinion about are absent from the result.
type ItemScorer interface {
	// Name returns the scorer identifier used in metrics and reasons.
	Name() string

	// Score returns scores for the candidates, higher is better.
	Score(ctx context.Context, userID int, candidates []int) (map[int]float64, error)
}
