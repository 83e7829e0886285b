// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package recommend

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"
)

// DataSource provides the interactions and catalog a recommender is built
// from. Components that receive a DataSource are tied to that data set and
// cannot be shared across data sets.
type DataSource interface {
	// Interactions returns all user-item interactions.
	Interactions() []Interaction

	// Items returns the item catalog.
	Items() []Item

	// History returns the IDs of items the user interacted with, ascending.
	History(userID int) []int
}

// MemorySource is a DataSource backed by in-memory slices.
type MemorySource struct {
	interactions []Interaction
	items        []Item
	history      map[int][]int
}

var _ DataSource = (*MemorySource)(nil)

// NewMemorySource indexes the given interactions and items.
func NewMemorySource(interactions []Interaction, items []Item) *MemorySource {
	history := make(map[int][]int)
	seen := make(map[[2]int]struct{}, len(interactions))
	for i := range interactions {
		in := &interactions[i]
		k := [2]int{in.UserID, in.ItemID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		history[in.UserID] = append(history[in.UserID], in.ItemID)
	}
	for _, ids := range history {
		sort.Ints(ids)
	}

	return &MemorySource{
		interactions: interactions,
		items:        items,
		history:      history,
	}
}

// Interactions implements DataSource.
func (s *MemorySource) Interactions() []Interaction { return s.interactions }

// Items implements DataSource.
func (s *MemorySource) Items() []Item { return s.items }

// History implements DataSource.
func (s *MemorySource) History(userID int) []int { return s.history[userID] }

// Users returns the IDs of users with at least one interaction, ascending.
func (s *MemorySource) Users() []int {
	users := make([]int, 0, len(s.history))
	for u := range s.history {
		users = append(users, u)
	}
	sort.Ints(users)
	return users
}

// dataFile is the on-disk layout read by LoadSource.
type dataFile struct {
	Items        []Item        `json:"items"`
	Interactions []Interaction `json:"interactions"`
}

// LoadSource reads a JSON data file of the form
//
//	{"items": [{"id": 1, "title": "..."}], "interactions": [{"user_id": 1, "item_id": 1, "type": 3}]}
func LoadSource(path string) (*MemorySource, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from validated configuration
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var f dataFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", path, err)
	}
	if len(f.Interactions) == 0 {
		return nil, fmt.Errorf("data file %s has no interactions", path)
	}
	return NewMemorySource(f.Interactions, f.Items), nil
}
