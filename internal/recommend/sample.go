// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package recommend

// SampleSource returns a small built-in data set used when no data file is
// configured. Users 1-3 share a taste for science fiction, users 4-5 prefer
// drama, and user 6 has watched a single title.
func SampleSource() *MemorySource {
	items := []Item{
		{ID: 1, Title: "Solaris", Genres: []string{"sci-fi", "drama"}, Year: 1972},
		{ID: 2, Title: "Stalker", Genres: []string{"sci-fi"}, Year: 1979},
		{ID: 3, Title: "Alien", Genres: []string{"sci-fi", "horror"}, Year: 1979},
		{ID: 4, Title: "Blade Runner", Genres: []string{"sci-fi"}, Year: 1982},
		{ID: 5, Title: "Tokyo Story", Genres: []string{"drama"}, Year: 1953},
		{ID: 6, Title: "Late Spring", Genres: []string{"drama"}, Year: 1949},
		{ID: 7, Title: "Ikiru", Genres: []string{"drama"}, Year: 1952},
		{ID: 8, Title: "Playtime", Genres: []string{"comedy"}, Year: 1967},
	}

	interactions := []Interaction{
		{UserID: 1, ItemID: 1, Type: InteractionCompleted},
		{UserID: 1, ItemID: 2, Type: InteractionCompleted},
		{UserID: 1, ItemID: 3, Type: InteractionEngaged},
		{UserID: 2, ItemID: 1, Type: InteractionCompleted},
		{UserID: 2, ItemID: 2, Type: InteractionEngaged},
		{UserID: 2, ItemID: 4, Type: InteractionCompleted},
		{UserID: 3, ItemID: 2, Type: InteractionCompleted},
		{UserID: 3, ItemID: 3, Type: InteractionCompleted},
		{UserID: 3, ItemID: 4, Type: InteractionSampled},
		{UserID: 4, ItemID: 5, Type: InteractionCompleted},
		{UserID: 4, ItemID: 6, Type: InteractionCompleted},
		{UserID: 4, ItemID: 8, Type: InteractionAbandoned},
		{UserID: 5, ItemID: 5, Type: InteractionEngaged},
		{UserID: 5, ItemID: 7, Type: InteractionCompleted},
		{UserID: 5, ItemID: 1, Type: InteractionSampled},
		{UserID: 6, ItemID: 2, Type: InteractionCompleted},
	}

	return NewMemorySource(interactions, items)
}
