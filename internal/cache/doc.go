// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

/*
Package cache provides a thread-safe generic LRU cache with TTL support.

The recommender uses it to keep recently computed recommendation lists, so
repeated requests for the same user skip scoring.

# Usage Example

	c := cache.NewLRU[int, []recommend.ScoredItem](1024, 5*time.Minute)
	c.Add(userID, recs)

	if recs, ok := c.Get(userID); ok {
	    return recs
	}

# Thread Safety

All operations are safe for concurrent use. Expired entries are removed
lazily on access or with CleanupExpired.
*/
package cache
