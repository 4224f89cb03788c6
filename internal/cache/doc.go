// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

/*
Package cache provides a thread-safe, generic LRU cache with TTL expiry.

The recommendation engine uses it to memoize ranked results per catalog
version, title and k, so repeated queries for popular titles skip the
row sort.

# Usage

	c := cache.NewLRU[[]recommend.ScoredMovie](1024, 10*time.Minute)
	c.Add("v3|Toy Story (1995)|5", results)
	if hit, ok := c.Get("v3|Toy Story (1995)|5"); ok {
	    return hit
	}

# Characteristics

  - O(1) Get, Add, Remove and eviction
  - Lazy expiry on Get; CleanupExpired drops expired entries eagerly
  - Hit, miss and eviction counters via Stats

A zero or negative capacity or TTL selects DefaultCapacity or DefaultTTL.
*/
package cache
