// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

// Package recommend implements genre-based content similarity for a movie catalog.
//
// # Architecture
//
// The pipeline is built once per catalog and queried many times:
//
//   - Feature Builder: genre strings are tokenized and weighted with
//     smoothed TF-IDF into L2-normalized sparse vectors (BuildFeatures)
//   - Similarity Index: all-pairs cosine similarity in a dense symmetric
//     matrix, computed in parallel with errgroup (BuildSimilarity)
//   - Recommender: title lookup and top-K ranking with a deterministic
//     comparator (NewRecommender)
//   - Engine: the process-wide cache owning the current catalog and its
//     built Snapshot
//
// # Ranking
//
// Neighbors are ordered by score descending, then by catalog position
// ascending. The selected movie is always excluded, even when another
// movie ties with it at score 1.0. Duplicate titles resolve to their first
// occurrence in the catalog.
//
// # Caching
//
// The Engine builds its index lazily on the first query (or eagerly on
// Warm and, with EagerRebuild, on SetCatalog). Concurrent first callers
// share one build through singleflight. Publishing a catalog with the
// same fingerprint is a no-op; a different fingerprint invalidates the
// index. Readers only ever observe a complete Snapshot.
//
// A catalog that is empty or over Build.MaxCatalogSize is rejected before
// it is published, and an eager rebuild that fails publishes nothing. A
// failed lazy build is remembered for its catalog version; when an older
// index exists the catalog rolls back to it.
//
// Ranked results are memoized in an LRU keyed by catalog version, k and
// title (Config.Cache). A changed catalog clears it.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	if _, err := engine.SetCatalog(ctx, movies); err != nil {
//	    return err
//	}
//	titles, err := engine.Recommend(ctx, "Toy Story (1995)", 5)
//
// # Thread Safety
//
// Recommender and Snapshot are immutable. Engine queries are lock-free
// atomic loads; only catalog publication takes a mutex.
package recommend
