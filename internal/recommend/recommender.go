// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package recommend

import (
	"cmp"
	"context"
	"fmt"
	"slices"
)

// Recommender answers top-K queries against a fully built similarity index.
// It is immutable and safe for concurrent use.
type Recommender struct {
	movies   []Movie
	vocab    *Vocabulary
	vectors  []FeatureVector
	matrix   *SimilarityMatrix
	titles   map[string]int
	defaultK int
}

// NewRecommender builds features, the similarity matrix, and the title index
// for movies. The slice is copied; later changes by the caller are not seen.
func NewRecommender(ctx context.Context, movies []Movie, cfg *Config) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(movies) == 0 {
		return nil, ErrEmptyCatalog
	}
	if cfg.Build.MaxCatalogSize > 0 && len(movies) > cfg.Build.MaxCatalogSize {
		return nil, fmt.Errorf("%d movies (max %d): %w", len(movies), cfg.Build.MaxCatalogSize, ErrCatalogTooLarge)
	}

	catalog := slices.Clone(movies)

	vocab, vectors, err := BuildFeatures(catalog)
	if err != nil {
		return nil, fmt.Errorf("build features: %w", err)
	}

	matrix, err := BuildSimilarity(ctx, vectors, cfg.EffectiveWorkers())
	if err != nil {
		return nil, err
	}

	return &Recommender{
		movies:   catalog,
		vocab:    vocab,
		vectors:  vectors,
		matrix:   matrix,
		titles:   buildTitleIndex(catalog),
		defaultK: cfg.Limits.DefaultK,
	}, nil
}

// buildTitleIndex maps each title to the position of its first occurrence.
func buildTitleIndex(movies []Movie) map[string]int {
	titles := make(map[string]int, len(movies))
	for i := range movies {
		if _, seen := titles[movies[i].Title]; !seen {
			titles[movies[i].Title] = i
		}
	}
	return titles
}

// Lookup returns the catalog position of title.
// Duplicate titles resolve to their first occurrence.
func (r *Recommender) Lookup(title string) (int, error) {
	pos, ok := r.titles[title]
	if !ok {
		return -1, &NotFoundError{Title: title}
	}
	return pos, nil
}

// Recommend returns up to k titles most similar to title, best first.
// k <= 0 selects the configured default. The selected movie is never
// included; fewer than k titles are returned when the catalog is small.
func (r *Recommender) Recommend(title string, k int) ([]string, error) {
	scored, err := r.RecommendScored(title, k)
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(scored))
	for i := range scored {
		titles[i] = scored[i].Title
	}
	return titles, nil
}

// RecommendScored is Recommend with positions, IDs and similarity scores.
func (r *Recommender) RecommendScored(title string, k int) ([]ScoredMovie, error) {
	pos, err := r.Lookup(title)
	if err != nil {
		return nil, err
	}
	return r.rank(pos, k)
}

// rank orders the row for pos and cuts the top k, skipping pos itself.
func (r *Recommender) rank(pos, k int) ([]ScoredMovie, error) {
	if k <= 0 {
		k = r.defaultK
	}

	row, err := r.matrix.Row(pos)
	if err != nil {
		return nil, err
	}

	candidates := slices.DeleteFunc(row, func(n Neighbor) bool {
		return n.Position == pos
	})
	slices.SortFunc(candidates, CompareNeighbors)

	if k > len(candidates) {
		k = len(candidates)
	}

	results := make([]ScoredMovie, k)
	for i := 0; i < k; i++ {
		n := candidates[i]
		m := r.movies[n.Position]
		results[i] = ScoredMovie{
			Rank:     i + 1,
			Position: n.Position,
			ID:       m.ID,
			Title:    m.Title,
			Genres:   m.Genres,
			Score:    n.Score,
		}
	}
	return results, nil
}

// CompareNeighbors orders by score descending, then position ascending.
// It is a total order over distinct positions.
func CompareNeighbors(a, b Neighbor) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.Position, b.Position)
}

// Movies returns a copy of the catalog in its original order.
func (r *Recommender) Movies() []Movie {
	return slices.Clone(r.movies)
}

// Len returns the catalog size.
func (r *Recommender) Len() int {
	return len(r.movies)
}

// Movie returns the record at pos.
func (r *Recommender) Movie(pos int) (Movie, error) {
	if pos < 0 || pos >= len(r.movies) {
		return Movie{}, fmt.Errorf("movie %d of %d: %w", pos, len(r.movies), ErrPositionOutOfRange)
	}
	return r.movies[pos], nil
}

// Vocabulary returns the term vocabulary the index was built from.
func (r *Recommender) Vocabulary() *Vocabulary {
	return r.vocab
}

// Vector returns the feature vector at pos.
func (r *Recommender) Vector(pos int) (FeatureVector, error) {
	if pos < 0 || pos >= len(r.vectors) {
		return FeatureVector{}, fmt.Errorf("vector %d of %d: %w", pos, len(r.vectors), ErrPositionOutOfRange)
	}
	return r.vectors[pos], nil
}

// Matrix returns the similarity matrix.
func (r *Recommender) Matrix() *SimilarityMatrix {
	return r.matrix
}
