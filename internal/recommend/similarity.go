// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package recommend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SimilarityMatrix is a dense, symmetric N x N matrix of pairwise cosine
// similarities stored row-major. It is immutable after BuildSimilarity returns.
type SimilarityMatrix struct {
	n      int
	scores []float64
}

// Size returns N, the number of rows and columns.
func (m *SimilarityMatrix) Size() int {
	return m.n
}

// Score returns the similarity of positions i and j.
// It panics if either position is out of range.
func (m *SimilarityMatrix) Score(i, j int) float64 {
	return m.scores[i*m.n+j]
}

// Row returns every (position, score) pair for pos, including pos itself,
// in ascending position order.
func (m *SimilarityMatrix) Row(pos int) ([]Neighbor, error) {
	if pos < 0 || pos >= m.n {
		return nil, fmt.Errorf("row %d of %d: %w", pos, m.n, ErrPositionOutOfRange)
	}

	row := m.scores[pos*m.n : (pos+1)*m.n]
	neighbors := make([]Neighbor, m.n)
	for j, s := range row {
		neighbors[j] = Neighbor{Position: j, Score: s}
	}
	return neighbors, nil
}

// BuildSimilarity computes all pairwise cosine similarities between vectors.
//
// Rows are distributed round-robin across workers. The worker owning row i
// computes cells (i, j) for j >= i and mirrors each into (j, i), so every
// cell has exactly one writer and the result does not depend on the worker
// count. Cancellation is checked between rows.
func BuildSimilarity(ctx context.Context, vectors []FeatureVector, workers int) (*SimilarityMatrix, error) {
	n := len(vectors)
	if n == 0 {
		return nil, ErrEmptyCatalog
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	m := &SimilarityMatrix{
		n:      n,
		scores: make([]float64, n*n),
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < n; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				m.fillRow(vectors, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build similarity: %w", err)
	}

	return m, nil
}

// fillRow writes the upper-triangle cells of row i and their mirrors.
func (m *SimilarityMatrix) fillRow(vectors []FeatureVector, i int) {
	vi := vectors[i]
	if vi.IsZero() {
		// Row and column stay zero, including the diagonal
		return
	}

	m.scores[i*m.n+i] = 1.0
	for j := i + 1; j < m.n; j++ {
		s := clampUnit(Dot(vi, vectors[j]))
		m.scores[i*m.n+j] = s
		m.scores[j*m.n+i] = s
	}
}

// clampUnit bounds a dot product of unit vectors to [0, 1].
// NaN maps to 0.
func clampUnit(s float64) float64 {
	switch {
	case s > 1:
		return 1
	case s > 0:
		return s
	default:
		return 0
	}
}
