// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
)

// sampleCatalog returns a small MovieLens-style catalog.
func sampleCatalog() []Movie {
	return []Movie{
		{ID: 1, Title: "Toy Story (1995)", Genres: "Animation|Children's|Comedy"},
		{ID: 2, Title: "Jumanji (1995)", Genres: "Adventure|Children's|Fantasy"},
		{ID: 3, Title: "Grumpier Old Men (1995)", Genres: "Comedy|Romance"},
		{ID: 4, Title: "Waiting to Exhale (1995)", Genres: "Comedy|Drama"},
		{ID: 5, Title: "Father of the Bride Part II (1995)", Genres: "Comedy"},
		{ID: 6, Title: "Heat (1995)", Genres: "Action|Crime|Thriller"},
		{ID: 7, Title: "Sabrina (1995)", Genres: "Comedy|Romance"},
		{ID: 8, Title: "Tom and Huck (1995)", Genres: "Adventure|Children's"},
		{ID: 9, Title: "Sudden Death (1995)", Genres: "Action"},
		{ID: 10, Title: "GoldenEye (1995)", Genres: "Action|Adventure|Thriller"},
		{ID: 11, Title: "Unknown Genres (1995)", Genres: ""},
	}
}

func buildMatrix(t *testing.T, movies []Movie, workers int) *SimilarityMatrix {
	t.Helper()
	_, vectors, err := BuildFeatures(movies)
	if err != nil {
		t.Fatalf("BuildFeatures() error = %v", err)
	}
	m, err := BuildSimilarity(context.Background(), vectors, workers)
	if err != nil {
		t.Fatalf("BuildSimilarity() error = %v", err)
	}
	return m
}

func TestBuildSimilarity_Empty(t *testing.T) {
	_, err := BuildSimilarity(context.Background(), nil, 4)
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("BuildSimilarity(nil) error = %v, want ErrEmptyCatalog", err)
	}
}

func TestBuildSimilarity_Properties(t *testing.T) {
	movies := sampleCatalog()
	m := buildMatrix(t, movies, 3)
	n := len(movies)
	zero := n - 1

	if m.Size() != n {
		t.Fatalf("Size() = %d, want %d", m.Size(), n)
	}

	t.Run("symmetric", func(t *testing.T) {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if m.Score(i, j) != m.Score(j, i) {
					t.Errorf("Score(%d,%d) = %v, Score(%d,%d) = %v", i, j, m.Score(i, j), j, i, m.Score(j, i))
				}
			}
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		for i := 0; i < n; i++ {
			want := 1.0
			if i == zero {
				want = 0
			}
			if got := m.Score(i, i); got != want {
				t.Errorf("Score(%d,%d) = %v, want %v", i, i, got, want)
			}
		}
	})

	t.Run("zero vector row is all zero", func(t *testing.T) {
		for j := 0; j < n; j++ {
			if got := m.Score(zero, j); got != 0 {
				t.Errorf("Score(%d,%d) = %v, want 0", zero, j, got)
			}
		}
	})

	t.Run("bounded and never NaN", func(t *testing.T) {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				s := m.Score(i, j)
				if math.IsNaN(s) || s < 0 || s > 1 {
					t.Errorf("Score(%d,%d) = %v, want in [0,1]", i, j, s)
				}
			}
		}
	})

	t.Run("identical genres score one", func(t *testing.T) {
		// Grumpier Old Men and Sabrina share "Comedy|Romance"
		if got := m.Score(2, 6); !almostEqual(got, 1) {
			t.Errorf("Score(2,6) = %v, want 1", got)
		}
	})

	t.Run("disjoint genres score zero", func(t *testing.T) {
		// Father of the Bride (Comedy) and Sudden Death (Action)
		if got := m.Score(4, 8); got != 0 {
			t.Errorf("Score(4,8) = %v, want 0", got)
		}
	})
}

func TestBuildSimilarity_WorkerCountInvariant(t *testing.T) {
	movies := sampleCatalog()
	base := buildMatrix(t, movies, 1)

	for _, workers := range []int{0, 2, 3, 7, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			m := buildMatrix(t, movies, workers)
			for i := range base.scores {
				if m.scores[i] != base.scores[i] {
					t.Fatalf("cell %d = %v, want %v", i, m.scores[i], base.scores[i])
				}
			}
		})
	}
}

func TestBuildSimilarity_Cancelled(t *testing.T) {
	_, vectors, err := BuildFeatures(sampleCatalog())
	if err != nil {
		t.Fatalf("BuildFeatures() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = BuildSimilarity(ctx, vectors, 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("BuildSimilarity() error = %v, want context.Canceled", err)
	}
}

func TestSimilarityMatrix_Row(t *testing.T) {
	m := buildMatrix(t, sampleCatalog(), 2)

	row, err := m.Row(0)
	if err != nil {
		t.Fatalf("Row(0) error = %v", err)
	}
	if len(row) != m.Size() {
		t.Fatalf("len(Row(0)) = %d, want %d", len(row), m.Size())
	}
	for j, n := range row {
		if n.Position != j {
			t.Errorf("row[%d].Position = %d, want %d", j, n.Position, j)
		}
		if n.Score != m.Score(0, j) {
			t.Errorf("row[%d].Score = %v, want %v", j, n.Score, m.Score(0, j))
		}
	}

	for _, pos := range []int{-1, m.Size()} {
		if _, err := m.Row(pos); !errors.Is(err, ErrPositionOutOfRange) {
			t.Errorf("Row(%d) error = %v, want ErrPositionOutOfRange", pos, err)
		}
	}
}

func TestClampUnit(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{1.0000000000000002, 1},
		{-1e-17, 0},
		{math.NaN(), 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := clampUnit(tt.in); got != tt.want {
			t.Errorf("clampUnit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func BenchmarkBuildSimilarity(b *testing.B) {
	genres := []string{"Action", "Comedy|Romance", "Drama|Thriller", "Animation|Children's|Comedy", "Sci-Fi|Action|Adventure"}
	movies := make([]Movie, 2000)
	for i := range movies {
		movies[i] = Movie{ID: i, Title: fmt.Sprintf("Movie %d", i), Genres: genres[i%len(genres)]}
	}
	_, vectors, err := BuildFeatures(movies)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildSimilarity(context.Background(), vectors, 4); err != nil {
			b.Fatal(err)
		}
	}
}
