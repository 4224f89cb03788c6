// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/genrematch/internal/cache"
)

// Movie is a single catalog record. Records are immutable once loaded.
type Movie struct {
	// ID is the catalog's movie identifier (MovieLens MovieID).
	ID int `json:"id"`

	// Title is the display title and the lookup key for recommendations.
	Title string `json:"title"`

	// Genres is the delimiter-joined genre tag string (e.g. "Action|Comedy").
	Genres string `json:"genres"`

	// Year is the release year parsed from the title, if present.
	// It is informational only and never contributes to similarity.
	Year int `json:"year,omitempty"`
}

// Neighbor pairs a catalog position with its similarity score.
type Neighbor struct {
	// Position is the zero-based catalog position.
	Position int `json:"position"`

	// Score is the cosine similarity in [0, 1].
	Score float64 `json:"score"`
}

// ScoredMovie is a ranked recommendation result.
type ScoredMovie struct {
	// Rank is the 1-based rank within the result list.
	Rank int `json:"rank"`

	// Position is the catalog position of the movie.
	Position int `json:"position"`

	// ID is the catalog movie identifier.
	ID int `json:"id"`

	// Title is the movie title.
	Title string `json:"title"`

	// Genres is the raw genre string.
	Genres string `json:"genres"`

	// Score is the cosine similarity to the selected movie.
	Score float64 `json:"score"`
}

// Status reports the engine's catalog and index state for observability.
type Status struct {
	// Ready indicates whether a similarity index is built for the current catalog.
	Ready bool `json:"ready"`

	// CatalogSize is the number of movies in the current catalog.
	CatalogSize int `json:"catalog_size"`

	// CatalogVersion identifies the current catalog. Each newly published
	// catalog gets a higher version; a rollback after a failed build
	// restores the previous one.
	CatalogVersion int64 `json:"catalog_version"`

	// Fingerprint identifies the catalog contents.
	Fingerprint string `json:"fingerprint"`

	// VocabularySize is the number of distinct genre terms in the built index.
	VocabularySize int `json:"vocabulary_size"`

	// BuiltAt is when the current index was built.
	BuiltAt time.Time `json:"built_at,omitempty"`

	// BuildDurationMS is how long the last build took.
	BuildDurationMS int64 `json:"build_duration_ms"`

	// BuildCount is the number of completed builds since startup.
	BuildCount int64 `json:"build_count"`

	// RequestCount is the number of recommendation requests served.
	RequestCount int64 `json:"request_count"`

	// ErrorCount is the number of failed recommendation requests.
	ErrorCount int64 `json:"error_count"`

	// LastBuildError describes the most recent failed build, if no build
	// has succeeded since.
	LastBuildError string `json:"last_build_error,omitempty"`

	// Cache reports result cache effectiveness; nil when the cache is disabled.
	Cache *cache.Stats `json:"cache,omitempty"`
}

var (
	// ErrNotFound is returned when the selected title is not in the catalog.
	ErrNotFound = errors.New("title not found in catalog")

	// ErrEmptyCatalog is returned when an index is built from zero records.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrCatalogTooLarge is returned when the catalog exceeds Config.MaxCatalogSize.
	ErrCatalogTooLarge = errors.New("catalog exceeds maximum size")

	// ErrPositionOutOfRange is returned for a similarity row outside [0, N).
	ErrPositionOutOfRange = errors.New("catalog position out of range")

	// ErrNoCatalog is returned when the engine is queried before a catalog is published.
	ErrNoCatalog = errors.New("no catalog published")
)

// NotFoundError carries the title that failed lookup.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Title string
}

// Error implements error.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("title %q not found in catalog", e.Title)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
