// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/genrematch/internal/metrics"
	"github.com/tomtom215/genrematch/internal/recommend"
)

// Publisher accepts a freshly loaded catalog. *recommend.Engine satisfies it.
type Publisher interface {
	SetCatalog(ctx context.Context, movies []recommend.Movie) (bool, error)
}

// Loader loads a catalog from a Source and hands it to a Publisher.
type Loader struct {
	source    Source
	publisher Publisher
	logger    zerolog.Logger
}

// NewLoader creates a loader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(source Source, publisher Publisher, logger zerolog.Logger) *Loader {
	return &Loader{
		source:    source,
		publisher: publisher,
		logger:    logger.With().Str("component", "catalog").Logger(),
	}
}

// Source returns the underlying source.
func (l *Loader) Source() Source {
	return l.source
}

// Reload loads the catalog and publishes it. It reports whether the
// published catalog changed. On a load error the current catalog is kept.
func (l *Loader) Reload(ctx context.Context) (bool, error) {
	start := time.Now()

	movies, err := l.source.Load(ctx)
	if err != nil {
		metrics.RecordCatalogReload(l.source.Kind(), time.Since(start), false, err)
		l.logger.Error().Err(err).Str("source", l.source.String()).Msg("catalog load failed")
		return false, fmt.Errorf("load catalog: %w", err)
	}

	changed, err := l.publisher.SetCatalog(ctx, movies)
	metrics.RecordCatalogReload(l.source.Kind(), time.Since(start), changed, err)
	if err != nil {
		l.logger.Error().Err(err).Str("source", l.source.String()).Msg("catalog publish failed")
		return changed, fmt.Errorf("publish catalog: %w", err)
	}

	l.logger.Info().
		Str("source", l.source.String()).
		Int("movies", len(movies)).
		Bool("changed", changed).
		Dur("duration", time.Since(start)).
		Msg("catalog loaded")

	return changed, nil
}
