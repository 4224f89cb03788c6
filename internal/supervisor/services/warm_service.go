// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/genrematch/internal/recommend"
)

// IndexWarmer builds the similarity index for the current catalog.
// *recommend.Engine implements it.
type IndexWarmer interface {
	Warm(ctx context.Context) error
}

// WarmService builds the similarity index in the background so the first
// recommendation request does not pay for it. It finishes once the index
// is built. While no catalog is published it polls every retryInterval.
type WarmService struct {
	engine        IndexWarmer
	retryInterval time.Duration
	logger        zerolog.Logger
}

// NewWarmService creates a warmup service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWarmService(engine IndexWarmer, retryInterval time.Duration, logger zerolog.Logger) *WarmService {
	if retryInterval <= 0 {
		retryInterval = 5 * time.Second
	}
	return &WarmService{
		engine:        engine,
		retryInterval: retryInterval,
		logger:        logger.With().Str("service", "index-warmup").Logger(),
	}
}

// Serve implements suture.Service. It returns suture.ErrDoNotRestart once
// the index is built. Build failures are returned so suture backs off and
// retries.
func (s *WarmService) Serve(ctx context.Context) error {
	for {
		start := time.Now()
		err := s.engine.Warm(ctx)
		switch {
		case err == nil:
			s.logger.Info().Dur("duration", time.Since(start)).Msg("similarity index warm")
			return suture.ErrDoNotRestart
		case errors.Is(err, recommend.ErrNoCatalog):
			s.logger.Debug().Msg("no catalog published yet, waiting")
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			return fmt.Errorf("warm similarity index: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryInterval):
		}
	}
}

// String returns the service name for logging.
func (s *WarmService) String() string {
	return "index-warmup"
}
