// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CatalogReloader re-reads the catalog source and publishes it when the
// contents changed. *catalog.Loader implements it.
type CatalogReloader interface {
	Reload(ctx context.Context) (bool, error)
}

// RefreshServiceConfig configures periodic catalog refresh.
type RefreshServiceConfig struct {
	// Interval between reloads. Default: 1h.
	Interval time.Duration

	// Timeout bounds a single reload. Default: 5m.
	Timeout time.Duration

	// ReloadOnStart reloads once before the first tick.
	ReloadOnStart bool
}

// RefreshService reloads a remote catalog on a fixed interval.
// Failed reloads are logged and retried on the next tick; the engine keeps
// serving the last published catalog meanwhile.
type RefreshService struct {
	reloader CatalogReloader
	config   RefreshServiceConfig
	logger   zerolog.Logger
}

// NewRefreshService creates a catalog refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(reloader CatalogReloader, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &RefreshService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("service", "catalog-refresh").Logger(),
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("reload_on_start", s.config.ReloadOnStart).
		Msg("catalog refresh starting")

	if s.config.ReloadOnStart {
		s.reload(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresh stopping")
			return ctx.Err()
		case <-ticker.C:
			s.reload(ctx)
		}
	}
}

func (s *RefreshService) reload(ctx context.Context) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	changed, err := s.reloader.Reload(reloadCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("scheduled catalog reload failed")
		}
		return
	}

	s.logger.Debug().
		Bool("changed", changed).
		Dur("duration", time.Since(start)).
		Msg("scheduled catalog reload complete")
}

// String returns the service name for logging.
func (s *RefreshService) String() string {
	return "catalog-refresh"
}
