// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/genrematch/internal/recommend"
)

// Engine is the recommendation engine surface the handlers need.
// *recommend.Engine implements it.
type Engine interface {
	Ready() bool
	Status() recommend.Status
	Movies() ([]recommend.Movie, error)
	RecommendScored(ctx context.Context, title string, k int) ([]recommend.ScoredMovie, error)
	Warm(ctx context.Context) error
}

// Reloader re-reads the catalog source and publishes it to the engine.
// *catalog.Loader implements it.
type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

// HandlerConfig configures request limits for the handlers.
type HandlerConfig struct {
	// DefaultK is reported as the effective K when a request omits k.
	DefaultK int

	// MaxK is the largest k a request may ask for.
	MaxK int

	// RequestTimeout bounds how long a request waits for the index.
	RequestTimeout time.Duration

	// Version is reported by the liveness endpoint.
	Version string
}

// DefaultHandlerConfig returns limits matching recommend.DefaultConfig.
func DefaultHandlerConfig() HandlerConfig {
	limits := recommend.DefaultConfig().Limits
	return HandlerConfig{
		DefaultK:       limits.DefaultK,
		MaxK:           limits.MaxK,
		RequestTimeout: 10 * time.Second,
		Version:        "dev",
	}
}

// Handler serves the HTTP API.
type Handler struct {
	engine    Engine
	reloader  Reloader
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a handler for engine. reloader may be nil, in which
// case POST /catalog/reload answers 503.
func NewHandler(engine Engine, reloader Reloader, cfg HandlerConfig) *Handler {
	def := DefaultHandlerConfig()
	if cfg.DefaultK <= 0 {
		cfg.DefaultK = def.DefaultK
	}
	if cfg.MaxK < cfg.DefaultK {
		cfg.MaxK = max(def.MaxK, cfg.DefaultK)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}

	return &Handler{
		engine:    engine,
		reloader:  reloader,
		config:    cfg,
		startTime: time.Now(),
	}
}

func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.config.RequestTimeout)
}
