// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/genrematch/internal/api"
	"github.com/tomtom215/genrematch/internal/catalog"
	"github.com/tomtom215/genrematch/internal/config"
	"github.com/tomtom215/genrematch/internal/logging"
	"github.com/tomtom215/genrematch/internal/metrics"
	"github.com/tomtom215/genrematch/internal/recommend"
	"github.com/tomtom215/genrematch/internal/supervisor"
	"github.com/tomtom215/genrematch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("config", cfg.String()).
		Msg("starting genrematch")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS for production")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, loader, err := initEngine(ctx, cfg)
	if err != nil {
		cancel()
		logging.Fatal().Err(err).Msg("failed to initialize recommendation engine")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		cancel()
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	addCatalogServices(tree, cfg, loader)

	if cfg.Recommend.WarmOnStartup && !engine.Ready() {
		tree.AddEngineService(services.NewWarmService(engine, 5*time.Second, logging.WithComponent("engine")))
	}

	handler := api.NewHandler(engine, loader, api.HandlerConfig{
		DefaultK:       cfg.Recommend.DefaultK,
		MaxK:           cfg.Recommend.MaxK,
		RequestTimeout: cfg.Server.WriteTimeout,
		Version:        version,
	})
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSAllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSExposedHeaders: []string{"X-Request-ID"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Server.RateLimitRequests,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
		RateLimitDisabled:  cfg.Server.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(
		server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
	}

	logging.Info().Msg("genrematch stopped")
}

// initEngine creates the engine, loads the catalog once and, when
// configured, builds the index before the server starts. A URL catalog that
// cannot be fetched yet is tolerated when periodic refresh is enabled.
func initEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, *catalog.Loader, error) {
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logging.WithComponent("engine"))
	if err != nil {
		return nil, nil, err
	}
	engine.SetObserver(metrics.EngineObserver{})

	source, err := catalog.NewSource(cfg.Catalog.SourceOptions(), logging.WithComponent("catalog"))
	if err != nil {
		return nil, nil, err
	}
	loader := catalog.NewLoader(source, engine, logging.Logger())

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Recommend.BuildTimeout)
	defer cancel()

	if _, err := loader.Reload(loadCtx); err != nil {
		if source.Kind() != catalog.KindURL || cfg.Catalog.RefreshInterval <= 0 {
			return nil, nil, err
		}
		logging.Warn().Err(err).Msg("initial catalog fetch failed, serving unready until refresh succeeds")
		return engine, loader, nil
	}

	if cfg.Recommend.WarmOnStartup {
		if err := engine.Warm(loadCtx); err != nil {
			return nil, nil, err
		}
	}

	st := engine.Status()
	logging.Info().
		Int("movies", st.CatalogSize).
		Bool("ready", st.Ready).
		Str("fingerprint", st.Fingerprint).
		Msg("catalog loaded")

	return engine, loader, nil
}

func addCatalogServices(tree *supervisor.SupervisorTree, cfg *config.Config, loader *catalog.Loader) {
	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		tree.AddCatalogService(catalog.NewWatcher(
			cfg.Catalog.Path, loader, cfg.Catalog.WatchDebounce, logging.WithComponent("catalog")))
	}

	if cfg.Catalog.URL != "" && cfg.Catalog.RefreshInterval > 0 {
		tree.AddCatalogService(services.NewRefreshService(loader, services.RefreshServiceConfig{
			Interval: cfg.Catalog.RefreshInterval,
			Timeout:  cfg.Catalog.FetchTimeout + cfg.Recommend.BuildTimeout,
		}, logging.WithComponent("catalog")))
	}
}
