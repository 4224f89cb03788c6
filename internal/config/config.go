// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/genrematch/internal/catalog"
	"github.com/tomtom215/genrematch/internal/recommend"
)

// Config holds all application configuration.
//
// Loading order (see LoadWithKoanf):
//  1. Built-in defaults
//  2. Optional YAML file (CONFIG_PATH or the DefaultConfigPaths search list)
//  3. Environment variables
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig selects and tunes the catalog source.
// Exactly one of Path and URL must be set.
type CatalogConfig struct {
	// Path is a local movies.dat or movies.csv file.
	Path string `koanf:"path" validate:"required_without=URL,excluded_with=URL"`

	// URL is an http(s) location of the catalog file.
	URL string `koanf:"url" validate:"omitempty,http_url"`

	// Format is auto, dat or csv. auto picks by file extension.
	Format string `koanf:"format"`

	// Encoding is auto, iso-8859-1, windows-1252 or utf-8.
	// auto means iso-8859-1 for dat and utf-8 for csv.
	Encoding string `koanf:"encoding"`

	// Watch reloads a file catalog when it changes on disk.
	Watch bool `koanf:"watch"`

	// WatchDebounce coalesces bursts of file events.
	WatchDebounce time.Duration `koanf:"watch_debounce" validate:"gte=0s"`

	// RefreshInterval re-fetches a URL catalog periodically. Zero disables it.
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gte=0s"`

	// FetchTimeout bounds a single URL fetch.
	FetchTimeout time.Duration `koanf:"fetch_timeout" validate:"gte=0s"`

	// MaxBytes caps the size of a URL catalog.
	MaxBytes int64 `koanf:"max_bytes" validate:"gte=0"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of URL fetches.
type BreakerConfig struct {
	MaxRequests         uint32        `koanf:"max_requests" validate:"min=1"`
	Interval            time.Duration `koanf:"interval" validate:"gte=0s"`
	Timeout             time.Duration `koanf:"timeout" validate:"gt=0s"`
	ConsecutiveFailures uint32        `koanf:"consecutive_failures" validate:"min=1"`
}

// RecommendConfig holds engine settings.
type RecommendConfig struct {
	DefaultK       int           `koanf:"default_k" validate:"min=1"`
	MaxK           int           `koanf:"max_k" validate:"min=1,gtefield=DefaultK"`
	Workers        int           `koanf:"workers" validate:"gte=0"`
	MaxCatalogSize int           `koanf:"max_catalog_size" validate:"gte=0"`
	BuildTimeout   time.Duration `koanf:"build_timeout" validate:"gt=0s"`

	// EagerRebuild rebuilds the index when a changed catalog is published.
	EagerRebuild bool `koanf:"eager_rebuild"`

	// WarmOnStartup builds the index before the HTTP server accepts traffic.
	WarmOnStartup bool `koanf:"warm_on_startup"`

	// CacheSize is the number of ranked results memoized; 0 disables the cache.
	CacheSize int           `koanf:"cache_size" validate:"gte=0"`
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"gte=0s"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gte=0s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gte=0s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gte=0s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0s"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0s"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is trace, debug, info, warn or error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error"`

	// Format is json (production) or console (development).
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller adds file:line to each entry.
	Caller bool `koanf:"caller"`
}

// SourceOptions converts the catalog section into catalog.Options.
func (c *CatalogConfig) SourceOptions() catalog.Options {
	return catalog.Options{
		Path:         c.Path,
		URL:          c.URL,
		Format:       c.Format,
		Encoding:     c.Encoding,
		FetchTimeout: c.FetchTimeout,
		MaxBytes:     c.MaxBytes,
		Breaker: catalog.BreakerSettings{
			MaxRequests:         c.Breaker.MaxRequests,
			Interval:            c.Breaker.Interval,
			Timeout:             c.Breaker.Timeout,
			ConsecutiveFailures: c.Breaker.ConsecutiveFailures,
		},
	}
}

// EngineConfig converts the recommend section into a recommend.Config.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Limits.DefaultK = r.DefaultK
	cfg.Limits.MaxK = r.MaxK
	cfg.Build.Workers = r.Workers
	cfg.Build.MaxCatalogSize = r.MaxCatalogSize
	cfg.Build.Timeout = r.BuildTimeout
	cfg.Build.EagerRebuild = r.EagerRebuild
	cfg.Cache.Size = r.CacheSize
	cfg.Cache.TTL = r.CacheTTL
	return cfg
}

// String summarizes the configuration for the startup log without secrets.
func (c *Config) String() string {
	src := c.Catalog.Path
	if src == "" {
		src = c.Catalog.URL
	}
	return fmt.Sprintf("catalog=%s addr=%s default_k=%d log=%s/%s",
		src, c.Server.Addr(), c.Recommend.DefaultK, c.Logging.Level, c.Logging.Format)
}
