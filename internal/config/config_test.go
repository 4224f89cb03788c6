// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns defaults plus a catalog path.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Catalog.Path = "/data/ml-1m/movies.dat"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Catalog.Format != "auto" || cfg.Catalog.Encoding != "auto" {
		t.Errorf("Catalog format/encoding = %q/%q, want auto/auto", cfg.Catalog.Format, cfg.Catalog.Encoding)
	}
	if cfg.Catalog.Breaker.ConsecutiveFailures != 3 {
		t.Errorf("Breaker.ConsecutiveFailures = %d, want 3", cfg.Catalog.Breaker.ConsecutiveFailures)
	}
	if cfg.Recommend.DefaultK != 5 {
		t.Errorf("Recommend.DefaultK = %d, want 5", cfg.Recommend.DefaultK)
	}
	if cfg.Recommend.BuildTimeout != 5*time.Minute {
		t.Errorf("Recommend.BuildTimeout = %v, want 5m", cfg.Recommend.BuildTimeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid path", func(*Config) {}, ""},
		{"valid url", func(c *Config) {
			c.Catalog.Path = ""
			c.Catalog.URL = "https://files.grouplens.org/datasets/movielens/ml-1m/movies.dat"
			c.Catalog.RefreshInterval = time.Hour
		}, ""},
		{"no source", func(c *Config) { c.Catalog.Path = "" }, "catalog.path is required"},
		{"both sources", func(c *Config) { c.Catalog.URL = "https://example.com/movies.dat" }, "catalog.path cannot be combined"},
		{"bad url", func(c *Config) {
			c.Catalog.Path = ""
			c.Catalog.URL = "ftp://example.com/movies.dat"
		}, "catalog.url"},
		{"bad format", func(c *Config) { c.Catalog.Format = "xml" }, "CATALOG_FORMAT"},
		{"bad encoding", func(c *Config) { c.Catalog.Encoding = "ebcdic" }, "CATALOG_ENCODING"},
		{"watch without path", func(c *Config) {
			c.Catalog.Path = ""
			c.Catalog.URL = "https://example.com/movies.dat"
			c.Catalog.Watch = true
		}, "CATALOG_WATCH requires CATALOG_PATH"},
		{"refresh without url", func(c *Config) { c.Catalog.RefreshInterval = time.Minute }, "CATALOG_REFRESH_INTERVAL requires CATALOG_URL"},
		{"zero breaker failures", func(c *Config) { c.Catalog.Breaker.ConsecutiveFailures = 0 }, "catalog.breaker.consecutive_failures"},
		{"zero default k", func(c *Config) { c.Recommend.DefaultK = 0 }, "recommend.default_k"},
		{"max k below default", func(c *Config) { c.Recommend.MaxK = 3 }, "recommend.max_k"},
		{"negative workers", func(c *Config) { c.Recommend.Workers = -1 }, "recommend.workers"},
		{"zero build timeout", func(c *Config) { c.Recommend.BuildTimeout = 0 }, "recommend.build_timeout"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"rate limit zero", func(c *Config) { c.Server.RateLimitRequests = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Server.RateLimitRequests = 0
			c.Server.RateLimitDisabled = true
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"", 9000, ":9000"},
		{"::1", 8080, "[::1]:8080"},
	}
	for _, tt := range tests {
		s := ServerConfig{Host: tt.host, Port: tt.port}
		if got := s.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
}

func TestRecommendConfig_EngineConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.DefaultK = 7
	cfg.Recommend.Workers = 3
	cfg.Recommend.EagerRebuild = false
	cfg.Recommend.CacheSize = 16
	cfg.Recommend.CacheTTL = time.Minute

	ec := cfg.Recommend.EngineConfig()
	if ec.Limits.DefaultK != 7 || ec.Limits.MaxK != 100 {
		t.Errorf("Limits = %+v, want default_k 7 max_k 100", ec.Limits)
	}
	if ec.Build.Workers != 3 || ec.Build.EagerRebuild {
		t.Errorf("Build = %+v, want workers 3 eager false", ec.Build)
	}
	if ec.Cache.Size != 16 || ec.Cache.TTL != time.Minute {
		t.Errorf("Cache = %+v, want size 16 ttl 1m", ec.Cache)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("EngineConfig().Validate() error = %v", err)
	}
}

func TestCatalogConfig_SourceOptions(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Breaker.ConsecutiveFailures = 5

	opts := cfg.Catalog.SourceOptions()
	if opts.Path != cfg.Catalog.Path {
		t.Errorf("Path = %q, want %q", opts.Path, cfg.Catalog.Path)
	}
	if opts.Breaker.ConsecutiveFailures != 5 {
		t.Errorf("Breaker.ConsecutiveFailures = %d, want 5", opts.Breaker.ConsecutiveFailures)
	}
	if opts.MaxBytes != 64<<20 {
		t.Errorf("MaxBytes = %d, want 64 MiB", opts.MaxBytes)
	}
}

func TestHasWildcardCORS(t *testing.T) {
	cfg := validConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = false for default origins")
	}
	cfg.Server.CORSOrigins = []string{"https://movies.example.com"}
	if cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = true for explicit origins")
	}
}
