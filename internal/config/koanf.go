// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/genrematch/config.yaml",
	"/etc/genrematch/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:            "",
			URL:             "",
			Format:          "auto",
			Encoding:        "auto",
			Watch:           false,
			WatchDebounce:   500 * time.Millisecond,
			RefreshInterval: 0,
			FetchTimeout:    30 * time.Second,
			MaxBytes:        64 << 20, // 64 MiB; ml-25m movies.csv is ~3 MiB
			Breaker: BreakerConfig{
				MaxRequests:         1,
				Interval:            time.Minute,
				Timeout:             30 * time.Second,
				ConsecutiveFailures: 3,
			},
		},
		Recommend: RecommendConfig{
			DefaultK:       5,
			MaxK:           100,
			Workers:        0, // runtime.NumCPU()
			MaxCatalogSize: 50000,
			BuildTimeout:   5 * time.Minute,
			EagerRebuild:   true,
			WarmOnStartup:  true,
			CacheSize:      1024,
			CacheTTL:       10 * time.Minute,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in defaults. The result has no catalog source
// and does not pass Validate until one is set.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration from defaults, the config file found
// via CONFIG_PATH or DefaultConfigPaths, and the environment, then validates it.
func LoadWithKoanf() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is LoadWithKoanf with an explicit config file. An empty path
// skips the file layer.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are keys that accept comma-separated env values.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config keys.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"catalog_path":             "catalog.path",
	"catalog_url":              "catalog.url",
	"catalog_format":           "catalog.format",
	"catalog_encoding":         "catalog.encoding",
	"catalog_watch":            "catalog.watch",
	"catalog_watch_debounce":   "catalog.watch_debounce",
	"catalog_refresh_interval": "catalog.refresh_interval",
	"catalog_fetch_timeout":    "catalog.fetch_timeout",
	"catalog_max_bytes":        "catalog.max_bytes",
	"catalog_breaker_requests": "catalog.breaker.max_requests",
	"catalog_breaker_interval": "catalog.breaker.interval",
	"catalog_breaker_timeout":  "catalog.breaker.timeout",
	"catalog_breaker_failures": "catalog.breaker.consecutive_failures",

	"recommend_default_k":        "recommend.default_k",
	"recommend_max_k":            "recommend.max_k",
	"recommend_workers":          "recommend.workers",
	"recommend_max_catalog_size": "recommend.max_catalog_size",
	"recommend_build_timeout":    "recommend.build_timeout",
	"recommend_eager_rebuild":    "recommend.eager_rebuild",
	"recommend_warm_on_startup":  "recommend.warm_on_startup",
	"recommend_cache_size":       "recommend.cache_size",
	"recommend_cache_ttl":        "recommend.cache_ttl",

	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps CATALOG_PATH to catalog.path and so on.
// Returning "" tells koanf to skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
