// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package recommend

import (
	"fmt"
	"runtime"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains request-level limits.
	Limits LimitsConfig `json:"limits"`

	// Build contains similarity index build parameters.
	Build BuildConfig `json:"build"`

	// Cache contains result cache parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains request-level limits.
type LimitsConfig struct {
	// DefaultK is the number of recommendations returned when K <= 0.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK is the largest K accepted at the request boundary (API/CLI).
	// The engine itself never truncates below min(K, N-1).
	// Default: 100.
	MaxK int `json:"max_k"`
}

// BuildConfig contains similarity index build parameters.
type BuildConfig struct {
	// Workers is the number of goroutines computing similarity rows.
	// Zero means runtime.NumCPU().
	Workers int `json:"workers"`

	// MaxCatalogSize bounds the catalog size. The dense matrix needs
	// 8*N*N bytes, so 50,000 movies is roughly 20 GB.
	// Zero disables the check.
	// Default: 50000.
	MaxCatalogSize int `json:"max_catalog_size"`

	// Timeout bounds a single index build.
	// Default: 5m.
	Timeout time.Duration `json:"timeout"`

	// EagerRebuild rebuilds the index as soon as a changed catalog is
	// published instead of on the next query.
	// Default: true.
	EagerRebuild bool `json:"eager_rebuild"`
}

// CacheConfig controls memoization of ranked results.
type CacheConfig struct {
	// Size is the number of (catalog version, title, k) results kept.
	// Zero disables the cache.
	// Default: 1024.
	Size int `json:"size"`

	// TTL bounds how long a cached result is served.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     100,
		},
		Build: BuildConfig{
			Workers:        0,
			MaxCatalogSize: 50000,
			Timeout:        5 * time.Minute,
			EagerRebuild:   true,
		},
		Cache: CacheConfig{
			Size: 1024,
			TTL:  10 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Build.Workers < 0 {
		return fmt.Errorf("build.workers must be non-negative, got %d", c.Build.Workers)
	}
	if c.Build.MaxCatalogSize < 0 {
		return fmt.Errorf("build.max_catalog_size must be non-negative, got %d", c.Build.MaxCatalogSize)
	}
	if c.Build.Timeout <= 0 {
		return fmt.Errorf("build.timeout must be positive, got %v", c.Build.Timeout)
	}

	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must be non-negative, got %d", c.Cache.Size)
	}
	if c.Cache.Size > 0 && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when the cache is enabled, got %v", c.Cache.TTL)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Nested structs hold only value types
	return &Config{
		Limits: c.Limits,
		Build:  c.Build,
		Cache:  c.Cache,
	}
}

// EffectiveWorkers resolves the configured worker count.
func (c *Config) EffectiveWorkers() int {
	if c.Build.Workers > 0 {
		return c.Build.Workers
	}
	return runtime.NumCPU()
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type buildJSON struct {
		Workers        int    `json:"workers"`
		MaxCatalogSize int    `json:"max_catalog_size"`
		Timeout        string `json:"timeout"`
		EagerRebuild   bool   `json:"eager_rebuild"`
	}
	type cacheJSON struct {
		Size int    `json:"size"`
		TTL  string `json:"ttl"`
	}
	return json.Marshal(&struct {
		Limits LimitsConfig `json:"limits"`
		Build  buildJSON    `json:"build"`
		Cache  cacheJSON    `json:"cache"`
	}{
		Limits: c.Limits,
		Build: buildJSON{
			Workers:        c.Build.Workers,
			MaxCatalogSize: c.Build.MaxCatalogSize,
			Timeout:        c.Build.Timeout.String(),
			EagerRebuild:   c.Build.EagerRebuild,
		},
		Cache: cacheJSON{
			Size: c.Cache.Size,
			TTL:  c.Cache.TTL.String(),
		},
	})
}
