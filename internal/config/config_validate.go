// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package config

import (
	"fmt"

	"github.com/tomtom215/genrematch/internal/catalog"
	"github.com/tomtom215/genrematch/internal/validation"
)

// Validate checks the configuration. Struct tags cover ranges and
// required fields; the rest are cross-field checks the tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateRecommend()
}

func (c *Config) validateCatalog() error {
	if _, err := catalog.ParseFormat(c.Catalog.Format); err != nil {
		return fmt.Errorf("CATALOG_FORMAT: %w", err)
	}
	if _, err := catalog.ParseEncoding(c.Catalog.Encoding); err != nil {
		return fmt.Errorf("CATALOG_ENCODING: %w", err)
	}
	if c.Catalog.Watch && c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_WATCH requires CATALOG_PATH")
	}
	if c.Catalog.RefreshInterval > 0 && c.Catalog.URL == "" {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL requires CATALOG_URL")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1 when rate limiting is enabled")
	}
	if c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// HasWildcardCORS reports whether any allowed origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, o := range c.Server.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
