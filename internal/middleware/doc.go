// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

/*
Package middleware provides chi-compatible HTTP middleware.

  - RequestID: X-Request-ID propagation (google/uuid) into the logging context
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests labelled by chi route pattern
  - AccessLog: one zerolog line per request

Typical ordering:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
*/
package middleware
