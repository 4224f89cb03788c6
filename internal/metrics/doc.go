// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered at package init with promauto and updated through
the Record* helpers. EngineObserver adapts them to recommend.Observer so the
recommend package stays free of Prometheus imports.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Index Metrics:
  - genrematch_index_build_duration_seconds: Build time (histogram)
  - genrematch_index_builds_total: Builds by result (counter)
    Labels: result (success, empty, too_large, cancelled, error)
  - genrematch_catalog_movies: Indexed catalog size (gauge)
  - genrematch_vocabulary_terms: Distinct genre terms (gauge)
  - genrematch_index_last_build_timestamp: Last successful build (gauge)

Recommendation Metrics:
  - genrematch_recommend_requests_total: Queries by result (counter)
    Labels: result (success, not_found, unavailable, cancelled, error)
  - genrematch_recommend_duration_seconds: Query latency (histogram)

Catalog Metrics:
  - genrematch_catalog_reloads_total: Loads by source and result (counter)
    Labels: source (file, url), result (changed, unchanged, error)
  - genrematch_catalog_load_duration_seconds: Load time (histogram)

HTTP Metrics:
  - api_requests_total: Requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_state_transitions_total: Transitions (counter)

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
