// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/genrematch/internal/recommend"
)

var (
	// Similarity Index Metrics
	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genrematch_index_build_duration_seconds",
			Help:    "Duration of similarity index builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120}, // Grows with N^2
		},
	)

	IndexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genrematch_index_builds_total",
			Help: "Total number of similarity index builds",
		},
		[]string{"result"}, // success, empty, too_large, cancelled, error
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "genrematch_catalog_movies",
			Help: "Number of movies in the indexed catalog",
		},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "genrematch_vocabulary_terms",
			Help: "Number of distinct genre terms in the indexed catalog",
		},
	)

	IndexLastBuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "genrematch_index_last_build_timestamp",
			Help: "Unix timestamp of the last successful index build",
		},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genrematch_recommend_requests_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"result"}, // success, not_found, unavailable, cancelled, error
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genrematch_recommend_duration_seconds",
			Help:    "Recommendation query latency in seconds, including any lazy build",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// Catalog Metrics
	CatalogReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genrematch_catalog_reloads_total",
			Help: "Total number of catalog loads",
		},
		[]string{"source", "result"}, // source: file, url; result: changed, unchanged, error
	)

	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genrematch_catalog_load_duration_seconds",
			Help:    "Duration of catalog loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordIndexBuild records a similarity index build
func RecordIndexBuild(duration time.Duration, movies, terms int, err error) {
	IndexBuildDuration.Observe(duration.Seconds())
	result := buildResult(err)
	IndexBuildsTotal.WithLabelValues(result).Inc()
	if err != nil {
		return
	}
	CatalogSize.Set(float64(movies))
	VocabularySize.Set(float64(terms))
	IndexLastBuild.Set(float64(time.Now().Unix()))
}

// RecordRecommend records a recommendation query
func RecordRecommend(duration time.Duration, err error) {
	RecommendDuration.Observe(duration.Seconds())
	RecommendRequestsTotal.WithLabelValues(RecommendResult(err)).Inc()
}

// RecordCatalogReload records a catalog load attempt
func RecordCatalogReload(source string, duration time.Duration, changed bool, err error) {
	CatalogLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	result := "unchanged"
	switch {
	case err != nil:
		result = "error"
	case changed:
		result = "changed"
	}
	CatalogReloadsTotal.WithLabelValues(source, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecommendResult classifies a recommendation error into a result label.
func RecommendResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, recommend.ErrNotFound):
		return "not_found"
	case errors.Is(err, recommend.ErrNoCatalog),
		errors.Is(err, recommend.ErrEmptyCatalog),
		errors.Is(err, recommend.ErrCatalogTooLarge):
		return "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

func buildResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, recommend.ErrEmptyCatalog):
		return "empty"
	case errors.Is(err, recommend.ErrCatalogTooLarge):
		return "too_large"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

// EngineObserver forwards recommend.Engine events to the package collectors.
type EngineObserver struct{}

// ObserveBuild implements recommend.Observer.
func (EngineObserver) ObserveBuild(d time.Duration, movies, terms int, err error) {
	RecordIndexBuild(d, movies, terms, err)
}

// ObserveRecommend implements recommend.Observer.
func (EngineObserver) ObserveRecommend(d time.Duration, err error) {
	RecordRecommend(d, err)
}

var _ recommend.Observer = EngineObserver{}
