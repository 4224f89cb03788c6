// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package api

import (
	"net/http"
	"time"
)

// LivenessStatus is the body of GET /health/live.
type LivenessStatus struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Uptime  float64 `json:"uptime_seconds"`
}

// ReadinessStatus is the body of GET /health/ready.
type ReadinessStatus struct {
	Ready       bool   `json:"ready"`
	CatalogSize int    `json:"catalog_size"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// HealthLive handles GET /api/v1/health/live.
// It reports that the process is serving and never touches the engine.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, LivenessStatus{
		Status:  "alive",
		Version: h.config.Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready.
// It answers 503 until a similarity index is built for the current catalog.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.engine.Ready() {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"similarity index not built", h.engine.Status())
		return
	}

	st := h.engine.Status()
	rw.Success(ReadinessStatus{
		Ready:       true,
		CatalogSize: st.CatalogSize,
		Fingerprint: st.Fingerprint,
	})
}
