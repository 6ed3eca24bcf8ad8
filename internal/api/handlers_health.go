// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status           string  `json:"status"`
	Uptime           float64 `json:"uptime_seconds"`
	Analyses         int64   `json:"analyses"`
	RecordsProcessed int64   `json:"records_processed"`
	Publisher        string  `json:"publisher,omitempty"`
}

// breakerReporter is implemented by publishers that expose a circuit breaker.
type breakerReporter interface {
	BreakerState() string
}

// Health reports liveness and counters from the shared detection engine.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	health := HealthStatus{
		Status: "ok",
		Uptime: time.Since(h.startTime).Seconds(),
	}
	if h.analyzer != nil {
		stats := h.analyzer.Engine().Stats()
		health.Analyses = stats.Runs
		health.RecordsProcessed = stats.RecordsProcessed
	}
	if br, ok := h.publisher.(breakerReporter); ok {
		health.Publisher = br.BreakerState()
	}

	respondJSON(w, http.StatusOK, health)
}
