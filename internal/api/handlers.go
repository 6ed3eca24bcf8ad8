// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/loganalyzer/internal/analyzer"
	"github.com/tomtom215/loganalyzer/internal/config"
	"github.com/tomtom215/loganalyzer/internal/detection"
	"github.com/tomtom215/loganalyzer/internal/logging"
	"github.com/tomtom215/loganalyzer/internal/logparser"
	"github.com/tomtom215/loganalyzer/internal/report"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor and the analyze endpoint
//   - handlers_health.go: health endpoint
type Handler struct {
	config    *config.Config
	analyzer  *analyzer.Analyzer
	publisher analyzer.FindingPublisher
	startTime time.Time
}

// NewHandler creates the API handler. pub may be nil when publishing is off.
func NewHandler(cfg *config.Config, pub analyzer.FindingPublisher) (*Handler, error) {
	a, err := newAnalyzer(cfg, pub)
	if err != nil {
		return nil, err
	}

	return &Handler{
		config:    cfg,
		analyzer:  a,
		publisher: pub,
		startTime: time.Now(),
	}, nil
}

func newAnalyzer(cfg *config.Config, pub analyzer.FindingPublisher) (*analyzer.Analyzer, error) {
	var opts []analyzer.Option
	if pub != nil {
		opts = append(opts, analyzer.WithPublisher(pub))
	}
	return analyzer.New(cfg, opts...)
}

// AnalyzeResponse is the data payload of a successful analysis.
type AnalyzeResponse struct {
	TotalLines int                   `json:"total_lines"`
	Records    int                   `json:"records"`
	Rejected   []logparser.Rejection `json:"rejected"`
	Summary    report.Summary        `json:"summary"`
	Findings   []detection.Finding   `json:"findings"`
	Published  int                   `json:"published,omitempty"`
}

// Analyze runs detection over the log text in the request body.
//
// Query parameters threshold, window (minutes), hours (start-end) and
// timezone override the configured detection settings for this request only.
// format=text returns the plain-text report instead of JSON.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := parseAnalyzeRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	a := h.analyzer
	if req.hasOverrides() {
		a, err = h.analyzerFor(req)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
			return
		}
	}

	body := http.MaxBytesReader(w, r.Body, h.config.Server.MaxBodyBytes)
	analysis, err := a.Analyze(r.Context(), body)
	if err != nil {
		h.respondAnalyzeError(w, err)
		return
	}

	runID := logging.RequestIDFromContext(r.Context())
	published := a.Publish(r.Context(), runID, analysis.Findings)

	logging.Ctx(r.Context()).Info().
		Int("records", len(analysis.Parse.Records)).
		Int("invalid", analysis.Parse.InvalidLines()).
		Int("findings", len(analysis.Findings)).
		Msg("Analyzed request body")

	if req.Format == string(report.FormatText) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := a.Generator().WriteText(w, analysis.Parse.Records, analysis.Findings); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write text report")
		}
		return
	}

	resp := AnalyzeResponse{
		TotalLines: analysis.Parse.TotalLines,
		Records:    len(analysis.Parse.Records),
		Rejected:   analysis.Parse.Rejected,
		Summary:    report.Summarize(analysis.Parse.Records, analysis.Findings),
		Findings:   analysis.Findings,
		Published:  published,
	}
	if resp.Rejected == nil {
		resp.Rejected = []logparser.Rejection{}
	}
	if resp.Findings == nil {
		resp.Findings = []detection.Finding{}
	}
	respondSuccess(w, r, resp, start)
}

// analyzerFor builds a one-off analyzer with the request's overrides applied
// to the server configuration.
func (h *Handler) analyzerFor(req *AnalyzeRequest) (*analyzer.Analyzer, error) {
	cfg, err := req.apply(h.config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newAnalyzer(cfg, h.publisher)
}

func (h *Handler) respondAnalyzeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
			fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusRequestTimeout, ErrCodeRequestCanceled, "Request canceled", err)
	default:
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Failed to read log text", err)
	}
}
