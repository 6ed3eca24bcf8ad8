// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/loganalyzer/internal/config"
	"github.com/tomtom215/loganalyzer/internal/validation"
)

// AnalyzeRequest holds the optional query parameters of POST /api/v1/analyze.
// Nil or empty fields keep the server's configured value.
type AnalyzeRequest struct {
	Threshold     *int   `json:"threshold" validate:"omitempty,min=1"`
	WindowMinutes *int   `json:"window" validate:"omitempty,min=1,max=10080"`
	Hours         string `json:"hours"`
	Timezone      string `json:"timezone" validate:"omitempty,timezone"`
	Format        string `json:"format" validate:"omitempty,oneof=json text"`
}

// parseAnalyzeRequest reads the query string. Only type errors are reported
// here; ranges are checked by validateRequest.
func parseAnalyzeRequest(r *http.Request) (*AnalyzeRequest, error) {
	q := r.URL.Query()
	req := &AnalyzeRequest{
		Hours:    q.Get("hours"),
		Timezone: q.Get("timezone"),
		Format:   q.Get("format"),
	}

	var err error
	if req.Threshold, err = optionalInt(q.Get("threshold"), "threshold"); err != nil {
		return nil, err
	}
	if req.WindowMinutes, err = optionalInt(q.Get("window"), "window"); err != nil {
		return nil, err
	}
	return req, nil
}

func optionalInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return &v, nil
}

// hasOverrides reports whether the request changes any detection setting.
func (req *AnalyzeRequest) hasOverrides() bool {
	return req.Threshold != nil || req.WindowMinutes != nil || req.Hours != "" || req.Timezone != ""
}

// apply returns a copy of base with the request's detection overrides.
func (req *AnalyzeRequest) apply(base *config.Config) (*config.Config, error) {
	cfg := *base

	if req.Threshold != nil {
		cfg.Detection.FailedLoginThreshold = *req.Threshold
	}
	if req.WindowMinutes != nil {
		cfg.Detection.TimeWindow = time.Duration(*req.WindowMinutes) * time.Minute
	}
	if req.Hours != "" {
		start, end, err := config.ParseHours(req.Hours)
		if err != nil {
			return nil, err
		}
		cfg.Detection.BusinessHourStart = start
		cfg.Detection.BusinessHourEnd = end
	}
	if req.Timezone != "" {
		cfg.Detection.Timezone = req.Timezone
	}
	return &cfg, nil
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}
