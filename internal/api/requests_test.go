// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/loganalyzer/internal/config"
)

func intPtr(v int) *int { return &v }

func TestParseAnalyzeRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		wantErr   bool
		threshold *int
		window    *int
		overrides bool
	}{
		{name: "empty", query: "", overrides: false},
		{name: "format only", query: "format=text", overrides: false},
		{name: "threshold", query: "threshold=3", threshold: intPtr(3), overrides: true},
		{name: "window", query: "window=15", window: intPtr(15), overrides: true},
		{name: "hours", query: "hours=9-17", overrides: true},
		{name: "timezone", query: "timezone=UTC", overrides: true},
		{name: "bad threshold", query: "threshold=lots", wantErr: true},
		{name: "bad window", query: "window=1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze?"+tt.query, nil)
			req, err := parseAnalyzeRequest(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAnalyzeRequest() error = %v", err)
			}
			if !equalIntPtr(req.Threshold, tt.threshold) {
				t.Errorf("Threshold = %v, want %v", req.Threshold, tt.threshold)
			}
			if !equalIntPtr(req.WindowMinutes, tt.window) {
				t.Errorf("WindowMinutes = %v, want %v", req.WindowMinutes, tt.window)
			}
			if got := req.hasOverrides(); got != tt.overrides {
				t.Errorf("hasOverrides() = %v, want %v", got, tt.overrides)
			}
		})
	}
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func TestAnalyzeRequest_Apply(t *testing.T) {
	t.Parallel()

	base := config.Default()
	req := &AnalyzeRequest{
		Threshold:     intPtr(2),
		WindowMinutes: intPtr(3),
		Hours:         "6-20",
		Timezone:      "Europe/Berlin",
	}

	got, err := req.apply(base)
	if err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	d := got.Detection
	if d.FailedLoginThreshold != 2 {
		t.Errorf("FailedLoginThreshold = %d, want 2", d.FailedLoginThreshold)
	}
	if d.TimeWindow != 3*time.Minute {
		t.Errorf("TimeWindow = %v, want 3m", d.TimeWindow)
	}
	if d.BusinessHourStart != 6 || d.BusinessHourEnd != 20 {
		t.Errorf("hours = %d-%d, want 6-20", d.BusinessHourStart, d.BusinessHourEnd)
	}
	if d.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q", d.Timezone)
	}

	// The base config is shared by every request and must stay untouched.
	if base.Detection.FailedLoginThreshold != 5 || base.Detection.Timezone != "" {
		t.Errorf("base config modified: %+v", base.Detection)
	}
}

func TestAnalyzeRequest_ApplyBadHours(t *testing.T) {
	t.Parallel()

	req := &AnalyzeRequest{Hours: "18-8"}
	if _, err := req.apply(config.Default()); !errors.Is(err, config.ErrInvalidHours) {
		t.Errorf("apply() error = %v, want ErrInvalidHours", err)
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     AnalyzeRequest
		wantErr bool
	}{
		{"empty", AnalyzeRequest{}, false},
		{"valid", AnalyzeRequest{Threshold: intPtr(1), WindowMinutes: intPtr(60), Timezone: "UTC", Format: "json"}, false},
		{"zero threshold", AnalyzeRequest{Threshold: intPtr(0)}, true},
		{"window too large", AnalyzeRequest{WindowMinutes: intPtr(10081)}, true},
		{"unknown timezone", AnalyzeRequest{Timezone: "Mars/Olympus"}, true},
		{"unknown format", AnalyzeRequest{Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			apiErr := validateRequest(&tt.req)
			if tt.wantErr {
				if apiErr == nil {
					t.Fatal("expected validation error")
				}
				if apiErr.Code != ErrCodeValidation {
					t.Errorf("Code = %q, want %q", apiErr.Code, ErrCodeValidation)
				}
				return
			}
			if apiErr != nil {
				t.Errorf("unexpected validation error: %+v", apiErr)
			}
		})
	}
}
