// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

// Package report renders analysis results as a human-readable security
// report or as JSON, and persists them to disk.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/loganalyzer/internal/detection"
)

// TimestampLayout is used for every timestamp printed in a text report.
const TimestampLayout = "2006-01-02 15:04:05"

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text or json)", s)
	}
}

// Summary holds the counts shown at the top of a report.
type Summary struct {
	TotalEntries     int `json:"total_entries"`
	SuccessfulLogins int `json:"successful_logins"`
	FailedLogins     int `json:"failed_logins"`
	SuspiciousEvents int `json:"suspicious_events"`
}

// Summarize counts records by outcome. Unknown outcomes count toward the
// total only.
func Summarize(records []detection.Record, findings []detection.Finding) Summary {
	s := Summary{TotalEntries: len(records), SuspiciousEvents: len(findings)}
	for _, r := range records {
		switch r.Outcome {
		case detection.OutcomeSuccess:
			s.SuccessfulLogins++
		case detection.OutcomeFailed:
			s.FailedLogins++
		}
	}
	return s
}

// Generator renders reports.
type Generator struct {
	// Now supplies the generation time. Defaults to time.Now.
	Now func() time.Time

	// Location is used for printed timestamps. Defaults to time.Local.
	Location *time.Location
}

// NewGenerator creates a generator printing timestamps in loc.
func NewGenerator(loc *time.Location) *Generator {
	return &Generator{Now: time.Now, Location: loc}
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Generator) location() *time.Location {
	if g.Location == nil {
		return time.Local
	}
	return g.Location
}

func (g *Generator) formatTime(t time.Time) string {
	return t.In(g.location()).Format(TimestampLayout)
}

// Write renders the report in the requested format.
func (g *Generator) Write(w io.Writer, records []detection.Record, findings []detection.Finding, format Format) error {
	switch format {
	case FormatText:
		return g.WriteText(w, records, findings)
	case FormatJSON:
		return g.WriteJSON(w, records, findings)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
