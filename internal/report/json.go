// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package report

import (
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/loganalyzer/internal/detection"
)

// Document is the JSON report body.
type Document struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Summary     Summary             `json:"summary"`
	Findings    []detection.Finding `json:"findings"`
}

// NewDocument builds the JSON report body. Findings is never null.
func (g *Generator) NewDocument(records []detection.Record, findings []detection.Finding) Document {
	if findings == nil {
		findings = []detection.Finding{}
	}
	return Document{
		GeneratedAt: g.now().In(g.location()),
		Summary:     Summarize(records, findings),
		Findings:    findings,
	}
}

// WriteJSON renders the report as indented JSON.
func (g *Generator) WriteJSON(w io.Writer, records []detection.Record, findings []detection.Finding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g.NewDocument(records, findings))
}
