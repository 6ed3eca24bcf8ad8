// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

// Package analyzer wires the parser, the detection engine, the report
// generator and the optional findings publisher into one batch run.
//
// A run reads the configured log file, writes the report and, when a
// publisher is attached, delivers every finding to it. Failures to open or
// read the input wrap ErrInputUnavailable; failures to render or persist the
// report wrap ErrReportWrite. Publishing is best effort.
package analyzer
