// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

// Package logparser turns authentication log text into detection records.
//
// Each line has four pipe-separated fields:
//
//	2026-01-18 10:00:00 | alice | 192.168.1.10 | FAILED
//
// Fields are trimmed. A line with a missing or empty field, or with a
// timestamp that does not match "YYYY-MM-DD HH:MM:SS", is rejected; the
// batch keeps going. Status is case-insensitive, and values other than
// SUCCESS and FAILED become UNKNOWN rather than rejecting the line.
// Timestamps carry no zone and are read in the location given to the parser.
package logparser
