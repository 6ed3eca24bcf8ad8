// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use and shared. It names
// fields by their koanf (then json) tag, so errors for nested configuration
// read as "detection.time_window must be a whole number of minutes, at least 1m".
//
// Besides the built-in tags it registers:
//   - whole_minutes: a time.Duration of at least one minute with no sub-minute part
//
// Usage:
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
//	}
package validation
