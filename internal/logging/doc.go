// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

// Package logging provides the zerolog-based structured logger shared by
// every other package.
//
// A global logger is configured once from main with Init and used through
// the package-level helpers:
//
//	logging.Init(logging.Config{Level: "debug", Format: "json"})
//	logging.Info().Str("input", path).Msg("Reading log file")
//	logging.Err(err).Msg("Report write failed")
//
// Each batch run gets a run ID, carried in the context and attached by Ctx:
//
//	ctx = logging.ContextWithRunID(ctx, logging.NewRunID())
//	logging.Ctx(ctx).Info().Int("findings", n).Msg("Analysis complete")
//
// Libraries that only accept *slog.Logger are pointed at the same stream
// through NewSlogLogger.
//
// # Configuration
//
// Environment variables (read by the config package):
//   - LOG_LEVEL: trace, debug, info, warn, error, disabled (default: info)
//   - LOG_FORMAT: json, console (default: console)
//   - LOG_CALLER: true/false (default: false)
//
// Log output goes to stderr; stdout carries the run summary.
package logging
