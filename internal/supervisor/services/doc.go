// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

// Package services adapts serve-mode components to suture.Service.
//
// HTTPServerService translates http.Server's blocking ListenAndServe into a
// context-aware Serve with graceful shutdown. CloserService keeps a resource
// such as the findings publisher open for the life of the tree and closes it
// on shutdown.
package services
