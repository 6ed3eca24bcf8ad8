// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

/*
Package api serves the analyzer over HTTP in serve mode.

Routes:

	POST /api/v1/analyze   analyze raw log text from the request body
	GET  /health           liveness and engine counters
	GET  /metrics          Prometheus exposition

The analyze endpoint accepts the same log format as batch mode, one record per
line. Query parameters threshold, window, hours and timezone override the
configured detection settings for one request; format=text returns the
plain-text report.

JSON responses share one envelope:

	{"status":"success","data":{...},"metadata":{"timestamp":"..."}}
	{"status":"error","data":null,"metadata":{...},"error":{"code":"...","message":"..."}}

Requests under /api/v1 are rate limited per client IP with go-chi/httprate and
counted in Prometheus. CORS is handled globally by go-chi/cors.
*/
package api
