// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

/*
Package metrics provides Prometheus metrics collection and export.

All collectors are registered on the default registry through promauto, so
importing the package is enough to expose them at /metrics in serve mode.
Batch runs have no scrape endpoint; they can dump the registry to a file in
the node_exporter textfile format with WriteTextfile.

# Available Metrics

Ingestion:
  - loganalyzer_log_lines_total{result}: lines read, accepted or rejected
  - loganalyzer_records_analyzed_total: records handed to the engine

Detection:
  - loganalyzer_findings_total{kind}: findings per detector
  - loganalyzer_detection_duration_seconds{detector}: time per detector pass
  - loganalyzer_analysis_runs_total{outcome}: batch runs by outcome
  - loganalyzer_analysis_duration_seconds: end-to-end batch duration

Publishing:
  - loganalyzer_publish_total{result}: success, failure or circuit_open
  - loganalyzer_circuit_breaker_state{name}
  - loganalyzer_circuit_breaker_transitions_total{name,from,to}

HTTP API:
  - loganalyzer_api_requests_total{method,endpoint,status_code}
  - loganalyzer_api_request_duration_seconds{method,endpoint}
  - loganalyzer_api_active_requests

# Usage

	start := time.Now()
	findings := detector.Detect(records)
	metrics.RecordDetection("FAILED_LOGIN_CLUSTER", len(findings), time.Since(start))
*/
package metrics
