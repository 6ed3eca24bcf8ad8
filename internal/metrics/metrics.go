// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Line parse results.
const (
	LineAccepted = "accepted"
	LineRejected = "rejected"
)

// Publish results.
const (
	PublishSuccess  = "success"
	PublishFailure  = "failure"
	PublishRejected = "circuit_open"
)

var (
	// Ingestion Metrics
	LogLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loganalyzer_log_lines_total",
			Help: "Total number of log lines read, by parse result",
		},
		[]string{"result"}, // "accepted", "rejected"
	)

	RecordsAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loganalyzer_records_analyzed_total",
			Help: "Total number of login records passed to the detection engine",
		},
	)

	// Detection Metrics
	FindingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loganalyzer_findings_total",
			Help: "Total number of suspicious-event findings, by kind",
		},
		[]string{"kind"},
	)

	DetectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loganalyzer_detection_duration_seconds",
			Help:    "Time spent in each detector",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"detector"},
	)

	AnalysisRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loganalyzer_analysis_runs_total",
			Help: "Total number of batch analysis runs, by outcome",
		},
		[]string{"outcome"}, // "success", "input_error", "report_error"
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loganalyzer_analysis_duration_seconds",
			Help:    "End-to-end duration of a batch analysis run",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Publishing Metrics
	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loganalyzer_publish_total",
			Help: "Total number of finding publish attempts, by result",
		},
		[]string{"result"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loganalyzer_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loganalyzer_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loganalyzer_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "loganalyzer_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loganalyzer_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordLine counts one input line by parse result.
func RecordLine(accepted bool) {
	if accepted {
		LogLinesTotal.WithLabelValues(LineAccepted).Inc()
		return
	}
	LogLinesTotal.WithLabelValues(LineRejected).Inc()
}

// RecordDetection records one detector pass.
func RecordDetection(detector string, findings int, duration time.Duration) {
	DetectionDuration.WithLabelValues(detector).Observe(duration.Seconds())
	FindingsTotal.WithLabelValues(detector).Add(float64(findings))
}

// RecordAnalysisRun records a batch run outcome and its duration.
func RecordAnalysisRun(outcome string, duration time.Duration) {
	AnalysisRuns.WithLabelValues(outcome).Inc()
	AnalysisDuration.Observe(duration.Seconds())
}

// RecordPublish counts a publish attempt.
func RecordPublish(result string) {
	PublishTotal.WithLabelValues(result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCircuitBreakerTransition updates the state gauge and counts the transition.
// States use the gobreaker numbering: 0=closed, 1=half-open, 2=open.
func RecordCircuitBreakerTransition(name, from, to string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// WriteTextfile dumps the default registry in the node_exporter textfile format.
// Batch runs use it because there is no scrape endpoint to serve from.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
