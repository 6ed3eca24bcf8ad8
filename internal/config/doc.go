// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

/*
Package config loads and validates the analyzer configuration.

# Configuration Sources

Sources are layered with koanf, lowest priority first:
  - Built-in defaults (defaultConfig)
  - A YAML file: --config, then CONFIG_PATH, then config.yaml, config.yml,
    /etc/log-analyzer/config.yaml
  - Environment variables, through an explicit mapping table
  - Command-line flag overrides passed in LoadOptions.Overrides

# Environment Variables

Detection:
  - LOG_ANALYZER_THRESHOLD: failed attempts that make a cluster (default: 5)
  - LOG_ANALYZER_WINDOW: clustering window, "15m" or bare minutes "15" (default: 10m)
  - LOG_ANALYZER_HOURS_START / LOG_ANALYZER_HOURS_END: business hours (default: 8 / 18)
  - LOG_ANALYZER_TIMEZONE: IANA zone for hour-of-day checks (default: process zone)

Files:
  - LOG_ANALYZER_INPUT: log file to analyze (default: logs/sample.log)
  - LOG_ANALYZER_OUTPUT: report destination (default: reports/report.txt)
  - LOG_ANALYZER_REPORT_FORMAT: text or json (default: text)
  - METRICS_TEXTFILE: write Prometheus metrics here after a batch run

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Publishing:
  - PUBLISH_ENABLED, NATS_URL, PUBLISH_SUBJECT_PREFIX

HTTP server (serve mode):
  - HTTP_HOST, HTTP_PORT, CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS

# Validation

Validate runs the struct tags through the validation package and then the
cross-field checks that tags cannot express. All problems are reported in
one error.
*/
package config
