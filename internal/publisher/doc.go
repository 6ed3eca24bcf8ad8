// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

/*
Package publisher delivers detection findings to a message broker.

Each finding becomes one Watermill message whose payload is the JSON Event and
whose metadata carries the finding kind, the username and the analysis run ID.
Messages go to "<subject_prefix>.<kind>", for example
"loganalyzer.findings.failed_login_cluster".

NewNATSPublisher connects to NATS through watermill-nats. New accepts any
Watermill publisher, which is how the in-memory gochannel transport is used in
tests.

Publishing is wrapped in a gobreaker circuit breaker so that an unreachable
broker fails fast, and throttled by a token bucket limiter.
*/
package publisher
