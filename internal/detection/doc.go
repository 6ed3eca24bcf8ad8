// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

// Package detection implements the suspicious-login rules.
//
// Detection Architecture:
//
//	[]Record -> Engine -> FailedLoginDetector  --+
//	                   -> AfterHoursDetector   --+--> []Finding (fixed order)
//	                   -> MultiAddressDetector --+
//
// Supported Detection Rules:
//   - Failed Login Cluster: at least FailedLoginThreshold failed attempts by
//     one user inside one TimeWindow (brute force, credential stuffing)
//   - After Hours Login: a successful login outside the business-hour range
//   - Multi Address Cluster: one user succeeding from two or more addresses
//     inside one TimeWindow (credential sharing, session hijack)
//
// The clustering rules group records by username, sort each group by time
// and scan it with an anchor. A window is every record whose distance from
// the anchor, truncated to whole minutes, is at most TimeWindow. When a
// window produces a finding the anchor skips past it, so a single burst is
// reported once. Users are visited in lexicographic order, which makes the
// output deterministic for a given input.
//
// Detectors never modify their input and never fail. Configuration range
// checks belong to the caller (see the config package).
package detection
