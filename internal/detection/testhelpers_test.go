// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package detection

import (
	"time"
)

// base is 2026-01-18 10:00 UTC, inside default business hours.
var base = time.Date(2026, 1, 18, 10, 0, 0, 0, time.UTC)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	return cfg
}

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func atHour(hour, minute int) time.Time {
	return time.Date(2026, 1, 18, hour, minute, 0, 0, time.UTC)
}

func failed(user string, ts time.Time) Record {
	return Record{Timestamp: ts, Username: user, SourceAddress: "192.168.1.1", Outcome: OutcomeFailed}
}

func success(user, addr string, ts time.Time) Record {
	return Record{Timestamp: ts, Username: user, SourceAddress: addr, Outcome: OutcomeSuccess}
}

func failedAt(user string, offsets ...int) []Record {
	recs := make([]Record, 0, len(offsets))
	for _, off := range offsets {
		recs = append(recs, failed(user, at(off)))
	}
	return recs
}
