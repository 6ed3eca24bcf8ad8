// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package detection

import "fmt"

// FailedLoginDetector flags bursts of failed logins for a single user.
//
// For each user the failed attempts are sorted by time and scanned with an
// anchor. When the anchor's window holds at least FailedLoginThreshold
// records, one finding covering the whole window is emitted and the anchor
// jumps past the last record in it, so one burst yields one finding.
// Otherwise the anchor moves forward by one.
type FailedLoginDetector struct {
	config Config
}

// NewFailedLoginDetector creates a failed-login detector.
func NewFailedLoginDetector(config Config) *FailedLoginDetector {
	return &FailedLoginDetector{config: config}
}

// Kind implements Detector.
func (d *FailedLoginDetector) Kind() Kind {
	return KindFailedLoginCluster
}

// Detect implements Detector.
func (d *FailedLoginDetector) Detect(records []Record) []Finding {
	var findings []Finding

	for _, g := range groupByUser(records, OutcomeFailed) {
		recs := g.records
		for i := 0; i < len(recs); {
			end := windowEnd(recs, i, d.config.TimeWindow)
			count := end - i + 1
			if count < d.config.FailedLoginThreshold {
				i++
				continue
			}

			findings = append(findings, Finding{
				Kind:        KindFailedLoginCluster,
				Username:    g.username,
				Addresses:   []string{recs[i].SourceAddress},
				WindowStart: recs[i].Timestamp,
				WindowEnd:   recs[end].Timestamp,
				Count:       count,
				Description: fmt.Sprintf("User '%s' had %d failed login attempts within %d minutes",
					g.username, count, d.config.windowMinutes()),
			})
			i = end + 1
		}
	}

	return findings
}

// DetectFailedLoginClusters runs the failed-login rule with the given config.
func DetectFailedLoginClusters(records []Record, config Config) []Finding {
	return NewFailedLoginDetector(config).Detect(records)
}
