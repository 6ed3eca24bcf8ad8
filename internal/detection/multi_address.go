// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package detection

import (
	"fmt"
	"slices"
)

// MultiAddressDetector flags a user who logs in successfully from two or
// more distinct source addresses inside one window. It scans like
// FailedLoginDetector but collects the set of addresses rather than a
// record count, and the finding's Count is the number of distinct addresses.
type MultiAddressDetector struct {
	config Config
}

// NewMultiAddressDetector creates a multi-address detector.
func NewMultiAddressDetector(config Config) *MultiAddressDetector {
	return &MultiAddressDetector{config: config}
}

// Kind implements Detector.
func (d *MultiAddressDetector) Kind() Kind {
	return KindMultiAddressCluster
}

// Detect implements Detector.
func (d *MultiAddressDetector) Detect(records []Record) []Finding {
	var findings []Finding

	for _, g := range groupByUser(records, OutcomeSuccess) {
		recs := g.records
		for i := 0; i < len(recs); {
			end := windowEnd(recs, i, d.config.TimeWindow)
			addrs := distinctAddresses(recs[i : end+1])
			if len(addrs) < 2 {
				i++
				continue
			}

			findings = append(findings, Finding{
				Kind:        KindMultiAddressCluster,
				Username:    g.username,
				Addresses:   addrs,
				WindowStart: recs[i].Timestamp,
				WindowEnd:   recs[end].Timestamp,
				Count:       len(addrs),
				Description: fmt.Sprintf("User '%s' logged in from %d different IP addresses within %d minutes",
					g.username, len(addrs), d.config.windowMinutes()),
			})
			i = end + 1
		}
	}

	return findings
}

// distinctAddresses returns the sorted set of source addresses in recs.
func distinctAddresses(recs []Record) []string {
	addrs := make([]string, 0, len(recs))
	for _, r := range recs {
		addrs = append(addrs, r.SourceAddress)
	}
	slices.Sort(addrs)
	return slices.Compact(addrs)
}

// DetectMultiAddressClusters runs the multi-address rule with the given config.
func DetectMultiAddressClusters(records []Record, config Config) []Finding {
	return NewMultiAddressDetector(config).Detect(records)
}
