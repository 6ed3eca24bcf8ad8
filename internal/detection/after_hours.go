// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package detection

import "fmt"

// AfterHoursDetector flags every successful login whose hour of day, read in
// the configured location, falls outside [BusinessHourStart, BusinessHourEnd).
// Hour 18 with the default 8-18 range is after hours; 17:59 is not.
type AfterHoursDetector struct {
	config Config
}

// NewAfterHoursDetector creates an after-hours detector.
func NewAfterHoursDetector(config Config) *AfterHoursDetector {
	return &AfterHoursDetector{config: config}
}

// Kind implements Detector.
func (d *AfterHoursDetector) Kind() Kind {
	return KindAfterHoursLogin
}

// Detect implements Detector. Findings follow input order.
func (d *AfterHoursDetector) Detect(records []Record) []Finding {
	var findings []Finding
	loc := d.config.location()

	for _, r := range records {
		if r.Outcome != OutcomeSuccess {
			continue
		}
		hour := r.Timestamp.In(loc).Hour()
		if hour >= d.config.BusinessHourStart && hour < d.config.BusinessHourEnd {
			continue
		}

		findings = append(findings, Finding{
			Kind:        KindAfterHoursLogin,
			Username:    r.Username,
			Addresses:   []string{r.SourceAddress},
			WindowStart: r.Timestamp,
			WindowEnd:   r.Timestamp,
			Count:       1,
			Description: fmt.Sprintf("User '%s' logged in at hour %d (outside business hours: %d:00-%d:00)",
				r.Username, hour, d.config.BusinessHourStart, d.config.BusinessHourEnd),
		})
	}

	return findings
}

// DetectAfterHoursLogins runs the after-hours rule with the given config.
func DetectAfterHoursLogins(records []Record, config Config) []Finding {
	return NewAfterHoursDetector(config).Detect(records)
}
