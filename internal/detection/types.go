// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package detection

import (
	"strings"
	"time"
)

// Outcome is the result of a single authentication attempt.
type Outcome string

const (
	// OutcomeSuccess marks a successful login.
	OutcomeSuccess Outcome = "SUCCESS"

	// OutcomeFailed marks a rejected login.
	OutcomeFailed Outcome = "FAILED"

	// OutcomeUnknown marks an attempt whose status could not be classified.
	// No detector treats it as either success or failure.
	OutcomeUnknown Outcome = "UNKNOWN"
)

// ParseOutcome maps a status string to an Outcome, case-insensitively.
// Anything other than SUCCESS or FAILED becomes OutcomeUnknown.
func ParseOutcome(s string) Outcome {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(OutcomeSuccess):
		return OutcomeSuccess
	case string(OutcomeFailed):
		return OutcomeFailed
	default:
		return OutcomeUnknown
	}
}

// Record is one login event. Records are treated as immutable values:
// no detector modifies the slice it is given or the records in it.
type Record struct {
	Timestamp     time.Time `json:"timestamp"`
	Username      string    `json:"username"`
	SourceAddress string    `json:"source_address"`
	Outcome       Outcome   `json:"outcome"`
}

// Kind identifies the rule that produced a finding.
type Kind string

const (
	// KindFailedLoginCluster flags bursts of failed logins for one user.
	KindFailedLoginCluster Kind = "FAILED_LOGIN_CLUSTER"

	// KindAfterHoursLogin flags a successful login outside business hours.
	KindAfterHoursLogin Kind = "AFTER_HOURS_LOGIN"

	// KindMultiAddressCluster flags one user logging in from several addresses in one window.
	KindMultiAddressCluster Kind = "MULTI_ADDRESS_CLUSTER"
)

// Title returns the human-readable heading used in reports.
func (k Kind) Title() string {
	switch k {
	case KindFailedLoginCluster:
		return "Multiple Failed Login Attempts"
	case KindAfterHoursLogin:
		return "Login Outside Business Hours"
	case KindMultiAddressCluster:
		return "Multiple IP Addresses"
	default:
		return "Unknown Event Type"
	}
}

// Finding is a suspicious-event record produced by a detector.
type Finding struct {
	Kind     Kind   `json:"kind"`
	Username string `json:"username"`

	// Addresses holds one address for failed-login and after-hours findings,
	// and the sorted set of distinct addresses for multi-address findings.
	Addresses []string `json:"addresses"`

	// WindowStart and WindowEnd are inclusive; equal for single-event findings.
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	// Count is the number of contributing records, or the number of distinct
	// addresses for multi-address findings.
	Count int `json:"count"`

	Description string `json:"description"`
}

// Config holds the detection thresholds. It is owned by the caller and
// only read by the engine; range checks happen before it reaches here.
type Config struct {
	// FailedLoginThreshold is the minimum cluster size that triggers a finding.
	FailedLoginThreshold int `json:"failed_login_threshold"`

	// TimeWindow is the clustering window. Distances are truncated to whole
	// minutes before being compared against it.
	TimeWindow time.Duration `json:"time_window"`

	// BusinessHourStart and BusinessHourEnd bound the half-open interval
	// [start, end) of local hours considered normal.
	BusinessHourStart int `json:"business_hour_start"`
	BusinessHourEnd   int `json:"business_hour_end"`

	// Location is the zone used to read the hour of day. Nil means time.Local.
	Location *time.Location `json:"-"`
}

// DefaultConfig returns the stock thresholds: 5 failures, 10 minutes, 8:00-18:00.
func DefaultConfig() Config {
	return Config{
		FailedLoginThreshold: 5,
		TimeWindow:           10 * time.Minute,
		BusinessHourStart:    8,
		BusinessHourEnd:      18,
		Location:             time.Local,
	}
}

// location returns the configured zone, falling back to the process zone.
func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// windowMinutes is the window rendered in whole minutes for descriptions.
func (c Config) windowMinutes() int {
	return int(c.TimeWindow / time.Minute)
}

// Detector is implemented by each detection rule.
type Detector interface {
	// Kind returns the finding kind this detector emits.
	Kind() Kind

	// Detect scans the records and returns findings in scan order.
	// Implementations must not modify records.
	Detect(records []Record) []Finding
}
