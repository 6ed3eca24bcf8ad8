// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package detection

import (
	"maps"
	"slices"
	"time"
)

// WindowUnit is the granularity of window comparisons. Distances are
// truncated to whole units before being compared with the window, so a
// gap of 10m59s still counts as "within 10 minutes".
const WindowUnit = time.Minute

// WithinWindow reports whether a and b are at most window apart, measured
// in whole minutes. The relation is symmetric and inclusive. Times more than
// about 292 years apart are never within a window.
func WithinWindow(a, b time.Time, window time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	if d < 0 {
		// Sub saturated at math.MinInt64, whose negation overflows.
		return false
	}
	return d.Truncate(WindowUnit) <= window
}

// userGroup is one user's records with a given outcome, oldest first.
type userGroup struct {
	username string
	records  []Record
}

// groupByUser copies records with the given outcome into per-user groups.
// Groups come back in username order and each group is stably sorted by
// timestamp, so equal timestamps keep input order. The input is not touched.
func groupByUser(records []Record, outcome Outcome) []userGroup {
	byUser := make(map[string][]Record)
	for _, r := range records {
		if r.Outcome == outcome {
			byUser[r.Username] = append(byUser[r.Username], r)
		}
	}

	groups := make([]userGroup, 0, len(byUser))
	for _, name := range slices.Sorted(maps.Keys(byUser)) {
		recs := byUser[name]
		slices.SortStableFunc(recs, func(a, b Record) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
		groups = append(groups, userGroup{username: name, records: recs})
	}
	return groups
}

// windowEnd returns the index of the last record within window of
// recs[anchor]. recs must be sorted; the scan stops at the first record
// outside the window since nothing after it can be closer.
func windowEnd(recs []Record, anchor int, window time.Duration) int {
	end := anchor
	for j := anchor + 1; j < len(recs); j++ {
		if !WithinWindow(recs[anchor].Timestamp, recs[j].Timestamp, window) {
			break
		}
		end = j
	}
	return end
}
