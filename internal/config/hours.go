// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidHours is returned by ParseHours for any malformed range.
var ErrInvalidHours = errors.New("invalid business hours format (use: start-end)")

// ParseHours parses a business-hours range such as "9-17". Both hours must be
// in 0..23 and start must be before end.
func ParseHours(s string) (start, end int, err error) {
	before, after, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHours, s)
	}

	start, err = strconv.Atoi(strings.TrimSpace(before))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: start hour %q is not a number", ErrInvalidHours, before)
	}
	end, err = strconv.Atoi(strings.TrimSpace(after))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: end hour %q is not a number", ErrInvalidHours, after)
	}

	if start < 0 || start > 23 || end < 0 || end > 23 {
		return 0, 0, fmt.Errorf("%w: hours must be between 0 and 23", ErrInvalidHours)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%w: start hour must be before end hour", ErrInvalidHours)
	}
	return start, end, nil
}
