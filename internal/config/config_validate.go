// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/tomtom215/loganalyzer/internal/validation"
)

// Validate checks every setting. Struct tags cover ranges and enums; the
// checks below cover what tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if verr := validation.ValidateStruct(c); verr != nil {
		errs = append(errs, verr)
	}
	if err := c.validatePublish(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validatePublish requires a usable NATS URL only when publishing is on.
func (c *Config) validatePublish() error {
	if !c.Publish.Enabled {
		return nil
	}
	if c.Publish.URL == "" {
		return fmt.Errorf("publish.url is required when publishing is enabled (NATS_URL)")
	}

	u, err := url.Parse(c.Publish.URL)
	if err != nil {
		return fmt.Errorf("publish.url is invalid: %w", err)
	}
	switch u.Scheme {
	case "nats", "tls", "ws", "wss":
		return nil
	default:
		return fmt.Errorf("publish.url must use nats://, tls://, ws:// or wss://, got %q", u.Scheme)
	}
}
