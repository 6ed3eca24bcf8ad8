// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package services

import (
	"context"
	"io"

	"github.com/tomtom215/loganalyzer/internal/logging"
)

// CloserService ties a resource's lifetime to the supervisor: it idles until
// the tree shuts down, then closes the resource. Serve mode uses it for the
// findings publisher so its NATS connection is drained on exit.
type CloserService struct {
	closer io.Closer
	name   string
}

// NewCloserService wraps c under the given service name.
func NewCloserService(name string, c io.Closer) *CloserService {
	return &CloserService{closer: c, name: name}
}

// Serve implements suture.Service.
func (s *CloserService) Serve(ctx context.Context) error {
	<-ctx.Done()

	if err := s.closer.Close(); err != nil {
		logging.Warn().Err(err).Str("service", s.name).Msg("Close failed during shutdown")
	}
	return ctx.Err()
}

// String identifies the service in supervisor logs.
func (s *CloserService) String() string {
	return s.name
}
