// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomtom215/loganalyzer/internal/analyzer"
	"github.com/tomtom215/loganalyzer/internal/api"
	"github.com/tomtom215/loganalyzer/internal/config"
	"github.com/tomtom215/loganalyzer/internal/logging"
	"github.com/tomtom215/loganalyzer/internal/publisher"
	"github.com/tomtom215/loganalyzer/internal/supervisor"
	"github.com/tomtom215/loganalyzer/internal/supervisor/services"
)

// runServe runs the HTTP API under the supervisor tree until ctx is canceled.
func runServe(ctx context.Context, cfg *config.Config, stderr io.Writer) int {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	// A nil *publisher.Publisher must not become a non-nil interface.
	var pub analyzer.FindingPublisher
	if cfg.Publish.Enabled {
		p, err := publisher.NewNATSPublisher(cfg.Publish, nil)
		if err != nil {
			logging.Warn().Err(err).Msg("Publishing disabled")
		} else {
			pub = p
			tree.AddMessagingService(services.NewCloserService("findings-publisher", p))
		}
	}

	handler, err := api.NewHandler(cfg, pub)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.MiddlewareConfigFromServer(cfg.Server)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Bool("publish", pub != nil).Msg("Starting log analyzer API")

	exit := exitOK
	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
		exit = exitUsage
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Log analyzer API stopped")
	return exit
}
