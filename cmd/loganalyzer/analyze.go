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

	"github.com/tomtom215/loganalyzer/internal/analyzer"
	"github.com/tomtom215/loganalyzer/internal/config"
	"github.com/tomtom215/loganalyzer/internal/logging"
	"github.com/tomtom215/loganalyzer/internal/publisher"
)

// runAnalyze performs one batch run and prints the console summary.
func runAnalyze(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) int {
	printBanner(stdout, cfg)

	var opts []analyzer.Option
	if cfg.Publish.Enabled {
		pub, err := publisher.NewNATSPublisher(cfg.Publish, nil)
		if err != nil {
			logging.Warn().Err(err).Msg("Publishing disabled for this run")
		} else {
			defer func() {
				if err := pub.Close(); err != nil {
					logging.Warn().Err(err).Msg("Failed to close publisher")
				}
			}()
			opts = append(opts, analyzer.WithPublisher(pub))
		}
	}

	a, err := analyzer.New(cfg, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	fmt.Fprintln(stdout, "Loading log file...")
	res, err := a.Run(ctx)
	switch {
	case errors.Is(err, analyzer.ErrInputUnavailable):
		fmt.Fprintf(stderr, "Error: Cannot open log file '%s'\n", cfg.Input.Path)
		fmt.Fprintln(stderr, "Please check that the file exists and is readable.")
		return exitInputError
	case errors.Is(err, analyzer.ErrReportWrite):
		printLoadSummary(stdout, res)
		fmt.Fprintf(stderr, "Error: Failed to write report to '%s'\n", cfg.Report.Path)
		fmt.Fprintln(stderr, "Please check that the directory exists and is writable.")
		return exitReportError
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	printLoadSummary(stdout, res)
	fmt.Fprintln(stdout, "Report generated successfully.")
	fmt.Fprintf(stdout, "Output saved to: %s\n\n", res.ReportPath)
	printConclusion(stdout, res)
	return exitOK
}

func printBanner(w io.Writer, cfg *config.Config) {
	d := cfg.Detection
	fmt.Fprintln(w, "Log Analyzer - Suspicious Event Detection")
	fmt.Fprintln(w, "==========================================")
	fmt.Fprintf(w, "Input file: %s\n", cfg.Input.Path)
	fmt.Fprintf(w, "Output file: %s\n", cfg.Report.Path)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  - Failed login threshold: %d\n", d.FailedLoginThreshold)
	fmt.Fprintf(w, "  - Time window: %d minutes\n", int(d.TimeWindow.Minutes()))
	fmt.Fprintf(w, "  - Business hours: %d:00 - %d:00\n", d.BusinessHourStart, d.BusinessHourEnd)
	if d.Timezone != "" {
		fmt.Fprintf(w, "  - Timezone: %s\n", d.Timezone)
	}
	fmt.Fprintln(w)
}

func printLoadSummary(w io.Writer, res *analyzer.Result) {
	if res == nil {
		return
	}
	fmt.Fprintln(w, "Log file loaded successfully.")
	fmt.Fprintf(w, "  - Total lines processed: %d\n", res.TotalLines)
	fmt.Fprintf(w, "  - Valid entries: %d\n", res.ValidRecords)
	fmt.Fprintf(w, "  - Invalid entries: %d\n\n", res.InvalidLines)

	if res.ValidRecords == 0 {
		fmt.Fprintln(w, "Warning: No valid log entries found.")
		fmt.Fprintln(w, "Generating empty report...")
		return
	}

	fmt.Fprintln(w, "Running detection algorithms...")
	fmt.Fprintln(w, "Detection complete.")
	fmt.Fprintf(w, "  - Suspicious events detected: %d\n", len(res.Findings))
	if res.Published > 0 {
		fmt.Fprintf(w, "  - Findings published: %d\n", res.Published)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generating security report...")
}

func printConclusion(w io.Writer, res *analyzer.Result) {
	fmt.Fprintln(w, "==========================================")
	fmt.Fprintln(w, "Analysis Complete")
	fmt.Fprintln(w, "==========================================")

	if len(res.Findings) == 0 {
		fmt.Fprintln(w, "No security issues detected.")
		fmt.Fprintln(w, "All login activity appears normal.")
		return
	}
	fmt.Fprintf(w, "WARNING: %d suspicious event(s) detected!\n", len(res.Findings))
	fmt.Fprintln(w, "Please review the generated report for details.")
}
