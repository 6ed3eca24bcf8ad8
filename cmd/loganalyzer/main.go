// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

// Package main is the log-analyzer command.
//
// log-analyzer reads an authentication log, runs the suspicious-login
// detectors over it and writes a security report.
//
// # Modes
//
// analyze (default) runs once over --input and writes --output:
//
//	log-analyzer --input auth.log --output security_report.txt
//	log-analyzer --threshold 3 --window 5 --hours 9-17
//
// serve runs an HTTP API that analyzes log text posted to /api/v1/analyze:
//
//	log-analyzer serve --port 9090
//
// # Configuration
//
// Settings are layered, highest priority last:
//   - Built-in defaults
//   - Config file (--config, CONFIG_PATH, config.yaml, /etc/log-analyzer/config.yaml)
//   - Environment variables (LOG_ANALYZER_THRESHOLD, NATS_URL, HTTP_PORT, ...)
//   - Command-line flags
//
// # Exit Codes
//
//	0  success, or --help
//	1  invalid arguments or configuration
//	2  input log cannot be opened or read
//	3  report cannot be written
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // timezone names must resolve on hosts without zoneinfo

	"github.com/tomtom215/loganalyzer/internal/config"
	"github.com/tomtom215/loganalyzer/internal/logging"
)

// Exit codes.
const (
	exitOK          = 0
	exitUsage       = 1
	exitInputError  = 2
	exitReportError = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Use --help for usage information.")
		return exitUsage
	}
	if opts.help {
		printUsage(stdout)
		return exitOK
	}

	cfg, err := config.LoadWithKoanf(config.LoadOptions{
		Path:      opts.configPath,
		Overrides: opts.overrides,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: Invalid configuration values: %v\n", err)
		fmt.Fprintln(stderr, "Use --help for usage information.")
		return exitUsage
	}

	logging.Init(cfg.Logging.LoggerConfig())

	if opts.mode == modeServe {
		return runServe(ctx, cfg, stderr)
	}
	return runAnalyze(ctx, cfg, stdout, stderr)
}
