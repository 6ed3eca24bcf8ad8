// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/tomtom215/loganalyzer/internal/config"
)

// Subcommands.
const (
	modeAnalyze = "analyze"
	modeServe   = "serve"
)

// options is the parsed command line.
type options struct {
	mode       string
	configPath string
	help       bool

	// overrides holds only the flags the user actually set, keyed by koanf path.
	overrides map[string]interface{}
}

// flagValues receives raw flag values before they are mapped to overrides.
type flagValues struct {
	input     string
	output    string
	threshold int
	window    int
	hours     string
	timezone  string
	format    string
	logLevel  string
	publish   bool
	port      int
}

// flagPaths maps each flag name, long and short, to the koanf path it sets.
// hours is absent: it expands to two paths.
var flagPaths = map[string]string{
	"input":     "input.path",
	"i":         "input.path",
	"output":    "report.path",
	"o":         "report.path",
	"threshold": "detection.failed_login_threshold",
	"t":         "detection.failed_login_threshold",
	"window":    "detection.time_window",
	"w":         "detection.time_window",
	"timezone":  "detection.timezone",
	"format":    "report.format",
	"log-level": "logging.level",
	"publish":   "publish.enabled",
	"port":      "server.port",
}

// parseArgs parses args (without the program name). A leading "analyze" or
// "serve" selects the mode; analyze is the default.
func parseArgs(args []string) (*options, error) {
	opts := &options{mode: modeAnalyze, overrides: map[string]interface{}{}}
	if len(args) > 0 && (args[0] == modeAnalyze || args[0] == modeServe) {
		opts.mode = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("log-analyzer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var v flagValues
	fs.StringVar(&v.input, "input", "", "path to input log file")
	fs.StringVar(&v.input, "i", "", "path to input log file")
	fs.StringVar(&v.output, "output", "", "path to output report file")
	fs.StringVar(&v.output, "o", "", "path to output report file")
	fs.IntVar(&v.threshold, "threshold", 0, "failed login threshold")
	fs.IntVar(&v.threshold, "t", 0, "failed login threshold")
	fs.IntVar(&v.window, "window", 0, "time window in minutes")
	fs.IntVar(&v.window, "w", 0, "time window in minutes")
	fs.StringVar(&v.hours, "hours", "", "business hours as start-end")
	fs.StringVar(&v.timezone, "timezone", "", "IANA timezone of the log timestamps")
	fs.StringVar(&v.format, "format", "", "report format: text or json")
	fs.StringVar(&v.logLevel, "log-level", "", "log level")
	fs.BoolVar(&v.publish, "publish", false, "publish findings to NATS")
	fs.StringVar(&opts.configPath, "config", "", "path to YAML config file")
	if opts.mode == modeServe {
		fs.IntVar(&v.port, "port", 0, "HTTP listen port")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.help = true
			return opts, nil
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unknown argument '%s'", fs.Arg(0))
	}

	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "hours" {
			start, end, err := config.ParseHours(v.hours)
			if err != nil {
				visitErr = err
				return
			}
			opts.overrides["detection.business_hour_start"] = start
			opts.overrides["detection.business_hour_end"] = end
			return
		}

		path, ok := flagPaths[f.Name]
		if !ok {
			return
		}
		opts.overrides[path] = v.value(f.Name)
	})
	if visitErr != nil {
		return nil, visitErr
	}

	return opts, nil
}

// value returns the typed value of a flag for the override map.
func (v *flagValues) value(name string) interface{} {
	switch name {
	case "input", "i":
		return v.input
	case "output", "o":
		return v.output
	case "threshold", "t":
		return v.threshold
	case "window", "w":
		return v.window // bare minutes, normalized by the config loader
	case "timezone":
		return v.timezone
	case "format":
		return v.format
	case "log-level":
		return v.logLevel
	case "publish":
		return v.publish
	case "port":
		return v.port
	default:
		return nil
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Log Analyzer - Suspicious Event Detection
==========================================

Usage: log-analyzer [analyze] [OPTIONS]
       log-analyzer serve [--port <n>] [OPTIONS]

Options:
  --input, -i <path>        Path to input log file
                            Default: logs/sample.log

  --output, -o <path>       Path to output report file
                            Default: reports/report.txt

  --threshold, -t <number>  Failed login threshold
                            Default: 5

  --window, -w <minutes>    Time window for event clustering
                            Default: 10

  --hours <start-end>       Business hours (e.g., 9-17)
                            Default: 8-18

  --timezone <zone>         IANA timezone of log timestamps
                            Default: local time

  --format <text|json>      Report format
                            Default: text

  --config <path>           YAML configuration file
  --publish                 Publish findings to NATS (see NATS_URL)
  --log-level <level>       debug, info, warn, error
  --port <n>                HTTP port (serve only)
                            Default: 8080

  --help, -h                Display this help message

Examples:
  log-analyzer --input auth.log --output security_report.txt
  log-analyzer --threshold 3 --window 5 --hours 9-17
  log-analyzer serve --port 9090
  log-analyzer --help
`)
}
