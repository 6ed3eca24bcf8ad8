// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/log-analyzer/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file, env vars and flags.
func defaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			FailedLoginThreshold: 5,
			TimeWindow:           10 * time.Minute,
			BusinessHourStart:    8,
			BusinessHourEnd:      18,
			Timezone:             "",
			Concurrent:           true,
		},
		Input: InputConfig{
			Path: "logs/sample.log",
		},
		Report: ReportConfig{
			Path:   "reports/report.txt",
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Publish: PublishConfig{
			Enabled:                 false,
			URL:                     "nats://127.0.0.1:4222",
			SubjectPrefix:           "loganalyzer.findings",
			RatePerSecond:           50,
			BreakerFailureThreshold: 5,
			BreakerTimeout:          30 * time.Second,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxBodyBytes:      10 << 20,
			RateLimitRequests: 60,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
	}
}

// Default returns the built-in configuration without reading any source.
func Default() *Config {
	return defaultConfig()
}

// LoadOptions controls LoadWithKoanf.
type LoadOptions struct {
	// Path is an explicit config file. Unlike the search paths, it must exist.
	Path string

	// Overrides are applied last, keyed by koanf path
	// (e.g. "detection.failed_login_threshold").
	Overrides map[string]interface{}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
// defaults, config file, environment variables, then overrides.
func LoadWithKoanf(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional unless named explicitly)
	configPath, err := findConfigFile(opts.Path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 4: command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := normalizeWindow(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the config file to load, or "" when none exists.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated strings coming from the
// environment into slices. Values from YAML are already slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// normalizeWindow lets detection.time_window be given as bare minutes
// ("15" or 15) in addition to a Go duration string ("15m").
func normalizeWindow(k *koanf.Koanf) error {
	const path = "detection.time_window"

	var minutes int
	switch v := k.Get(path).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil // let the duration decode hook handle "15m"
		}
		minutes = n
	case int:
		minutes = v
	case float64:
		if v != math.Trunc(v) {
			return fmt.Errorf("%s must be a whole number of minutes, got %v", path, v)
		}
		minutes = int(v)
	default:
		// time.Duration from defaults or overrides
		return nil
	}

	if err := k.Set(path, time.Duration(minutes)*time.Minute); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak in.
var envMappings = map[string]string{
	// Detection
	"log_analyzer_threshold":   "detection.failed_login_threshold",
	"log_analyzer_window":      "detection.time_window",
	"log_analyzer_hours_start": "detection.business_hour_start",
	"log_analyzer_hours_end":   "detection.business_hour_end",
	"log_analyzer_timezone":    "detection.timezone",
	"log_analyzer_concurrent":  "detection.concurrent",

	// Files
	"log_analyzer_input":         "input.path",
	"log_analyzer_output":        "report.path",
	"log_analyzer_report_format": "report.format",
	"metrics_textfile":           "metrics.textfile_path",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Publishing
	"publish_enabled":        "publish.enabled",
	"nats_url":               "publish.url",
	"publish_subject_prefix": "publish.subject_prefix",
	"publish_rate":           "publish.rate_per_second",
	"publish_jetstream":      "publish.jetstream",

	// HTTP server
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_read_timeout":   "server.read_timeout",
	"http_write_timeout":  "server.write_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - LOG_ANALYZER_THRESHOLD -> detection.failed_login_threshold
//   - NATS_URL -> publish.url
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
