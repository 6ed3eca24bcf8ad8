// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/loganalyzer/internal/detection"
	"github.com/tomtom215/loganalyzer/internal/logging"
	"github.com/tomtom215/loganalyzer/internal/report"
)

// Config holds all analyzer configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults
//  2. Config file (YAML)
//  3. Environment variables
//  4. Command-line flags
type Config struct {
	Detection DetectionConfig `koanf:"detection"`
	Input     InputConfig     `koanf:"input"`
	Report    ReportConfig    `koanf:"report"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Publish   PublishConfig   `koanf:"publish"`
	Server    ServerConfig    `koanf:"server"`
}

// DetectionConfig holds the rule thresholds.
type DetectionConfig struct {
	FailedLoginThreshold int           `koanf:"failed_login_threshold" validate:"min=1"`
	TimeWindow           time.Duration `koanf:"time_window" validate:"whole_minutes"`
	BusinessHourStart    int           `koanf:"business_hour_start" validate:"min=0,max=23"`
	BusinessHourEnd      int           `koanf:"business_hour_end" validate:"max=23,gtfield=BusinessHourStart"`

	// Timezone is the IANA zone used to read log timestamps and hours of day.
	// Empty means the zone of the machine running the analyzer.
	Timezone string `koanf:"timezone" validate:"omitempty,timezone"`

	// Concurrent runs the three detectors in parallel.
	Concurrent bool `koanf:"concurrent"`
}

// Location resolves Timezone.
func (d DetectionConfig) Location() (*time.Location, error) {
	if d.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", d.Timezone, err)
	}
	return loc, nil
}

// EngineConfig converts the settings into the detection package's Config.
func (d DetectionConfig) EngineConfig() (detection.Config, error) {
	loc, err := d.Location()
	if err != nil {
		return detection.Config{}, err
	}
	return detection.Config{
		FailedLoginThreshold: d.FailedLoginThreshold,
		TimeWindow:           d.TimeWindow,
		BusinessHourStart:    d.BusinessHourStart,
		BusinessHourEnd:      d.BusinessHourEnd,
		Location:             loc,
	}, nil
}

// InputConfig points at the log file analyzed in batch mode.
type InputConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// ReportConfig controls where and how the report is written.
type ReportConfig struct {
	Path   string `koanf:"path" validate:"required"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// ReportFormat returns Format as a report.Format.
func (r ReportConfig) ReportFormat() report.Format {
	return report.Format(r.Format)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// LoggerConfig converts the settings for logging.Init.
func (l LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	// TextfilePath, when set, receives a Prometheus textfile dump after each batch run.
	TextfilePath string `koanf:"textfile_path"`
}

// PublishConfig controls delivery of findings to NATS.
type PublishConfig struct {
	Enabled       bool   `koanf:"enabled"`
	URL           string `koanf:"url" validate:"omitempty,url"`
	SubjectPrefix string `koanf:"subject_prefix" validate:"required"`

	// RatePerSecond caps publish throughput; 0 disables the limiter.
	RatePerSecond float64 `koanf:"rate_per_second" validate:"min=0"`

	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold" validate:"min=1"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout" validate:"min=1s"`

	// JetStream publishes to a stream instead of core NATS subjects.
	JetStream bool `koanf:"jetstream"`
}

// ServerConfig holds HTTP server settings for serve mode.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`

	// MaxBodyBytes bounds the log text accepted by the analyze endpoint.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"min=1"`

	// RateLimitRequests per RateLimitWindow per client IP; 0 disables limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"min=1s"`

	CORSOrigins []string `koanf:"cors_origins" validate:"dive,required"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
