// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate keeps the search paths and CONFIG_PATH from picking up stray files.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	for env := range envMappings {
		t.Setenv(strings.ToUpper(env), "")
		os.Unsetenv(strings.ToUpper(env))
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithKoanf(LoadOptions{})
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Detection.FailedLoginThreshold != 5 || cfg.Detection.TimeWindow != 10*time.Minute {
		t.Errorf("detection = %+v", cfg.Detection)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	isolate(t)
	path := writeYAML(t, `
detection:
  failed_login_threshold: 3
  time_window: 15m
  business_hour_start: 9
  business_hour_end: 17
report:
  format: json
server:
  cors_origins:
    - https://a.example
    - https://b.example
`)

	cfg, err := LoadWithKoanf(LoadOptions{Path: path})
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Detection.FailedLoginThreshold != 3 {
		t.Errorf("threshold = %d, want 3", cfg.Detection.FailedLoginThreshold)
	}
	if cfg.Detection.TimeWindow != 15*time.Minute {
		t.Errorf("window = %v, want 15m", cfg.Detection.TimeWindow)
	}
	if cfg.Detection.BusinessHourStart != 9 || cfg.Detection.BusinessHourEnd != 17 {
		t.Errorf("hours = %d-%d", cfg.Detection.BusinessHourStart, cfg.Detection.BusinessHourEnd)
	}
	if cfg.Report.Format != "json" {
		t.Errorf("format = %q", cfg.Report.Format)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	// untouched keys keep defaults
	if cfg.Input.Path != "logs/sample.log" {
		t.Errorf("Input.Path = %q", cfg.Input.Path)
	}
}

func TestLoadWithKoanf_FileBareMinutes(t *testing.T) {
	isolate(t)
	path := writeYAML(t, "detection:\n  time_window: 20\n")

	cfg, err := LoadWithKoanf(LoadOptions{Path: path})
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Detection.TimeWindow != 20*time.Minute {
		t.Errorf("window = %v, want 20m", cfg.Detection.TimeWindow)
	}
}

func TestLoadWithKoanf_WindowMinutes(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{name: "integer", value: "15", want: 15 * time.Minute},
		{name: "whole float", value: "15.0", want: 15 * time.Minute},
		{name: "quoted minutes", value: `"7"`, want: 7 * time.Minute},
		{name: "duration string", value: "30m", want: 30 * time.Minute},
		{name: "fractional minutes", value: "1.5", wantErr: true},
		{name: "fractional duration", value: "90s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeYAML(t, "detection:\n  time_window: "+tt.value+"\n")

			cfg, err := LoadWithKoanf(LoadOptions{Path: path})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got window %v", cfg.Detection.TimeWindow)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadWithKoanf: %v", err)
			}
			if cfg.Detection.TimeWindow != tt.want {
				t.Errorf("window = %v, want %v", cfg.Detection.TimeWindow, tt.want)
			}
		})
	}
}

func TestLoadWithKoanf_ConfigPathEnv(t *testing.T) {
	isolate(t)
	path := writeYAML(t, "detection:\n  failed_login_threshold: 7\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf(LoadOptions{})
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Detection.FailedLoginThreshold != 7 {
		t.Errorf("threshold = %d, want 7", cfg.Detection.FailedLoginThreshold)
	}
}

func TestLoadWithKoanf_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := LoadWithKoanf(LoadOptions{Path: filepath.Join(t.TempDir(), "absent.yaml")})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadWithKoanf_Env(t *testing.T) {
	isolate(t)
	t.Setenv("LOG_ANALYZER_THRESHOLD", "4")
	t.Setenv("LOG_ANALYZER_WINDOW", "30")
	t.Setenv("LOG_ANALYZER_HOURS_START", "7")
	t.Setenv("LOG_ANALYZER_HOURS_END", "19")
	t.Setenv("LOG_ANALYZER_OUTPUT", "out/r.txt")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("CORS_ORIGINS", "https://x.example, https://y.example")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := LoadWithKoanf(LoadOptions{})
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Detection.FailedLoginThreshold != 4 {
		t.Errorf("threshold = %d", cfg.Detection.FailedLoginThreshold)
	}
	if cfg.Detection.TimeWindow != 30*time.Minute {
		t.Errorf("window = %v, want 30m", cfg.Detection.TimeWindow)
	}
	if cfg.Detection.BusinessHourStart != 7 || cfg.Detection.BusinessHourEnd != 19 {
		t.Errorf("hours = %d-%d", cfg.Detection.BusinessHourStart, cfg.Detection.BusinessHourEnd)
	}
	if cfg.Report.Path != "out/r.txt" {
		t.Errorf("Report.Path = %q", cfg.Report.Path)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://y.example" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadWithKoanf_DurationEnv(t *testing.T) {
	isolate(t)
	t.Setenv("LOG_ANALYZER_WINDOW", "5m")

	cfg, err := LoadWithKoanf(LoadOptions{})
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Detection.TimeWindow != 5*time.Minute {
		t.Errorf("window = %v, want 5m", cfg.Detection.TimeWindow)
	}
}

func TestLoadWithKoanf_OverridesWin(t *testing.T) {
	isolate(t)
	path := writeYAML(t, "detection:\n  failed_login_threshold: 3\n")
	t.Setenv("LOG_ANALYZER_THRESHOLD", "4")

	cfg, err := LoadWithKoanf(LoadOptions{
		Path: path,
		Overrides: map[string]interface{}{
			"detection.failed_login_threshold": 9,
			"detection.time_window":            2 * time.Minute,
			"input.path":                       "custom.log",
		},
	})
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Detection.FailedLoginThreshold != 9 {
		t.Errorf("threshold = %d, want 9", cfg.Detection.FailedLoginThreshold)
	}
	if cfg.Detection.TimeWindow != 2*time.Minute {
		t.Errorf("window = %v", cfg.Detection.TimeWindow)
	}
	if cfg.Input.Path != "custom.log" {
		t.Errorf("Input.Path = %q", cfg.Input.Path)
	}
}

func TestLoadWithKoanf_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("LOG_ANALYZER_HOURS_START", "20")
	t.Setenv("LOG_ANALYZER_HOURS_END", "6")

	_, err := LoadWithKoanf(LoadOptions{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"LOG_ANALYZER_THRESHOLD": "detection.failed_login_threshold",
		"LOG_ANALYZER_TIMEZONE":  "detection.timezone",
		"NATS_URL":               "publish.url",
		"HTTP_PORT":              "server.port",
		"LOG_LEVEL":              "logging.level",
		"PATH":                   "",
		"HOME":                   "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
