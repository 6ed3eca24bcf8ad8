// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewRunID(t *testing.T) {
	id1 := NewRunID()
	id2 := NewRunID()

	if len(id1) != 36 {
		t.Errorf("expected 36-character run ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique run IDs")
	}
}

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()
	if id := RunIDFromContext(ctx); id != "" {
		t.Errorf("expected empty run ID, got %s", id)
	}

	ctx = ContextWithRunID(ctx, "run-123")
	if id := RunIDFromContext(ctx); id != "run-123" {
		t.Errorf("expected run-123, got %s", id)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-456")
	if id := RequestIDFromContext(ctx); id != "req-456" {
		t.Errorf("expected req-456, got %s", id)
	}
}

func TestCtx_AddsFields(t *testing.T) {
	original := Logger()
	t.Cleanup(func() { SetLogger(original) })

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	ctx := ContextWithRunID(context.Background(), "run-abc")
	ctx = ContextWithRequestID(ctx, "req-xyz")
	Ctx(ctx).Info().Msg("with context")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"run-abc"`) {
		t.Errorf("missing run_id: %s", output)
	}
	if !strings.Contains(output, `"request_id":"req-xyz"`) {
		t.Errorf("missing request_id: %s", output)
	}
}

func TestCtx_NoFields(t *testing.T) {
	original := Logger()
	t.Cleanup(func() { SetLogger(original) })

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	Ctx(context.Background()).Info().Msg("plain")

	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("unexpected run_id: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	original := Logger()
	t.Cleanup(func() { SetLogger(original) })

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	logger := WithComponent("publisher")
	logger.Info().Msg("component message")

	if !strings.Contains(buf.String(), `"component":"publisher"`) {
		t.Errorf("missing component field: %s", buf.String())
	}
}
