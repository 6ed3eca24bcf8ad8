// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tomtom215/loganalyzer/internal/config"
	"github.com/tomtom215/loganalyzer/internal/detection"
	"github.com/tomtom215/loganalyzer/internal/logging"
	"github.com/tomtom215/loganalyzer/internal/logparser"
	"github.com/tomtom215/loganalyzer/internal/metrics"
	"github.com/tomtom215/loganalyzer/internal/report"
)

var (
	// ErrInputUnavailable means the log input could not be opened or read.
	ErrInputUnavailable = errors.New("log input unavailable")

	// ErrReportWrite means the report could not be written to its destination.
	ErrReportWrite = errors.New("report write failed")
)

// Run outcomes recorded in metrics.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// FindingPublisher delivers findings to an external consumer.
type FindingPublisher interface {
	PublishFindings(ctx context.Context, runID string, findings []detection.Finding) (int, error)
}

// Analysis is the in-memory outcome of parsing and detection.
type Analysis struct {
	Parse    *logparser.Result
	Findings []detection.Finding
}

// Result summarizes a completed batch run.
type Result struct {
	RunID        string
	TotalLines   int
	ValidRecords int
	InvalidLines int
	Findings     []detection.Finding
	ReportPath   string

	// Published is the number of findings delivered to the publisher.
	Published int
}

// Analyzer runs the batch pipeline: read, parse, detect, report, publish.
type Analyzer struct {
	cfg       *config.Config
	parser    *logparser.Parser
	engine    *detection.Engine
	generator *report.Generator
	publisher FindingPublisher
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPublisher delivers findings after each run.
func WithPublisher(p FindingPublisher) Option {
	return func(a *Analyzer) {
		a.publisher = p
	}
}

// WithClock overrides the report generation time.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.generator.Now = now
	}
}

// New builds an Analyzer from a validated configuration.
func New(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		return nil, errors.New("analyzer: nil config")
	}

	engineCfg, err := cfg.Detection.EngineConfig()
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		cfg:       cfg,
		parser:    logparser.New(engineCfg.Location),
		engine:    detection.NewEngine(engineCfg, detection.WithConcurrency(cfg.Detection.Concurrent)),
		generator: report.NewGenerator(engineCfg.Location),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Engine exposes the detection engine, mainly for its statistics.
func (a *Analyzer) Engine() *detection.Engine {
	return a.engine
}

// Generator returns the report generator used by Run.
func (a *Analyzer) Generator() *report.Generator {
	return a.generator
}

// Analyze parses log text from r and runs every detector over it.
func (a *Analyzer) Analyze(ctx context.Context, r io.Reader) (*Analysis, error) {
	parsed, err := a.parser.Parse(ctx, r)
	if err != nil {
		return nil, err
	}

	findings, err := a.engine.DetectAll(ctx, parsed.Records)
	if err != nil {
		return nil, err
	}

	return &Analysis{Parse: parsed, Findings: findings}, nil
}

// Run executes one batch analysis of the configured input file and writes
// the report. Errors wrap ErrInputUnavailable or ErrReportWrite where they
// apply. Publishing and metrics export failures are logged only.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := logging.NewRunID()
	ctx = logging.ContextWithRunID(ctx, runID)
	logger := logging.Ctx(ctx)

	logger.Info().
		Str("input", a.cfg.Input.Path).
		Str("report", a.cfg.Report.Path).
		Msg("Starting analysis run")

	result, err := a.run(ctx, runID)

	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	metrics.RecordAnalysisRun(outcome, time.Since(start))
	a.exportMetrics(ctx)

	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Analysis run failed")
		return result, err
	}

	logger.Info().
		Int("records", result.ValidRecords).
		Int("invalid", result.InvalidLines).
		Int("findings", len(result.Findings)).
		Dur("duration", time.Since(start)).
		Msg("Analysis run complete")
	return result, nil
}

func (a *Analyzer) run(ctx context.Context, runID string) (*Result, error) {
	result := &Result{RunID: runID, ReportPath: a.cfg.Report.Path}

	analysis, err := a.analyzeFile(ctx, a.cfg.Input.Path)
	if err != nil {
		return result, err
	}

	parsed := analysis.Parse
	result.TotalLines = parsed.TotalLines
	result.ValidRecords = len(parsed.Records)
	result.InvalidLines = parsed.InvalidLines()
	result.Findings = analysis.Findings

	if result.ValidRecords == 0 {
		logging.Ctx(ctx).Warn().Msg("No valid log entries found, generating empty report")
	}

	var buf bytes.Buffer
	if err := a.generator.Write(&buf, parsed.Records, analysis.Findings, a.cfg.Report.ReportFormat()); err != nil {
		return result, fmt.Errorf("%w: render: %w", ErrReportWrite, err)
	}
	if err := report.WriteFile(a.cfg.Report.Path, buf.Bytes()); err != nil {
		return result, fmt.Errorf("%w: %w", ErrReportWrite, err)
	}

	result.Published = a.Publish(ctx, runID, analysis.Findings)
	return result, nil
}

func (a *Analyzer) analyzeFile(ctx context.Context, path string) (*Analysis, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	defer f.Close()

	analysis, err := a.Analyze(ctx, f)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	return analysis, nil
}

// Publish hands findings to the attached publisher, if any, and returns how
// many were delivered. Failures are logged, never returned.
func (a *Analyzer) Publish(ctx context.Context, runID string, findings []detection.Finding) int {
	if a.publisher == nil || len(findings) == 0 {
		return 0
	}

	n, err := a.publisher.PublishFindings(ctx, runID, findings)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Int("published", n).
			Int("findings", len(findings)).
			Msg("Some findings were not published")
	}
	return n
}

func (a *Analyzer) exportMetrics(ctx context.Context) {
	path := a.cfg.Metrics.TextfilePath
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("Failed to export metrics textfile")
	}
}
