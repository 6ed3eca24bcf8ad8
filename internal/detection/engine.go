// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package detection

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/loganalyzer/internal/logging"
	"github.com/tomtom215/loganalyzer/internal/metrics"
)

// Engine runs the detectors over a batch of records and concatenates their
// findings in a fixed order: failed-login clusters, then after-hours logins,
// then multi-address clusters.
type Engine struct {
	detectors  []Detector
	concurrent bool

	mu    sync.RWMutex
	stats EngineStats
}

// EngineStats summarizes the engine's work since it was created.
type EngineStats struct {
	Runs             int64
	RecordsProcessed int64
	FindingsByKind   map[Kind]int64
	LastRunAt        time.Time
	LastRunDuration  time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithConcurrency runs the detectors in parallel goroutines. Output order is
// unchanged; each detector writes to its own result slot.
func WithConcurrency(enabled bool) EngineOption {
	return func(e *Engine) {
		e.concurrent = enabled
	}
}

// NewEngine creates an engine with the three built-in detectors.
// config must already satisfy the range checks done by the config package.
func NewEngine(config Config, opts ...EngineOption) *Engine {
	e := &Engine{
		detectors: []Detector{
			NewFailedLoginDetector(config),
			NewAfterHoursDetector(config),
			NewMultiAddressDetector(config),
		},
		stats: EngineStats{FindingsByKind: make(map[Kind]int64)},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Detectors returns the registered detectors in output order.
func (e *Engine) Detectors() []Detector {
	return append([]Detector(nil), e.detectors...)
}

// DetectAll evaluates every detector against records. The only error is
// ctx's, returned when the context is done before the detectors run.
func (e *Engine) DetectAll(ctx context.Context, records []Record) ([]Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([][]Finding, len(e.detectors))

	if e.concurrent {
		var g errgroup.Group
		for i, d := range e.detectors {
			g.Go(func() error {
				results[i] = runDetector(d, records)
				return nil
			})
		}
		_ = g.Wait() // detectors never fail
	} else {
		for i, d := range e.detectors {
			results[i] = runDetector(d, records)
		}
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	findings := make([]Finding, 0, total)
	for _, r := range results {
		findings = append(findings, r...)
	}

	elapsed := time.Since(start)
	e.updateStats(len(records), results, elapsed)
	metrics.RecordsAnalyzed.Add(float64(len(records)))

	logging.Ctx(ctx).Debug().
		Int("records", len(records)).
		Int("findings", len(findings)).
		Dur("duration", elapsed).
		Bool("concurrent", e.concurrent).
		Msg("detection complete")

	return findings, nil
}

// runDetector runs one detector and records its timing.
func runDetector(d Detector, records []Record) []Finding {
	start := time.Now()
	findings := d.Detect(records)
	metrics.RecordDetection(string(d.Kind()), len(findings), time.Since(start))
	return findings
}

func (e *Engine) updateStats(records int, results [][]Finding, elapsed time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.Runs++
	e.stats.RecordsProcessed += int64(records)
	for i, r := range results {
		e.stats.FindingsByKind[e.detectors[i].Kind()] += int64(len(r))
	}
	e.stats.LastRunAt = time.Now()
	e.stats.LastRunDuration = elapsed
}

// Stats returns a copy of the engine's counters.
func (e *Engine) Stats() EngineStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := e.stats
	s.FindingsByKind = make(map[Kind]int64, len(e.stats.FindingsByKind))
	for k, v := range e.stats.FindingsByKind {
		s.FindingsByKind[k] = v
	}
	return s
}

// DetectAll runs all three rules sequentially and concatenates their findings
// in rule order. It has no side effects beyond metrics.
func DetectAll(records []Record, config Config) []Finding {
	findings, _ := NewEngine(config).DetectAll(context.Background(), records)
	return findings
}
