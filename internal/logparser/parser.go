// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package logparser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tomtom215/loganalyzer/internal/detection"
	"github.com/tomtom215/loganalyzer/internal/logging"
	"github.com/tomtom215/loganalyzer/internal/metrics"
)

// TimestampLayout is the layout of the first field of every line.
const TimestampLayout = "2006-01-02 15:04:05"

// MaxLineSize bounds a single input line.
const MaxLineSize = 1 << 20

// fieldCount is the number of pipe-separated fields per line.
const fieldCount = 4

// ErrMalformedLine is wrapped by every line-level parse error.
var ErrMalformedLine = errors.New("malformed log line")

// ParseLine parses one line into a Record, reading the timestamp in loc
// (nil means time.Local). The returned error wraps ErrMalformedLine.
func ParseLine(line string, loc *time.Location) (detection.Record, error) {
	if loc == nil {
		loc = time.Local
	}

	fields := strings.SplitN(line, "|", fieldCount)
	if len(fields) != fieldCount {
		return detection.Record{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedLine, fieldCount, len(fields))
	}

	names := [fieldCount]string{"timestamp", "username", "source address", "status"}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
		if fields[i] == "" {
			return detection.Record{}, fmt.Errorf("%w: empty %s", ErrMalformedLine, names[i])
		}
	}

	ts, err := time.ParseInLocation(TimestampLayout, fields[0], loc)
	if err != nil {
		return detection.Record{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedLine, fields[0])
	}

	return detection.Record{
		Timestamp:     ts,
		Username:      fields[1],
		SourceAddress: fields[2],
		Outcome:       detection.ParseOutcome(fields[3]),
	}, nil
}

// Rejection describes one line that could not be parsed.
type Rejection struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Result is the outcome of parsing a whole input.
type Result struct {
	Records []detection.Record

	// TotalLines counts every line read, including blank ones.
	TotalLines int

	// Rejected lists the lines that failed to parse, in input order.
	Rejected []Rejection
}

// InvalidLines is the number of rejected lines.
func (r *Result) InvalidLines() int {
	return len(r.Rejected)
}

// Parser reads log text line by line.
type Parser struct {
	location *time.Location
}

// New creates a parser that reads timestamps in loc (nil means time.Local).
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{location: loc}
}

// Parse reads r to the end. Blank lines are counted but skipped; malformed
// lines are recorded in Result.Rejected and logged. Parse only fails when
// the reader fails, a line exceeds MaxLineSize, or ctx is canceled.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*Result, error) {
	result := &Result{}
	logger := logging.Ctx(ctx)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	for scanner.Scan() {
		if result.TotalLines%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}
		result.TotalLines++

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		rec, err := ParseLine(line, p.location)
		if err != nil {
			result.Rejected = append(result.Rejected, Rejection{Line: result.TotalLines, Reason: err.Error()})
			metrics.RecordLine(false)
			logger.Warn().Int("line", result.TotalLines).Err(err).Msg("Skipping invalid log entry")
			continue
		}
		result.Records = append(result.Records, rec)
		metrics.RecordLine(true)
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read log input at line %d: %w", result.TotalLines+1, err)
	}

	return result, nil
}
