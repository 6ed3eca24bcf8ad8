// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tomtom215/loganalyzer/internal/detection"
)

const (
	banner  = "========================================"
	divider = "----------------------------------------"
)

// WriteText renders the plain-text report: header, summary statistics,
// detected anomalies and footer.
func (g *Generator) WriteText(w io.Writer, records []detection.Record, findings []detection.Finding) error {
	bw := bufio.NewWriter(w)

	g.writeHeader(bw)
	writeSummary(bw, records, findings)
	g.writeFindings(bw, findings)
	writeFooter(bw)

	return bw.Flush()
}

func (g *Generator) writeHeader(w io.Writer) {
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "   LOG ANALYZER SECURITY REPORT")
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "Report Generated: %s\n", g.formatTime(g.now()))
	fmt.Fprintf(w, "%s\n\n", banner)
}

func writeSummary(w io.Writer, records []detection.Record, findings []detection.Finding) {
	fmt.Fprintln(w, "SUMMARY STATISTICS")
	fmt.Fprintln(w, divider)

	if len(records) == 0 {
		fmt.Fprintln(w, "WARNING: No log entries were processed.")
		fmt.Fprintf(w, "The log file may be empty or invalid.\n\n")
		return
	}

	s := Summarize(records, findings)
	fmt.Fprintf(w, "Total Log Entries: %d\n", s.TotalEntries)
	fmt.Fprintf(w, "Successful Logins: %d\n", s.SuccessfulLogins)
	fmt.Fprintf(w, "Failed Logins: %d\n", s.FailedLogins)
	fmt.Fprintf(w, "Suspicious Events Detected: %d\n\n", s.SuspiciousEvents)
}

func (g *Generator) writeFindings(w io.Writer, findings []detection.Finding) {
	fmt.Fprintln(w, "DETECTED ANOMALIES")
	fmt.Fprintln(w, divider)

	if len(findings) == 0 {
		fmt.Fprintln(w, "No anomalies detected.")
		fmt.Fprintf(w, "All login activity appears normal.\n\n")
		return
	}

	for i, f := range findings {
		fmt.Fprintf(w, "\n[%d] %s\n", i+1, f.Kind.Title())
		fmt.Fprintf(w, "    Username: %s\n", f.Username)

		switch len(f.Addresses) {
		case 0:
			fmt.Fprintln(w, "    IP Address(es): N/A")
		case 1:
			fmt.Fprintf(w, "    IP Address(es): %s\n", f.Addresses[0])
		default:
			fmt.Fprintln(w, "    IP Address(es):")
			for _, addr := range f.Addresses {
				fmt.Fprintf(w, "        - %s\n", addr)
			}
		}

		fmt.Fprintf(w, "    First Occurrence: %s\n", g.formatTime(f.WindowStart))
		fmt.Fprintf(w, "    Last Occurrence: %s\n", g.formatTime(f.WindowEnd))
		fmt.Fprintf(w, "    Event Count: %d\n", f.Count)
		if f.Description != "" {
			fmt.Fprintf(w, "    Details: %s\n", f.Description)
		}
	}
	fmt.Fprintln(w)
}

func writeFooter(w io.Writer) {
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "         END OF REPORT")
	fmt.Fprintln(w, banner)
}
