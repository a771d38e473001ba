// Package report renders human-readable scan and comparison
// summaries. Formatting only; no machine-readable contract.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/connscan/connscan/internal/compare"
	"github.com/connscan/connscan/internal/model"
)

const timeFormat = "2006-01-02 15:04:05"

func header(w io.Writer, title string) {
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

// PrintScan writes the scan summary: target, mode, timing and the
// sorted open-port table.
func PrintScan(w io.Writer, run *model.ScanRun, findings []model.Finding) {
	fmt.Fprintln(w)
	header(w, "SCAN REPORT")

	fmt.Fprintf(w, "Target: %s (%s)\n", run.Target, run.IP)
	fmt.Fprintf(w, "Scan Type: %s\n", run.Mode)
	fmt.Fprintf(w, "Start Time: %s\n", run.StartedAt.Format(timeFormat))
	fmt.Fprintf(w, "End Time: %s\n", run.FinishedAt.Format(timeFormat))
	fmt.Fprintf(w, "Duration: %.2f seconds\n", run.Duration().Seconds())
	fmt.Fprintf(w, "Open Ports Found: %d\n", len(findings))
	if run.Status == model.StatusInterrupted {
		fmt.Fprintln(w, "Note: scan was interrupted; results are partial")
	}

	if len(findings) == 0 {
		fmt.Fprintln(w, "\nNo open ports found.")
		return
	}

	fmt.Fprintln(w, "\nOpen Ports:")
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tSERVICE")
	for _, f := range findings {
		fmt.Fprintf(tw, "%d/tcp\t%s\n", f.Port, f.Service)
	}
	_ = tw.Flush()
}

// PrintComparison writes the reference-scan reconciliation section.
func PrintComparison(w io.Writer, cmp *compare.Comparison) {
	fmt.Fprintln(w)
	header(w, "NMAP COMPARISON")

	fmt.Fprintf(w, "Our scanner found: %v\n", cmp.Local)
	fmt.Fprintf(w, "Nmap found: %v\n", cmp.Reference)
	fmt.Fprintf(w, "Matches: %v\n", cmp.Matches)
	if len(cmp.OnlyLocal) > 0 {
		fmt.Fprintf(w, "Only we found: %v\n", cmp.OnlyLocal)
	}
	if len(cmp.OnlyReference) > 0 {
		fmt.Fprintf(w, "Only Nmap found: %v\n", cmp.OnlyReference)
	}
	fmt.Fprintf(w, "Accuracy: %.1f%%\n", cmp.Accuracy)
}

// PrintHistory writes a table of stored scan runs, most recent first.
func PrintHistory(w io.Writer, runs []model.ScanRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No scan history.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tTARGET\tMODE\tPROBED\tFOUND\tSTATUS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.StartedAt.Format(timeFormat), r.Target, r.Mode, r.Probed, r.Found, r.Status)
	}
	_ = tw.Flush()
}
