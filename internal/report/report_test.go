package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/connscan/connscan/internal/compare"
	"github.com/connscan/connscan/internal/model"
)

func testRun() *model.ScanRun {
	started := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	return &model.ScanRun{
		Target:     "example.com",
		IP:         "192.0.2.10",
		Mode:       "Common Ports",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Status:     model.StatusCompleted,
	}
}

func TestPrintScanWithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintScan(&buf, testRun(), []model.Finding{
		{Port: 22, Service: "SSH"},
		{Port: 80, Service: "HTTP"},
	})

	out := buf.String()
	assert.Contains(t, out, "Target: example.com (192.0.2.10)")
	assert.Contains(t, out, "Scan Type: Common Ports")
	assert.Contains(t, out, "Duration: 3.00 seconds")
	assert.Contains(t, out, "Open Ports Found: 2")
	assert.Contains(t, out, "22/tcp")
	assert.Contains(t, out, "SSH")
	// Sorted order in the table.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("22/tcp")), bytes.Index(buf.Bytes(), []byte("80/tcp")))
}

func TestPrintScanNoFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintScan(&buf, testRun(), nil)

	assert.Contains(t, buf.String(), "No open ports found.")
}

func TestPrintScanInterrupted(t *testing.T) {
	run := testRun()
	run.Status = model.StatusInterrupted

	var buf bytes.Buffer
	PrintScan(&buf, run, nil)

	assert.Contains(t, buf.String(), "results are partial")
}

func TestPrintComparison(t *testing.T) {
	cmp := &compare.Comparison{
		Local:     []int{22, 443},
		Reference: []int{22},
		Reconciliation: compare.Reconcile(
			[]int{22, 443}, []int{22},
		),
	}

	var buf bytes.Buffer
	PrintComparison(&buf, cmp)

	out := buf.String()
	assert.Contains(t, out, "Our scanner found: [22 443]")
	assert.Contains(t, out, "Nmap found: [22]")
	assert.Contains(t, out, "Matches: [22]")
	assert.Contains(t, out, "Only we found: [443]")
	assert.NotContains(t, out, "Only Nmap found")
	assert.Contains(t, out, "Accuracy: 50.0%")
}

func TestPrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintHistory(&buf, nil)

	assert.Contains(t, buf.String(), "No scan history.")
}
