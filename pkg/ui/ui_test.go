package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/osintment/osintment/pkg/analysis"
	"github.com/osintment/osintment/pkg/finding"
	"github.com/osintment/osintment/pkg/output"
	"github.com/osintment/osintment/pkg/report"
)

func summaryDoc() *report.Document {
	return &report.Document{
		Target:      "example.com",
		ScanID:      "scan-1",
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Stats: analysis.SummaryStats{
			TotalFindings:    4,
			UniqueEventTypes: 3,
			CriticalFindings: 1,
			BySeverity: map[finding.Severity]int{
				finding.Critical: 1,
				finding.Info:     3,
			},
			TopCategories: []analysis.CategoryCount{
				{Category: finding.CategoryDomain, Count: 3},
				{Category: finding.CategoryCredential, Count: 1},
			},
			Distribution: map[finding.Category]float64{
				finding.CategoryDomain:     75.0,
				finding.CategoryCredential: 25.0,
			},
		},
		Meta: report.Meta{Company: "Acme", Author: "Analyst"},
	}
}

func TestPrintSummaryPlain(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, summaryDoc(), []output.Artifact{
		{Format: "html", Path: "/tmp/r.html"},
		{Format: "pdf", Path: "/tmp/r.pdf", Degraded: true, Notice: "print-ready render failed"},
		{Format: "csv", Err: errors.New("disk full")},
	}, Options{NoColor: true})

	out := buf.String()
	for _, want := range []string{
		"example.com",
		"scan-1",
		"Total findings:      4",
		"Critical findings:   1",
		"critical 1",
		"domain",
		"75.0%",
		"/tmp/r.html",
		"print-ready render failed",
		"disk full",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}

func TestPrintSummaryEmptyStats(t *testing.T) {
	doc := summaryDoc()
	doc.Stats = analysis.SummaryStats{}

	var buf bytes.Buffer
	PrintSummary(&buf, doc, nil, Options{NoColor: true})
	if !strings.Contains(buf.String(), "Total findings:      0") {
		t.Errorf("empty stats not rendered:\n%s", buf.String())
	}
}

func TestPrintBannerNoColor(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, true)
	if !strings.Contains(buf.String(), "OSINT report generation") {
		t.Errorf("banner missing version line:\n%s", buf.String())
	}
}

func TestSanitizeStringASCIIUnchanged(t *testing.T) {
	in := "plain ascii 123"
	if got := SanitizeString(in); got != in {
		t.Errorf("SanitizeString(%q) = %q", in, got)
	}
}
