package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/osintment/osintment/pkg/finding"
	"github.com/osintment/osintment/pkg/output"
	"github.com/osintment/osintment/pkg/report"
)

// Options controls summary rendering.
type Options struct {
	NoColor bool
}

// PrintSummary writes the post-run console summary: scan identity, key
// metrics, the severity breakdown and where each artifact was written.
func PrintSummary(w io.Writer, doc *report.Document, artifacts []output.Artifact, opts Options) {
	divider := strings.Repeat("-", 60)
	if !opts.NoColor {
		divider = DividerStyle.Render(divider)
	}

	fmt.Fprintln(w, divider)
	printHeader(w, "Scan Summary", opts)
	printStat(w, "Target", doc.Target, opts)
	printStat(w, "Scan ID", doc.ScanID, opts)
	printStat(w, "Generated", doc.GeneratedAt.Format("2006-01-02 15:04:05 MST"), opts)
	printStat(w, "Total findings", fmt.Sprintf("%d", doc.Stats.TotalFindings), opts)
	printStat(w, "Critical findings", fmt.Sprintf("%d", doc.Stats.CriticalFindings), opts)
	printStat(w, "Unique event types", fmt.Sprintf("%d", doc.Stats.UniqueEventTypes), opts)

	printSeverities(w, doc, opts)
	printTopCategories(w, doc, opts)
	printArtifacts(w, artifacts, opts)
	fmt.Fprintln(w, divider)
}

func printHeader(w io.Writer, title string, opts Options) {
	if opts.NoColor {
		fmt.Fprintf(w, "%s\n", title)
		return
	}
	fmt.Fprintf(w, "%s\n", SectionStyle.Render(title))
}

func printStat(w io.Writer, label, value string, opts Options) {
	if opts.NoColor {
		fmt.Fprintf(w, "  %-20s %s\n", label+":", value)
		return
	}
	fmt.Fprintf(w, "  %s %s\n",
		StatLabelStyle.Render(fmt.Sprintf("%-20s", label+":")),
		StatValueStyle.Render(value))
}

func printSeverities(w io.Writer, doc *report.Document, opts Options) {
	var parts []string
	for _, sev := range finding.Severities() {
		count := doc.Stats.BySeverity[sev]
		if count == 0 {
			continue
		}
		label := fmt.Sprintf("%s %d", sev, count)
		if !opts.NoColor {
			label = SeverityStyle(sev).Render(label)
		}
		parts = append(parts, label)
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, " "))
}

func printTopCategories(w io.Writer, doc *report.Document, opts Options) {
	if len(doc.Stats.TopCategories) == 0 {
		return
	}
	printHeader(w, "Top Categories", opts)
	for _, tc := range doc.Stats.TopCategories {
		printStat(w, string(tc.Category),
			fmt.Sprintf("%d (%.1f%%)", tc.Count, doc.Stats.Distribution[tc.Category]), opts)
	}
}

func printArtifacts(w io.Writer, artifacts []output.Artifact, opts Options) {
	if len(artifacts) == 0 {
		return
	}
	printHeader(w, "Artifacts", opts)
	for _, art := range artifacts {
		switch {
		case art.Err != nil:
			msg := fmt.Sprintf("%-6s %v", art.Format, art.Err)
			if !opts.NoColor {
				msg = ErrorStyle.Render(msg)
			}
			fmt.Fprintf(w, "  %s %s\n", Icon("✗", "[-]"), msg)
		case art.Degraded:
			path := art.Path
			if !opts.NoColor {
				path = PathStyle.Render(path)
			}
			fmt.Fprintf(w, "  %s %-6s %s\n", Icon("⚠", "[!]"), art.Format, path)
			notice := "    " + art.Notice
			if !opts.NoColor {
				notice = WarnStyle.Render(notice)
			}
			fmt.Fprintln(w, notice)
		default:
			path := art.Path
			if !opts.NoColor {
				path = PathStyle.Render(path)
			}
			fmt.Fprintf(w, "  %s %-6s %s\n", Icon("✓", "[+]"), art.Format, path)
		}
	}
}
