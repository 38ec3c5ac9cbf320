package report

import (
	"sort"
	"time"

	"github.com/osintment/osintment/pkg/analysis"
	"github.com/osintment/osintment/pkg/finding"
)

// BuildInfo identifies the scan a document describes.
type BuildInfo struct {
	Target string
	ScanID string
	Meta   Meta

	// GeneratedAt overrides the generation timestamp when non-zero.
	// Zero means time.Now().UTC(). Fixed timestamps keep repeated
	// renders byte-identical.
	GeneratedAt time.Time
}

// Build assembles classified findings and their summary statistics into
// a Document.
//
// The summary block is taken verbatim from stats; Build never recomputes
// statistics. An empty classified batch is not an error: it produces a
// well-formed document with no sections and the zeroed stats it was
// given, so empty scans still render.
func Build(classified []analysis.Classified, stats analysis.SummaryStats, info BuildInfo) *Document {
	generated := info.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}

	byCategory := make(map[finding.Category][]Entry)
	for _, c := range classified {
		byCategory[c.Category] = append(byCategory[c.Category], Entry{
			EventType:    c.Record.EventType,
			Value:        c.Record.Value,
			SourceModule: c.Record.SourceModule,
			Severity:     c.Severity,
			Confidence:   c.Record.Confidence,
			RiskFlag:     c.Record.RiskFlag,
			DiscoveredAt: c.Record.DiscoveredAt,
		})
	}

	sections := make([]Section, 0, len(byCategory))
	for _, cat := range finding.Categories() {
		entries, ok := byCategory[cat]
		if !ok {
			continue
		}
		sortEntries(entries)
		sections = append(sections, Section{Category: cat, Entries: entries})
	}

	return &Document{
		Target:      info.Target,
		ScanID:      info.ScanID,
		GeneratedAt: generated,
		Stats:       stats,
		Sections:    sections,
		Meta:        info.Meta,
	}
}

// sortEntries orders a section by severity tier (critical first), then
// lexicographically by value. Renderer output and the tabular export
// depend on this ordering being stable.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		si, sj := entries[i].Severity.Score(), entries[j].Severity.Score()
		if si != sj {
			return si > sj
		}
		return entries[i].Value < entries[j].Value
	})
}
