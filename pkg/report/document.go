package report

import (
	"time"

	"github.com/osintment/osintment/pkg/analysis"
	"github.com/osintment/osintment/pkg/finding"
)

// Meta is the report metadata block: who the report is for, who wrote
// it, and which output format was requested.
type Meta struct {
	Company string `json:"company"`
	Author  string `json:"author"`
	Format  string `json:"format,omitempty"`
}

// Entry is one finding inside a category section.
type Entry struct {
	EventType    string           `json:"event_type"`
	Value        string           `json:"value"`
	SourceModule string           `json:"source_module,omitempty"`
	Severity     finding.Severity `json:"severity"`
	Confidence   *int             `json:"confidence,omitempty"`
	RiskFlag     bool             `json:"risk_flag,omitempty"`
	DiscoveredAt time.Time        `json:"discovered_at,omitzero"`
}

// Section groups the findings of one category. Entries are ordered by
// severity tier (critical first), then lexicographically by value.
type Section struct {
	Category finding.Category `json:"category"`
	Entries  []Entry          `json:"entries"`
}

// Document is the fully-aggregated report model. Sections appear in the
// fixed category enumeration order and only for categories that hold at
// least one finding. Once built, a Document is read-only by convention:
// renderers consume it concurrently without synchronization.
type Document struct {
	Target      string                `json:"target"`
	ScanID      string                `json:"scan_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Stats       analysis.SummaryStats `json:"stats"`
	Sections    []Section             `json:"sections"`
	Meta        Meta                  `json:"meta"`
}

// FindingCount returns the number of entries across all sections.
func (d *Document) FindingCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Entries)
	}
	return n
}

// Section returns the section for cat, or nil when the document holds
// no findings in that category.
func (d *Document) Section(cat finding.Category) *Section {
	for i := range d.Sections {
		if d.Sections[i].Category == cat {
			return &d.Sections[i]
		}
	}
	return nil
}
