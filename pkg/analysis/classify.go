package analysis

import (
	"log/slog"

	"github.com/osintment/osintment/pkg/finding"
)

// Classified pairs a finding record with its assigned category and
// severity tier.
type Classified struct {
	Record   finding.Record   `json:"record"`
	Category finding.Category `json:"category"`
	Severity finding.Severity `json:"severity"`
}

// SkippedRecord identifies a malformed input record that was dropped
// from the batch.
type SkippedRecord struct {
	Index int
	Err   error
}

// Diagnostics reports non-fatal conditions encountered during
// classification. Skipped holds malformed records that were dropped;
// Unmapped counts records per event type that had no category mapping
// and were bucketed as other.
type Diagnostics struct {
	Skipped  []SkippedRecord
	Unmapped map[string]int
}

// Classify maps each record onto exactly one category and severity tier.
//
// Malformed records (missing event_type or value) are skipped, logged,
// and reported in the diagnostics; they never fail the batch. A record
// whose event type has no category mapping is bucketed as other and
// counted in Diagnostics.Unmapped. Only a nil input sequence is an
// error. An empty batch classifies to an empty result.
//
// logger may be nil, in which case slog.Default() is used.
func Classify(records []finding.Record, logger *slog.Logger) ([]Classified, Diagnostics, error) {
	diag := Diagnostics{Unmapped: make(map[string]int)}
	if records == nil {
		return nil, diag, finding.ErrNilInput
	}
	logger = orDefault(logger)

	classified := make([]Classified, 0, len(records))
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			diag.Skipped = append(diag.Skipped, SkippedRecord{Index: i, Err: err})
			logger.Warn("skipping malformed record",
				"index", i,
				"event_type", rec.EventType,
				"error", err)
			continue
		}

		cat, mapped := finding.CategoryOf(rec.EventType)
		if !mapped {
			diag.Unmapped[rec.EventType]++
			logger.Debug("no category mapping for event type",
				"event_type", rec.EventType,
				"category", cat)
		}

		classified = append(classified, Classified{
			Record:   rec,
			Category: cat,
			Severity: finding.SeverityOf(rec.EventType, rec.RiskFlag),
		})
	}

	return classified, diag, nil
}

// orDefault returns l if non-nil, otherwise slog.Default().
func orDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
