package finding

import (
	"fmt"
	"time"
)

// Record is one discrete fact reported by the scanning engine about a
// target. The JSON tags match the engine's raw event dictionaries, so
// engine output decodes straight into Records.
//
// Only EventType and Value are required. Confidence is a 0-100 integer
// when present; a nil Confidence means unknown and is excluded from
// confidence-weighted statistics. The pipeline never mutates a Record.
type Record struct {
	EventType    string    `json:"event_type"`
	Value        string    `json:"value"`
	SourceModule string    `json:"source_module,omitempty"`
	Confidence   *int      `json:"confidence,omitempty"`
	RiskFlag     bool      `json:"risk_flag,omitempty"`
	DiscoveredAt time.Time `json:"discovered_at,omitzero"`
}

// Validate checks the record's required fields.
// It returns an error wrapping ErrMalformedRecord when event_type or
// value is empty; optional fields are never an error.
func (r Record) Validate() error {
	if r.EventType == "" {
		return fmt.Errorf("%w: empty event_type", ErrMalformedRecord)
	}
	if r.Value == "" {
		return fmt.Errorf("%w: empty value for event_type %q", ErrMalformedRecord, r.EventType)
	}
	return nil
}
