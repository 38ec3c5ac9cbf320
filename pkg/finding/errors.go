package finding

import "errors"

// Sentinel errors for input validation.
// Callers should use errors.Is() to check for these.
var (
	// ErrMalformedRecord indicates a record is missing its required
	// event_type or value field. The record is skipped; the batch
	// continues.
	ErrMalformedRecord = errors.New("finding: record missing required fields")

	// ErrNilInput indicates a nil record or classified sequence was
	// passed where one is required.
	ErrNilInput = errors.New("finding: nil input sequence")
)
