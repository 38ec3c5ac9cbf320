// Package duration provides canonical time constants for the codebase.
// This is the SINGLE SOURCE OF TRUTH for time-based configuration.
//
// DO NOT use hardcoded time.Duration values like `30 * time.Second`.
// Instead, reference the appropriate constant from this package.
package duration

import "time"

// HTTP client timeouts.
const (
	// HTTPAPI is for engine API calls, including result pulls (60s)
	HTTPAPI = 60 * time.Second
)

// Context/operation timeouts for context.WithTimeout() calls.
const (
	// ContextMax is the default budget for a full scan wait (30min)
	ContextMax = 30 * time.Minute
)

// Polling and progress intervals.
const (
	// StreamSlow is the default scan status poll interval (5s)
	StreamSlow = 5 * time.Second
)

// Network/transport configuration.
const (
	// DialTimeout is for establishing TCP connections (10s)
	DialTimeout = 10 * time.Second

	// KeepAlive is for TCP keep-alive interval (30s)
	KeepAlive = 30 * time.Second

	// IdleConnTimeout is for idle connection pool timeout (90s)
	IdleConnTimeout = 90 * time.Second

	// TLSHandshake is for TLS handshake timeout (10s)
	TLSHandshake = 10 * time.Second
)
