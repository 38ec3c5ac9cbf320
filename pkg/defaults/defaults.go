// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for runtime configuration defaults.
//
// DO NOT use hardcoded values like `TopN: 5` anywhere.
// Instead, reference the appropriate constant from this package.
package defaults

// ToolName is the canonical tool name used in artifacts and user agents.
const ToolName = "osintment"

// Version is the current osintment version.
const Version = "1.2.0"

// ============================================================================
// SCAN ENGINE
// ============================================================================

const (
	// EngineURL is the default SpiderFoot endpoint.
	EngineURL = "http://localhost:5001"

	// EngineRequestsPerMinute throttles engine API calls.
	EngineRequestsPerMinute = 60
)

// ============================================================================
// REPORTING
// ============================================================================

const (
	// OutputDir is the default report artifact directory.
	OutputDir = "./reports"

	// CompanyName brands reports when no company is configured.
	CompanyName = "Professional OSINT Services"

	// ReportAuthor signs reports when no author is configured.
	ReportAuthor = "OSINT Team"

	// TopCategories is the default number of ranked categories in the
	// executive summary.
	TopCategories = 5

	// ReportFormats is the default comma-separated format list.
	ReportFormats = "html,pdf,json"
)

// ============================================================================
// HTTP
// ============================================================================

const (
	// ContentTypeForm is application/x-www-form-urlencoded
	ContentTypeForm = "application/x-www-form-urlencoded"

	// UAMinimal is the user agent on every engine request.
	UAMinimal = ToolName + "/" + Version
)
