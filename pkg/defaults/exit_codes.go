package defaults

// Exit codes for the CLI.
const (
	ExitSuccess       = 0 // Clean exit, report generated
	ExitScanFailed    = 1 // Scan ended in an error or aborted state
	ExitUserError     = 2 // Invalid arguments or configuration
	ExitNetworkError  = 3 // Engine unreachable or API failure
	ExitInternalError = 4 // Unexpected internal error
)
