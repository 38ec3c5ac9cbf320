package finding

// Severity represents the risk tier assigned to a finding.
// All values are lowercase strings, matching the convention used in
// report output across every renderer.
type Severity string

const (
	// Critical represents findings requiring immediate action
	// (exposed credentials confirmed dangerous by the engine).
	Critical Severity = "critical"

	// High represents significant exposure requiring prompt review
	// (leaked data, known-vulnerable services, malicious indicators).
	High Severity = "high"

	// Medium represents moderate exposure (certificate problems,
	// misconfigurations).
	Medium Severity = "medium"

	// Low represents limited exposure (technology fingerprints,
	// service banners).
	Low Severity = "low"

	// Info represents informational findings with no direct risk
	// (discovered hosts, contact details).
	Info Severity = "info"
)

// IsValid reports whether s is a recognized severity tier.
func (s Severity) IsValid() bool {
	switch s {
	case Critical, High, Medium, Low, Info:
		return true
	}
	return false
}

// Score returns a numeric score for sorting and comparison.
// Critical=5, High=4, Medium=3, Low=2, Info=1, unknown=0.
func (s Severity) Score() int {
	switch s {
	case Critical:
		return 5
	case High:
		return 4
	case Medium:
		return 3
	case Low:
		return 2
	case Info:
		return 1
	default:
		return 0
	}
}

// Escalate returns the next tier up, capped at Critical.
// Unknown severities escalate to Info.
func (s Severity) Escalate() Severity {
	switch s {
	case Critical:
		return Critical
	case High:
		return Critical
	case Medium:
		return High
	case Low:
		return Medium
	case Info:
		return Low
	default:
		return Info
	}
}

// String returns the severity as a string.
func (s Severity) String() string {
	return string(s)
}

// Severities returns all tiers ordered from Critical to Info.
// Report sections and summary tables iterate in this order.
func Severities() []Severity {
	return []Severity{Critical, High, Medium, Low, Info}
}
