// Package ui renders the console-facing side of a report run: the
// banner, the post-scan summary and styled severity badges.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/osintment/osintment/pkg/finding"
)

// Color palette.
var (
	// Brand colors
	Primary   = lipgloss.Color("#7D56F4") // Purple
	Secondary = lipgloss.Color("#00D4AA") // Cyan/Teal

	// Severity colors
	CriticalColor = lipgloss.Color("#FF0000") // Bright red
	HighColor     = lipgloss.Color("#FF6B6B") // Red/Orange
	MediumColor   = lipgloss.Color("#FFD93D") // Yellow
	LowColor      = lipgloss.Color("#6BCB77") // Green
	InfoColor     = lipgloss.Color("#4D96FF") // Blue

	// Status colors
	Success = lipgloss.Color("#00D26A")
	Warning = lipgloss.Color("#FFB800")
	Error   = lipgloss.Color("#FF3838")
	Muted   = lipgloss.Color("#6B7280")
)

// Pre-configured styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(Primary).
			Padding(0, 1)

	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			MarginTop(1)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	DividerStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// SeverityStyle returns the badge style for a severity tier.
func SeverityStyle(sev finding.Severity) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch sev {
	case finding.Critical:
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(CriticalColor)
	case finding.High:
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(HighColor)
	case finding.Medium:
		return base.Foreground(lipgloss.Color("#000000")).Background(MediumColor)
	case finding.Low:
		return base.Foreground(lipgloss.Color("#000000")).Background(LowColor)
	case finding.Info:
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(InfoColor)
	default:
		return base.Foreground(Muted)
	}
}
