package ui

import (
	"fmt"
	"io"

	"github.com/osintment/osintment/pkg/defaults"
)

const banner = `
  ____  _____ _____ _   _ _____                  _
 / __ \/ ____|_   _| \ | |_   _|                | |
| |  | | (___   | | |  \| | | |  _ __ ___   ___ | |_
| |  | |\___ \  | | | . | | | | | '_ ` + "`" + ` _ \ / _ \| __|
| |__| |____) |_| |_| |\  |_| |_| | | | | |  __/| |_
 \____/|_____/|_____|_| \_|_____|_| |_| |_|\___| \__|
`

// PrintBanner writes the tool banner and version. Silent runs skip it.
func PrintBanner(w io.Writer, noColor bool) {
	if noColor {
		fmt.Fprintln(w, banner)
		fmt.Fprintf(w, "  v%s - OSINT report generation\n\n", defaults.Version)
		return
	}
	fmt.Fprintln(w, BannerStyle.Render(banner))
	fmt.Fprintf(w, "  %s %s\n\n",
		VersionStyle.Render("v"+defaults.Version),
		StatLabelStyle.Render("- OSINT report generation"))
}
