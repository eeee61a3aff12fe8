package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Version information - these can be overridden at build time via ldflags:
// go build -ldflags "-X github.com/dmsmcp/dmsmcp/pkg/ui.Version=1.0.0"
var (
	Version   = "1.2.0"
	BuildDate = "2026-08-26"
	Commit    = "dev"
)

// UserAgent returns the identification string used in startup log lines.
func UserAgent() string {
	return fmt.Sprintf("dms-mcp/%s", Version)
}

// Global UI state
var (
	silentMode  bool
	noColorMode bool
	uiMu        sync.RWMutex
)

// SetSilent enables or disables silent mode (suppresses most output)
func SetSilent(silent bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	silentMode = silent
}

// IsSilent returns whether silent mode is enabled
func IsSilent() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return silentMode
}

// SetNoColor disables colored output
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsNoColor returns whether color is disabled
func IsNoColor() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return noColorMode
}

// ASCII art banner
const bannerArt = `
         __
    ____/ /___ ___  _____      ____ ___  _________
   / __  / __ '__ \/ ___/_____/ __ '__ \/ ___/ __ \
  / /_/ / / / / / (__  )_____/ / / / / / /__/ /_/ /
  \__,_/_/ /_/ /_/____/     /_/ /_/ /_/\___/ .___/
                                          /_/
`

// PrintBanner prints the application banner with version info. Everything
// goes to stderr so stdout stays clean for the stdio MCP transport.
func PrintBanner() {
	if IsSilent() {
		return
	}
	for _, line := range strings.Split(bannerArt, "\n") {
		if line != "" {
			fmt.Fprintln(os.Stderr, BannerStyle.Render(line))
		}
	}
	fmt.Fprintf(os.Stderr, "                    v%s\n\n", VersionStyle.Render(Version))
}

// PrintVersion prints the full version line.
func PrintVersion() {
	fmt.Fprintf(os.Stderr, "dms-mcp v%s (built %s, commit %s)\n", Version, BuildDate, Commit)
}

// PrintSuccess prints a success message (to stderr)
func PrintSuccess(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(os.Stderr, SuccessStyle.Render("  [+] "+message))
}

// PrintError prints an error message (to stderr)
func PrintError(message string) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("  [X] "+message))
}

// PrintWarning prints a warning message (to stderr)
func PrintWarning(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(os.Stderr, WarningStyle.Render("  [!] "+message))
}

// PrintInfo prints an info message (to stderr)
func PrintInfo(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintf(os.Stderr, "  %s %s\n", MutedStyle.Render("*"), message)
}
