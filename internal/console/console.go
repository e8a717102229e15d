// Package console renders vbump's human-facing output: styled status lines
// for the default run and a plain key=value listing for --list, adapted
// from the teacher's internal/printer styling conventions.
package console

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// SetNoColor disables styled output, honoring the --no-color flag and the
// NO_COLOR environment variable the same way the teacher's printer does.
func SetNoColor(disabled bool) {
	if disabled || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Faint returns text with faint styling.
func Faint(text string) string { return faintStyle.Render(text) }

// Bold returns text with bold styling.
func Bold(text string) string { return boldStyle.Render(text) }

// Success returns text with success (green) styling.
func Success(text string) string { return successStyle.Render(text) }

// Error returns text with error (red) styling.
func Error(text string) string { return errorStyle.Render(text) }

// Warning returns text with warning (yellow) styling.
func Warning(text string) string { return warningStyle.Render(text) }

// Info returns text with info (cyan) styling.
func Info(text string) string { return infoStyle.Render(text) }

// PrintBumpSummary writes the default human-readable summary of a bump
// operation to w: which part was bumped, and the old/new version strings.
func PrintBumpSummary(w io.Writer, part, oldVersion, newVersion string) {
	fmt.Fprintf(w, "%s %s %s %s %s\n",
		Bold(part), Faint("bump:"), Faint(oldVersion), Bold("->"), Success(newVersion))
}

// PrintFilesRewritten writes one faint line per file that was rewritten.
func PrintFilesRewritten(w io.Writer, paths []string) {
	for _, p := range paths {
		fmt.Fprintf(w, "%s %s\n", Faint("rewrote"), p)
	}
}

// PrintDryRunNotice writes the standard dry-run banner.
func PrintDryRunNotice(w io.Writer) {
	fmt.Fprintln(w, Warning("dry run: no files were modified"))
}

// List writes a stable, machine-readable key=value listing to w, one pair
// per line sorted by key, the format --list produces (spec.md §6).
func List(w io.Writer, pairs map[string]string) {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s=%s\n", k, pairs[k])
	}
}
