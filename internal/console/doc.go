// Package console renders vbump's CLI output: lipgloss-styled status lines
// for the default run, and a stable key=value listing for --list.
//
// # Usage
//
//	console.PrintBumpSummary(os.Stdout, "minor", "1.2.0", "1.3.0")
//	console.List(os.Stdout, map[string]string{"current_version": "1.2.0"})
//
// # Color Control
//
// Disable styling via --no-color or NO_COLOR:
//
//	console.SetNoColor(true)
package console
