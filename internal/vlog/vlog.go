// Package vlog is vbump's leveled logger: a thin wrapper over
// charmbracelet/log configured from the repeatable --verbose flag and
// NO_COLOR, kept distinct from internal/console's machine-readable --list
// output so scripts parsing stdout are never interleaved with log lines.
package vlog

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Level:           log.WarnLevel,
})

// SetVerbosity maps the number of times --verbose was supplied to a log
// level: 0 warnings-only, 1 info, 2+ debug.
func SetVerbosity(count int) {
	switch {
	case count >= 2:
		logger.SetLevel(log.DebugLevel)
	case count == 1:
		logger.SetLevel(log.InfoLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
}

// SetNoColor disables ANSI styling in log output, honoring NO_COLOR or
// --no-color the way internal/console does for its own output. charmbracelet/log
// derives its color support from the environment, so --no-color is
// propagated by setting NO_COLOR for the remainder of the process.
func SetNoColor(disabled bool) {
	if disabled {
		os.Setenv("NO_COLOR", "1")
	}
}

func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
