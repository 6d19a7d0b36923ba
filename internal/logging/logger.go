// Package logging configures the shared logger for gdformat commands.
//
// Everything logs to stderr so that formatted source, diffs and reports keep
// stdout to themselves.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	defaultLogger *log.Logger
	defaultOnce   sync.Once
)

// Default returns the shared logger, creating it on first use.
func Default() *log.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(os.Stderr, "info")
	})
	return defaultLogger
}

// SetDefault replaces the shared logger.
func SetDefault(logger *log.Logger) {
	// Trip the once so a later Default call cannot overwrite logger.
	defaultOnce.Do(func() {})
	defaultLogger = logger
}

// SetLevel adjusts the shared logger's level.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

// New creates a logger writing to w at the given level. Runs are short and
// interactive, so timestamps and caller locations are left off.
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

// parseLevel maps a level name to its log.Level. Unknown names fall back to
// info rather than erroring: a bad --debug interaction should never stop a
// formatting run.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
