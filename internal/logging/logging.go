// Package logging builds the structured loggers used by the servers and CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to stderr.
func New(prefix, level string) *log.Logger {
	return NewWriter(os.Stderr, prefix, level)
}

// NewWriter returns a timestamped logger writing to w. Unknown levels fall
// back to info.
func NewWriter(w io.Writer, prefix, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps debug, info, warn and error to log levels. Anything else
// is info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Discard returns a logger that drops everything. Handy for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
