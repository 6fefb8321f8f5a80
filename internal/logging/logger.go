// Package logging wraps charmbracelet/log for gosniff. Commands build a
// logger once and hand it down through context.Context; library packages
// never write to stderr on their own.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Prefix marks user-facing messages from commands such as init.
const Prefix = "gosniff"

//nolint:gochecknoglobals // Process-wide fallback for callers without a context logger.
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// New creates a stderr logger at level: "debug", "info", "warn" (or
// "warning") and "error", in any case. Anything else means info.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	switch parsed, err := log.ParseLevel(level); {
	case err != nil, parsed == log.FatalLevel:
		return log.InfoLevel
	default:
		return parsed
	}
}

// Default returns the process-wide logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// NewInteractive creates the logger commands use for user-facing messages:
// info level, prefixed so messages stand apart from reports.
func NewInteractive() *log.Logger {
	logger := New("info")
	logger.SetPrefix(Prefix)
	return logger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	// Consume the lazy initialiser so it cannot replace logger later.
	defaultLoggerOnce.Do(func() {})
	defaultLogger = logger
}

// SetLevel changes the level of the process-wide logger; --debug uses it.
func SetLevel(level string) {
	getDefaultLogger().SetLevel(parseLevel(level))
}
