// Package output provides terminal output utilities: logging, styles,
// tables and manifest writers.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the global logger instance.
var logger *log.Logger

func init() {
	logger = log.New(os.Stderr)
}

// LogConfig holds the logging settings resolved from flags and config.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and timestamps.
	Verbose bool

	// Timestamps overrides timestamp display. nil means on.
	Timestamps *bool
}

// SetupLogging configures the global logger.
func SetupLogging(cfg LogConfig) {
	SetupLoggingTo(os.Stderr, cfg)
}

// SetupLoggingTo configures the global logger to write to w.
func SetupLoggingTo(w io.Writer, cfg LogConfig) {
	opts := log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: cfg.Timestamps == nil || *cfg.Timestamps,
		TimeFormat:      "15:04:05",
	}
	if cfg.Verbose {
		opts.Level = log.DebugLevel
		opts.ReportTimestamp = true
		opts.ReportCaller = true
	}
	logger = log.NewWithOptions(w, opts)
}

// Logger returns the global logger, e.g. to hand to the asset scheduler.
func Logger() *log.Logger {
	return logger
}

// ScopedLogger returns a child logger whose prefix names the scope, such
// as a theme or a listen address.
func ScopedLogger(scope string) *log.Logger {
	l := logger.WithPrefix(StyleDim.Render(scope))
	l.SetLevel(logger.GetLevel())
	return l
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...any) {
	logger.Error(msg, keyvals...)
}
