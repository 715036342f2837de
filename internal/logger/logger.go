// Package logger provides verbose logging for the kwscope CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow dataset loads and the
// filter and sort pipeline. Output never goes to stdout, so JSON output
// stays clean.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base              = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:      log.DebugLevel,
		TimeFormat: time.Kitchen,
	})
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = newLogger(w)
}

// Output returns the current log writer.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

// With returns a child logger carrying a prefix, for adapters that log
// on their own (the API client, cache backends). It always writes,
// regardless of verbose mode, at warn level and above.
func With(prefix string) *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base.WithPrefix(prefix)
	if !verbose {
		l.SetLevel(log.WarnLevel)
	}
	return l
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		base.Debugf(format, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		base.Printf("=== %s ===", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		base.Infof(format, args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		base.Warnf(format, args...)
	}
}
