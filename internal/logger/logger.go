// Package logger provides verbose logging for tmvis.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to show how each source was fetched and normalised.
// Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

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

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func emit(always bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit(false, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	emit(false, "\n=== ", "%s ===", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit(false, "[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit(false, "[WARN] ", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	emit(true, "[ERROR] ", format, args...)
}

// Scoped prefixes every message with a component name, e.g. a source id.
type Scoped struct {
	name string
}

// For returns a logger scoped to the named component.
func For(name string) Scoped {
	return Scoped{name: name}
}

// Debug prints a scoped message if verbose mode is enabled.
func (s Scoped) Debug(format string, args ...any) {
	emit(false, "[DEBUG] "+s.name+": ", format, args...)
}

// Info prints a scoped message if verbose mode is enabled.
func (s Scoped) Info(format string, args ...any) {
	emit(false, "[INFO] "+s.name+": ", format, args...)
}

// Warn prints a scoped warning if verbose mode is enabled.
func (s Scoped) Warn(format string, args ...any) {
	emit(false, "[WARN] "+s.name+": ", format, args...)
}
