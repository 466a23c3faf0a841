// Package logger provides the verbose logger used across leasefill.
// A Logger is passed to each component at construction. Debug, Info and
// Section lines are printed only in verbose mode; Warn and Error always are.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes prefixed diagnostic lines to an output writer.
// It is safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	output  io.Writer
}

// New returns a logger writing to w. A nil w writes to os.Stderr.
func New(w io.Writer, verbose bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{verbose: verbose, output: w}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New(io.Discard, false)
}

// SetVerbose enables or disables verbose logging.
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	l.printf(true, "[DEBUG] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	l.printf(true, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func (l *Logger) Info(format string, args ...any) {
	l.printf(true, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.printf(false, "[WARN] "+format+"\n", args...)
}

// Error prints an error message.
func (l *Logger) Error(format string, args ...any) {
	l.printf(false, "[ERROR] "+format+"\n", args...)
}

func (l *Logger) printf(verboseOnly bool, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if verboseOnly && !l.verbose {
		return
	}
	fmt.Fprintf(l.output, format, args...)
}
