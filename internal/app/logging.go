package app

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes leveled diagnostic messages for one invocation.
type Logger struct {
	mu        sync.Mutex
	verbosity Verbosity
	output    io.Writer
	prefix    string
}

// NewLogger creates a logger gated by the given verbosity. A nil output
// defaults to os.Stderr.
func NewLogger(verbosity Verbosity, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		verbosity: verbosity,
		output:    output,
		prefix:    "caide",
	}
}

// Verbosity returns the logger's verbosity.
func (l *Logger) Verbosity() Verbosity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbosity
}

// SetOutput redirects log output.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Info logs a progress message, shown at Normal verbosity and above.
func (l *Logger) Info(msg string, args ...any) {
	l.log(Normal, "", msg, args...)
}

// Debug logs an internal diagnostic, shown only at Debug verbosity.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, "debug", msg, args...)
}

// Error logs a failure, shown at Normal verbosity and above.
func (l *Logger) Error(msg string, args ...any) {
	l.log(Normal, "error", msg, args...)
}

func (l *Logger) log(min Verbosity, tag, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.verbosity < min {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	line := l.prefix
	if tag != "" {
		line += " [" + tag + "]"
	}
	line += ": " + msg + "\n"
	_, _ = io.WriteString(l.output, line)
}
