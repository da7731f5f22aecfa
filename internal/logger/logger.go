package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Logger writes component-tagged diagnostics to stderr. Debug and Info
// are gated on the verbose callback so request tracing stays silent
// unless the user asked for it.
type Logger struct {
	component string
	verbose   func() bool
	writer    io.Writer
}

// Field is a key-value pair appended to a log line.
type Field struct {
	Key   string
	Value any
}

// New creates a logger. A nil verbose callback means never verbose.
func New(component string, verbose func() bool) *Logger {
	return &Logger{
		component: component,
		verbose:   verbose,
		writer:    os.Stderr,
	}
}

// WithComponent returns a logger sharing the same gate and writer under
// a different component tag.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		verbose:   l.verbose,
		writer:    l.writer,
	}
}

func (l *Logger) isVerbose() bool {
	return l.verbose != nil && l.verbose()
}

// Debug logs only when verbose.
func (l *Logger) Debug(msg string, fields ...Field) {
	if l.isVerbose() {
		l.log("DEBUG", msg, fields)
	}
}

// Info logs only when verbose.
func (l *Logger) Info(msg string, fields ...Field) {
	if l.isVerbose() {
		l.log("INFO", msg, fields)
	}
}

// Warn always logs.
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log("WARN", msg, fields)
}

// Error always logs.
func (l *Logger) Error(msg string, fields ...Field) {
	l.log("ERROR", msg, fields)
}

func (l *Logger) log(level, msg string, fields []Field) {
	timestamp := time.Now().Format("15:04:05.000")
	component := l.component
	if component == "" {
		component = "main"
	}

	var fieldsStr string
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
		}
		fieldsStr = " [" + strings.Join(parts, " ") + "]"
	}

	fmt.Fprintf(l.writer, "[%s] %s [%s] %s%s\n", timestamp, level, component, msg, fieldsStr)
}

// Helpers for common field types.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d.Round(time.Millisecond)}
}

func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
