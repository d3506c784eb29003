// Package logging provides structured logging functionality.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides structured logging capabilities.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new logger with the specified level writing to stderr.
// Stdout is reserved for the MCP stream.
func NewLogger(level string) *Logger {
	return NewLoggerWithWriter(os.Stderr, level)
}

// NewLoggerWithWriter creates a new logger with the specified level writing to w.
func NewLoggerWithWriter(w io.Writer, level string) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return NewLoggerWithWriter(io.Discard, "error")
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithTool returns a logger with tool information.
func (l *Logger) WithTool(toolName string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("tool", toolName)),
	}
}

// WithCall returns a logger tagged with a single tool call id.
func (l *Logger) WithCall(callID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("call", callID)),
	}
}

// Debug logs a debug message with optional arguments.
func (l *Logger) Debug(msg string, args ...any) {
	l.Logger.Debug(msg, args...)
}

// Info logs an info message with optional arguments.
func (l *Logger) Info(msg string, args ...any) {
	l.Logger.Info(msg, args...)
}

// Warn logs a warning message with optional arguments.
func (l *Logger) Warn(msg string, args ...any) {
	l.Logger.Warn(msg, args...)
}

// Error logs an error message with optional arguments.
func (l *Logger) Error(msg string, args ...any) {
	l.Logger.Error(msg, args...)
}
