package bdd

import (
	"context"
	"strings"
)

// Level is the severity of a log entry.
type Level int

const (
	// LevelDebug is for per-step detail.
	LevelDebug Level = iota
	// LevelInfo is for scenario-level progress.
	LevelInfo
	// LevelWarn is for unverified conditions.
	LevelWarn
	// LevelError is for exceptions raised by setup or steps.
	LevelError
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// F creates a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger receives structured engine events. It is separate from the trace,
// which is always written to the scenario output.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// With returns a Logger that adds fields to every entry.
	With(fields ...Field) Logger

	Level() Level
	SetLevel(level Level)
}

// NopLogger discards everything. It is the default scenario logger.
type NopLogger struct {
	level Level
}

// NewNopLogger creates a NopLogger.
func NewNopLogger() *NopLogger {
	return &NopLogger{level: LevelInfo}
}

func (l *NopLogger) Debug(_ context.Context, _ string, _ ...Field) {}
func (l *NopLogger) Info(_ context.Context, _ string, _ ...Field)  {}
func (l *NopLogger) Warn(_ context.Context, _ string, _ ...Field)  {}
func (l *NopLogger) Error(_ context.Context, _ string, _ ...Field) {}

// With returns the receiver.
func (l *NopLogger) With(_ ...Field) Logger {
	return l
}

// Level returns the configured level.
func (l *NopLogger) Level() Level {
	return l.level
}

// SetLevel sets the level.
func (l *NopLogger) SetLevel(level Level) {
	l.level = level
}

var _ Logger = (*NopLogger)(nil)
