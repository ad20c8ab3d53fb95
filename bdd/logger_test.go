package bdd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level  Level
	msg    string
	fields map[string]any
}

// recordingLogger keeps every entry, base fields included.
type recordingLogger struct {
	entries *[]logEntry
	base    []Field
	level   Level
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{entries: &[]logEntry{}}
}

func (l *recordingLogger) record(level Level, msg string, fields []Field) {
	all := make(map[string]any)
	for _, f := range append(append([]Field{}, l.base...), fields...) {
		all[f.Key] = f.Value
	}
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, fields: all})
}

func (l *recordingLogger) Debug(_ context.Context, msg string, fields ...Field) {
	l.record(LevelDebug, msg, fields)
}

func (l *recordingLogger) Info(_ context.Context, msg string, fields ...Field) {
	l.record(LevelInfo, msg, fields)
}

func (l *recordingLogger) Warn(_ context.Context, msg string, fields ...Field) {
	l.record(LevelWarn, msg, fields)
}

func (l *recordingLogger) Error(_ context.Context, msg string, fields ...Field) {
	l.record(LevelError, msg, fields)
}

func (l *recordingLogger) With(fields ...Field) Logger {
	return &recordingLogger{entries: l.entries, base: append(append([]Field{}, l.base...), fields...), level: l.level}
}

func (l *recordingLogger) Level() Level          { return l.level }
func (l *recordingLogger) SetLevel(level Level) { l.level = level }

func TestScenario_Logging(t *testing.T) {
	logger := newRecordingLogger()

	result, err := GivenA(aCounter,
		WithOutput(&bytes.Buffer{}),
		WithPolicy(NewCollectPolicy()),
		WithLogger(logger),
	).
		With(alwaysTrue).
		When(alwaysFalse).
		Then(func(_ *Context) (bool, error) { return false, errors.New("bad") }).
		Run()
	require.NoError(t, err)

	entries := *logger.entries
	require.Len(t, entries, 5)

	levels := make([]Level, len(entries))
	for i, e := range entries {
		levels[i] = e.level
		assert.Equal(t, "aCounter", e.fields["scenario"])
		assert.Equal(t, result.RunID, e.fields["run_id"])
	}
	assert.Equal(t, []Level{LevelInfo, LevelDebug, LevelWarn, LevelError, LevelInfo}, levels)

	assert.Equal(t, "When", entries[2].fields["kind"])
	assert.Equal(t, "not_verified", entries[2].fields["outcome"])
	assert.Equal(t, false, entries[4].fields["passed"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"", LevelInfo, true},
		{"Warning", LevelWarn, true},
		{"error", LevelError, true},
		{"loud", LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	assert.Same(t, logger, logger.With(F("k", "v")))
	assert.Equal(t, LevelInfo, logger.Level())
	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.Level())
	assert.Equal(t, "UNKNOWN", Level(9).String())
}
