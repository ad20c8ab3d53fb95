package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/babybehave/bdd"
)

func newTestLogger(buf *bytes.Buffer, opts ...Option) *ConsoleLogger {
	base := []Option{
		WithOutput(buf),
		WithLevel(bdd.LevelDebug),
		WithTimestamp(false),
	}
	return NewConsoleLogger(append(base, opts...)...)
}

func TestConsoleLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.Info(context.Background(), "scenario finished",
		bdd.F("scenario", "TwoNumbers"),
		bdd.F("passed", true),
	)

	assert.Equal(t, "[INFO] scenario finished scenario=TwoNumbers passed=true\n", buf.String())
}

func TestConsoleLogger_NoLevelLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithLevelLabel(false))

	logger.Warn(context.Background(), "condition not verified")

	assert.Equal(t, "condition not verified\n", buf.String())
}

func TestConsoleLogger_Timestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithTimestamp(true))
	logger.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 15, 0, time.Local) }

	logger.Info(context.Background(), "tick")

	assert.Equal(t, "09:30:15 [INFO] tick\n", buf.String())
}

func TestConsoleLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithJSONFormat(true))

	logger.Error(context.Background(), "step raised an exception",
		bdd.F("step", "ResultIs30"),
		bdd.F("error", errors.New("boom")),
		bdd.F("duration", 1500*time.Millisecond),
		bdd.F("outcome", bdd.OutcomeException),
		bdd.F("count", 2),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "step raised an exception", entry["msg"])
	assert.Equal(t, "ResultIs30", entry["step"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "1.5s", entry["duration"])
	assert.Equal(t, "exception", entry["outcome"])
	assert.InDelta(t, 2, entry["count"], 0)
	assert.NotContains(t, entry, "time")
}

func TestConsoleLogger_JSONIgnoresColor(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithJSONFormat(true), WithColor(true))

	logger.Warn(context.Background(), "x")

	assert.True(t, json.Valid(buf.Bytes()))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level bdd.Level
		want  []string
	}{
		{"debug", bdd.LevelDebug, []string{"d", "i", "w", "e"}},
		{"info", bdd.LevelInfo, []string{"i", "w", "e"}},
		{"warn", bdd.LevelWarn, []string{"w", "e"}},
		{"error", bdd.LevelError, []string{"e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newTestLogger(&buf, WithLevel(tt.level), WithLevelLabel(false))
			ctx := context.Background()

			logger.Debug(ctx, "d")
			logger.Info(ctx, "i")
			logger.Warn(ctx, "w")
			logger.Error(ctx, "e")

			assert.Equal(t, tt.want, strings.Fields(buf.String()))
		})
	}
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithLevelLabel(false))

	child := logger.With(bdd.F("scenario", "Oven"))
	child.Info(context.Background(), "a", bdd.F("step", "Wait"))
	logger.Info(context.Background(), "b")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a scenario=Oven step=Wait", lines[0])
	assert.Equal(t, "b", lines[1], "parent must not inherit child fields")
}

func TestConsoleLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithLevel(bdd.LevelError))
	ctx := context.Background()

	logger.Info(ctx, "hidden")
	assert.Zero(t, buf.Len())

	logger.SetLevel(bdd.LevelDebug)
	assert.Equal(t, bdd.LevelDebug, logger.Level())

	logger.Info(ctx, "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleLogger_DrivesScenario(t *testing.T) {
	var buf, trace bytes.Buffer
	logger := newTestLogger(&buf, WithJSONFormat(true), WithLevelLabel(true))

	sc := bdd.GivenA(func(ctx *bdd.Context) error {
		ctx.Set("x", 1)
		return nil
	}, bdd.WithName("logged"), bdd.WithOutput(&trace), bdd.WithLogger(logger), bdd.WithPolicy(bdd.NewCollectPolicy())).
		Step(bdd.KindPostcondition, "x is two", func(ctx *bdd.Context) (bool, error) {
			x, err := bdd.Get[int](ctx, "x")
			return x == 2, err
		})

	_, err := sc.Run()
	require.NoError(t, err)

	var sawWarn bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "logged", entry["scenario"])
		if entry["level"] == "WARN" {
			sawWarn = true
			assert.Equal(t, "x is two", entry["step"])
			assert.Equal(t, "not_verified", entry["outcome"])
		}
	}
	assert.True(t, sawWarn)
}
