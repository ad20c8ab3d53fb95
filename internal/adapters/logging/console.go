// Package logging provides console implementations of bdd.Logger.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/babybehave/bdd"
)

var levelStyles = map[bdd.Level]lipgloss.Style{
	bdd.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	bdd.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	bdd.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	bdd.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// ConsoleLogger writes engine events as text lines or JSON objects.
type ConsoleLogger struct {
	mu           *sync.Mutex
	out          io.Writer
	level        bdd.Level
	fields       []bdd.Field
	jsonFormat   bool
	includeTime  bool
	includeLevel bool
	color        bool
	now          func() time.Time
}

// Option configures a ConsoleLogger.
type Option func(*ConsoleLogger)

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(l *ConsoleLogger) {
		l.out = w
	}
}

// WithLevel sets the minimum level (default: Info).
func WithLevel(level bdd.Level) Option {
	return func(l *ConsoleLogger) {
		l.level = level
	}
}

// WithJSONFormat writes one JSON object per entry.
func WithJSONFormat(enabled bool) Option {
	return func(l *ConsoleLogger) {
		l.jsonFormat = enabled
	}
}

// WithTimestamp includes the time in each entry.
func WithTimestamp(enabled bool) Option {
	return func(l *ConsoleLogger) {
		l.includeTime = enabled
	}
}

// WithLevelLabel includes the level in each entry.
func WithLevelLabel(enabled bool) Option {
	return func(l *ConsoleLogger) {
		l.includeLevel = enabled
	}
}

// WithColor colors level labels in text output. JSON output is never colored.
func WithColor(enabled bool) Option {
	return func(l *ConsoleLogger) {
		l.color = enabled
	}
}

// NewConsoleLogger creates a ConsoleLogger.
func NewConsoleLogger(opts ...Option) *ConsoleLogger {
	l := &ConsoleLogger{
		mu:           &sync.Mutex{},
		out:          os.Stderr,
		level:        bdd.LevelInfo,
		includeTime:  true,
		includeLevel: true,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields ...bdd.Field) {
	l.log(ctx, bdd.LevelDebug, msg, fields)
}

func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields ...bdd.Field) {
	l.log(ctx, bdd.LevelInfo, msg, fields)
}

func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields ...bdd.Field) {
	l.log(ctx, bdd.LevelWarn, msg, fields)
}

func (l *ConsoleLogger) Error(ctx context.Context, msg string, fields ...bdd.Field) {
	l.log(ctx, bdd.LevelError, msg, fields)
}

// With returns a logger sharing the output and lock, with extra fields.
func (l *ConsoleLogger) With(fields ...bdd.Field) bdd.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	child := *l
	child.fields = append(append([]bdd.Field{}, l.fields...), fields...)
	return &child
}

// Level returns the minimum level.
func (l *ConsoleLogger) Level() bdd.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel sets the minimum level of this logger only.
func (l *ConsoleLogger) SetLevel(level bdd.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *ConsoleLogger) log(_ context.Context, level bdd.Level, msg string, fields []bdd.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	all := make([]bdd.Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)

	if l.jsonFormat {
		l.writeJSON(level, msg, all)
	} else {
		l.writeText(level, msg, all)
	}
}

func (l *ConsoleLogger) writeJSON(level bdd.Level, msg string, fields []bdd.Field) {
	entry := make(map[string]any, len(fields)+3)

	if l.includeTime {
		entry["time"] = l.now().UTC().Format(time.RFC3339)
	}
	if l.includeLevel {
		entry["level"] = level.String()
	}
	entry["msg"] = msg

	for _, f := range fields {
		entry[f.Key] = jsonValue(f.Value)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = fmt.Fprintln(l.out, string(data))
}

func (l *ConsoleLogger) writeText(level bdd.Level, msg string, fields []bdd.Field) {
	var b strings.Builder

	if l.includeTime {
		b.WriteString(l.now().Format("15:04:05"))
		b.WriteByte(' ')
	}
	if l.includeLevel {
		label := "[" + level.String() + "]"
		if l.color {
			label = levelStyles[level].Render(label)
		}
		b.WriteString(label)
		b.WriteByte(' ')
	}
	b.WriteString(msg)

	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}

	_, _ = fmt.Fprintln(l.out, b.String())
}

// jsonValue renders errors and Stringers (durations, outcomes) as text.
func jsonValue(v any) any {
	switch x := v.(type) {
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return v
	}
}

var _ bdd.Logger = (*ConsoleLogger)(nil)
