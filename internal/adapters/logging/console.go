// Package logging implements ports.Logger for the terminal: severity-labeled
// text lines for operators and JSON lines for log collectors.
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
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/tui/ui"
)

// sink is the writer shared by a logger and everything derived from it.
type sink struct {
	mu  sync.Mutex
	out io.Writer
}

func (s *sink) writeLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, line+"\n")
}

// ConsoleLogger writes one line per message.
type ConsoleLogger struct {
	sink   *sink
	mu     sync.RWMutex
	level  ports.Level
	fields []ports.Field
	styles ui.Styles

	jsonFormat   bool
	includeTime  bool
	includeLevel bool
}

// ConsoleLoggerOption configures a ConsoleLogger.
type ConsoleLoggerOption func(*ConsoleLogger)

// WithOutput sets the destination (default os.Stdout).
func WithOutput(w io.Writer) ConsoleLoggerOption {
	return func(l *ConsoleLogger) { l.sink.out = w }
}

// WithLevel sets the minimum level (default Info).
func WithLevel(level ports.Level) ConsoleLoggerOption {
	return func(l *ConsoleLogger) { l.level = level }
}

// WithJSONFormat switches to one JSON object per line.
func WithJSONFormat(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) { l.jsonFormat = enabled }
}

// WithTimestamp prefixes entries with the time.
func WithTimestamp(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) { l.includeTime = enabled }
}

// WithLevelLabel toggles the [LEVEL] label.
func WithLevelLabel(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) { l.includeLevel = enabled }
}

// WithColor toggles colored labels.
func WithColor(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.styles = ui.PlainStyles()
		if enabled {
			l.styles = ui.DefaultStyles()
		}
	}
}

// NewConsoleLogger creates a ConsoleLogger.
func NewConsoleLogger(opts ...ConsoleLoggerOption) *ConsoleLogger {
	l := &ConsoleLogger{
		sink:         &sink{out: os.Stdout},
		level:        ports.LevelInfo,
		styles:       ui.DefaultStyles(),
		includeLevel: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Debug logs at debug level.
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelDebug, msg, fields)
}

// Info logs at info level.
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelInfo, msg, fields)
}

// Success logs a completed step.
func (l *ConsoleLogger) Success(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelSuccess, msg, fields)
}

// Warn logs at warning level.
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelWarn, msg, fields)
}

// Error logs at error level.
func (l *ConsoleLogger) Error(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelError, msg, fields)
}

// With returns a logger that adds fields to every entry and writes to the same sink.
func (l *ConsoleLogger) With(fields ...ports.Field) ports.Logger {
	return &ConsoleLogger{
		sink:         l.sink,
		level:        l.Level(),
		fields:       join(l.fields, fields),
		styles:       l.styles,
		jsonFormat:   l.jsonFormat,
		includeTime:  l.includeTime,
		includeLevel: l.includeLevel,
	}
}

// Level returns the minimum level.
func (l *ConsoleLogger) Level() ports.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetLevel changes the minimum level of this logger only.
func (l *ConsoleLogger) SetLevel(level ports.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *ConsoleLogger) log(_ context.Context, level ports.Level, msg string, fields []ports.Field) {
	threshold := l.Level()
	if level < threshold {
		return
	}

	all := join(l.fields, fields)
	if l.jsonFormat {
		if line, ok := l.jsonLine(level, msg, all); ok {
			l.sink.writeLine(line)
		}
		return
	}
	l.sink.writeLine(l.textLine(level, msg, all, threshold <= ports.LevelDebug))
}

func (l *ConsoleLogger) jsonLine(level ports.Level, msg string, fields []ports.Field) (string, bool) {
	entry := make(map[string]any, len(fields)+3)
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			entry[f.Key] = err.Error()
		} else {
			entry[f.Key] = f.Value
		}
	}
	entry["msg"] = msg
	if l.includeLevel {
		entry["level"] = level.String()
	}
	if l.includeTime {
		entry["time"] = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// textLine renders fields only when the logger is at debug level.
func (l *ConsoleLogger) textLine(level ports.Level, msg string, fields []ports.Field, withFields bool) string {
	var b strings.Builder
	if l.includeTime {
		b.WriteString(time.Now().Format("15:04:05 "))
	}
	if l.includeLevel {
		b.WriteString(l.labelStyle(level).Render("[" + level.String() + "]"))
		b.WriteByte(' ')
	}
	b.WriteString(msg)

	if withFields {
		for _, f := range fields {
			value := fmt.Sprint(f.Value)
			if strings.ContainsAny(value, " \t\n\"") {
				value = fmt.Sprintf("%q", value)
			}
			fmt.Fprintf(&b, " %s=%s", f.Key, value)
		}
	}
	return b.String()
}

func (l *ConsoleLogger) labelStyle(level ports.Level) lipgloss.Style {
	switch level {
	case ports.LevelDebug:
		return l.styles.Debug
	case ports.LevelSuccess:
		return l.styles.Success
	case ports.LevelWarn:
		return l.styles.Warning
	case ports.LevelError:
		return l.styles.Error
	default:
		return l.styles.Info
	}
}

func join(a, b []ports.Field) []ports.Field {
	out := make([]ports.Field, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

var _ ports.Logger = (*ConsoleLogger)(nil)
