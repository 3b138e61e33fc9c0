package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// LogEntry is a message captured by Logger.
type LogEntry struct {
	Level   ports.Level
	Message string
	Fields  []ports.Field
}

// Logger is a ports.Logger that records entries in memory.
type Logger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []ports.Field
	level   ports.Level
}

// NewLogger creates a recording Logger at debug level.
func NewLogger() *Logger {
	return &Logger{
		mu:      &sync.Mutex{},
		entries: &[]LogEntry{},
		level:   ports.LevelDebug,
	}
}

func (l *Logger) record(level ports.Level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all := append(append([]ports.Field{}, l.fields...), fields...)
	*l.entries = append(*l.entries, LogEntry{Level: level, Message: msg, Fields: all})
}

// Debug records a debug entry.
func (l *Logger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelDebug, msg, fields)
}

// Info records an info entry.
func (l *Logger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelInfo, msg, fields)
}

// Success records a success entry.
func (l *Logger) Success(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelSuccess, msg, fields)
}

// Warn records a warning entry.
func (l *Logger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelWarn, msg, fields)
}

// Error records an error entry.
func (l *Logger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelError, msg, fields)
}

// With returns a Logger sharing the same entry log with extra fields.
func (l *Logger) With(fields ...ports.Field) ports.Logger {
	return &Logger{
		mu:      l.mu,
		entries: l.entries,
		fields:  append(append([]ports.Field{}, l.fields...), fields...),
		level:   l.level,
	}
}

// Level returns the minimum level.
func (l *Logger) Level() ports.Level {
	return l.level
}

// SetLevel sets the minimum level.
func (l *Logger) SetLevel(level ports.Level) {
	l.level = level
}

// Entries returns a copy of all recorded entries.
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(*l.entries))
	copy(out, *l.entries)
	return out
}

// Messages returns the messages recorded at level.
func (l *Logger) Messages(level ports.Level) []string {
	var out []string
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any entry at level contains substr.
func (l *Logger) Contains(level ports.Level, substr string) bool {
	for _, msg := range l.Messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// Ensure Logger implements ports.Logger.
var _ ports.Logger = (*Logger)(nil)
