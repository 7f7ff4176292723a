// Package log is a thin leveled wrapper over slog with a cheap guard for
// trace logging on hot paths.
package log

import (
	"context"
	"io"
	"log/slog"
)

// Logger is a leveled logger. Filtering happens here rather than in the
// handler, so the level can be changed at runtime.
type Logger struct {
	slog  *slog.Logger
	level Level
}

// Tag marks values that log under a stable name.
type Tag interface {
	String() string
}

// NewText creates a logger writing logfmt-style text to w.
func NewText(w io.Writer) *Logger {
	return newLogger(slog.NewTextHandler(w, handlerOptions()))
}

// NewJson creates a logger writing JSON to w.
func NewJson(w io.Writer) *Logger {
	return newLogger(slog.NewJSONHandler(w, handlerOptions()))
}

func newLogger(h slog.Handler) *Logger {
	return &Logger{slog: slog.New(h), level: LevelInfo}
}

func handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: slog.Level(LevelTrace),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				a.Value = slog.StringValue(Level(a.Value.Any().(slog.Level)).String())
			}
			return a
		},
	}
}

// SetLevel sets the logging level and returns the previous one.
func (l *Logger) SetLevel(level Level) (prev Level) {
	prev = l.level
	l.level = level
	return prev
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) log(t any, level Level, msg string, v ...any) {
	if l.level > level {
		return
	}
	if t != nil {
		if tag, ok := t.(Tag); ok {
			v = append([]any{"tag", tag.String()}, v...)
		} else {
			v = append([]any{"tag", t}, v...)
		}
	}
	l.slog.Log(context.Background(), slog.Level(level), msg, v...)
}

// Trace level message.
func (l *Logger) Trace(t any, msg string, v ...any) {
	l.log(t, LevelTrace, msg, v...)
}

// Debug level message.
func (l *Logger) Debug(t any, msg string, v ...any) {
	l.log(t, LevelDebug, msg, v...)
}

// Info level message.
func (l *Logger) Info(t any, msg string, v ...any) {
	l.log(t, LevelInfo, msg, v...)
}

// Warn level message.
func (l *Logger) Warn(t any, msg string, v ...any) {
	l.log(t, LevelWarn, msg, v...)
}

// Error level message.
func (l *Logger) Error(t any, msg string, v ...any) {
	l.log(t, LevelError, msg, v...)
}
