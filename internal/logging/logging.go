// Package logging wraps slog and zap behind one small interface so the SSC
// clients, servers and renderers log the same way whatever the backend.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Field is one key/value attached to a log record.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field        { return Field{Key: key, Value: value} }
func Int(key string, value int) Field       { return Field{Key: key, Value: value} }
func Float(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err logs err under "error"; nil becomes an empty string.
func Err(err error) Field {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Field{Key: "error", Value: msg}
}

// Logger is implemented by the slog and zap backends and by Noop.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Config selects the backend and its output.
type Config struct {
	Level     string // debug, info, warn or error; anything else is info
	Format    string // "json" or text; zap always writes json
	Backend   string // "zap" or slog
	AddSource bool
	Output    io.Writer // nil means stderr
}

// New builds the backend named by cfg.Backend.
func New(cfg Config) Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if strings.EqualFold(cfg.Backend, "zap") {
		return newZap(cfg, cfg.Output)
	}
	return newSlog(cfg)
}

// NewFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_BACKEND. Logs go to
// stderr so stdout stays free for rendered results.
func NewFromEnv() Logger {
	return New(Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Backend: os.Getenv("LOG_BACKEND"),
	})
}

// levelName folds the accepted spellings of a level onto
// debug, info, warn or error.
func levelName(level string) string {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "debug", "error":
		return l
	case "warn", "warning":
		return "warn"
	default:
		return "info"
	}
}

type slogger struct {
	l *slog.Logger
}

var slogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func newSlog(cfg Config) Logger {
	opts := &slog.HandlerOptions{Level: slogLevels[levelName(cfg.Level)], AddSource: cfg.AddSource}
	if strings.EqualFold(cfg.Format, "json") {
		return &slogger{l: slog.New(slog.NewJSONHandler(cfg.Output, opts))}
	}
	return &slogger{l: slog.New(slog.NewTextHandler(cfg.Output, opts))}
}

func (s *slogger) log(ctx context.Context, lvl slog.Level, msg string, fields []Field) {
	s.l.LogAttrs(ctx, lvl, msg, attrs(fields)...)
}

func (s *slogger) Debug(ctx context.Context, msg string, f ...Field) { s.log(ctx, slog.LevelDebug, msg, f) }
func (s *slogger) Info(ctx context.Context, msg string, f ...Field)  { s.log(ctx, slog.LevelInfo, msg, f) }
func (s *slogger) Warn(ctx context.Context, msg string, f ...Field)  { s.log(ctx, slog.LevelWarn, msg, f) }
func (s *slogger) Error(ctx context.Context, msg string, f ...Field) { s.log(ctx, slog.LevelError, msg, f) }

func (s *slogger) With(fields ...Field) Logger {
	as := attrs(fields)
	args := make([]any, len(as))
	for i, a := range as {
		args[i] = a
	}
	return &slogger{l: s.l.With(args...)}
}

func attrs(fields []Field) []slog.Attr {
	out := make([]slog.Attr, len(fields))
	for i, f := range fields {
		out[i] = slog.Any(f.Key, f.Value)
	}
	return out
}

// Noop discards everything.
func Noop() Logger { return noopLogger{} }

type noopLogger struct{}

func (noopLogger) With(...Field) Logger                    { return noopLogger{} }
func (noopLogger) Debug(context.Context, string, ...Field) {}
func (noopLogger) Info(context.Context, string, ...Field)  {}
func (noopLogger) Warn(context.Context, string, ...Field)  {}
func (noopLogger) Error(context.Context, string, ...Field) {}
