// Package logger provides structured logging built on Go's slog package.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Options configures the logger setup.
type Options struct {
	Level   string // debug, info, warn, error
	Console bool   // pretty print for dev (LOG_FORMAT=console)
}

// Logger wraps slog with printf-style helpers and context-aware variants
// that pick up the correlation ID.
type Logger struct {
	slog *slog.Logger
}

// New builds a Logger with correlation ID support.
func New(opts Options) *Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	}

	var handler slog.Handler
	if opts.Console {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	}

	// Wrap with correlation handler to auto-inject correlation_id from context
	handler = NewCorrelationHandler(handler)

	return &Logger{slog: slog.New(handler)}
}

func (l *Logger) Debug(format string, args ...any) {
	l.slog.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.slog.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.slog.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.slog.Error(fmt.Sprintf(format, args...))
}

// Fatal logs the error and exits the process.
func (l *Logger) Fatal(err error) {
	l.slog.Error(err.Error())
	os.Exit(1)
}

func (l *Logger) DebugCtx(ctx context.Context, format string, args ...any) {
	l.slog.DebugContext(ctx, fmt.Sprintf(format, args...))
}

func (l *Logger) InfoCtx(ctx context.Context, format string, args ...any) {
	l.slog.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *Logger) WarnCtx(ctx context.Context, format string, args ...any) {
	l.slog.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *Logger) ErrorCtx(ctx context.Context, format string, args ...any) {
	l.slog.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
