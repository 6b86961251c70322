package distmat

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with distmat-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSize adds an item-count field to the logger.
func (l *Logger) WithSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// WithParallelism adds a parallelism field to the logger.
func (l *Logger) WithParallelism(parallelism int) *Logger {
	return &Logger{
		Logger: l.Logger.With("parallelism", parallelism),
	}
}

// LogBuild logs a matrix build operation.
func (l *Logger) LogBuild(ctx context.Context, size, pairs int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"size", size,
			"pairs", pairs,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "build completed",
			"size", size,
			"pairs", pairs,
		)
	}
}

// LogPivot logs a table pivot operation at the builder boundary.
func (l *Logger) LogPivot(ctx context.Context, rowKey, colKey, valueKey string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "pivot failed",
			"row_key", rowKey,
			"col_key", colKey,
			"value_key", valueKey,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "pivot completed",
			"row_key", rowKey,
			"col_key", colKey,
			"value_key", valueKey,
		)
	}
}
