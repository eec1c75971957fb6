package grovego

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with scan-specific context.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithBackend adds the backend name to the logger.
func (l *Logger) WithBackend(name string) *Logger {
	return &Logger{Logger: l.Logger.With("backend", name)}
}

// WithRecord adds the dataset scale k to the logger.
func (l *Logger) WithRecord(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// LogAssemble logs one program assembly.
func (l *Logger) LogAssemble(ctx context.Context, k, gates int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "assemble failed", "k", k, "error", err)
	} else {
		l.DebugContext(ctx, "assemble completed", "k", k, "gates", gates)
	}
}

// LogExecute logs one backend execution.
func (l *Logger) LogExecute(ctx context.Context, k, shots int, duration time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "execute failed",
			"k", k,
			"shots", shots,
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "execute completed",
			"k", k,
			"shots", shots,
			"duration", duration,
		)
	}
}

// LogScan logs a completed scan over a plan.
func (l *Logger) LogScan(ctx context.Context, records, failed, skipped int) {
	if failed > 0 {
		l.WarnContext(ctx, "scan completed with failures",
			"records", records,
			"failed", failed,
			"skipped", skipped,
		)
	} else {
		l.InfoContext(ctx, "scan completed",
			"records", records,
			"skipped", skipped,
		)
	}
}
