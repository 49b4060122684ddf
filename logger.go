package fimgo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/fimgo/internal/scheduler"
)

// Logger wraps slog.Logger with fimgo-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithMinSupport adds the absolute support threshold to the logger.
func (l *Logger) WithMinSupport(minSupport int) *Logger {
	return &Logger{Logger: l.Logger.With("min_support", minSupport)}
}

// WithK adds a k (patterns per item) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// WithWorkers adds a worker count field to the logger.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{Logger: l.Logger.With("workers", workers)}
}

// LogLoad logs the end of dataset loading.
func (l *Logger) LogLoad(ctx context.Context, transactions, frequents int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "dataset loaded",
		"transactions", transactions,
		"frequent_items", frequents,
		"elapsed", elapsed,
	)
}

// LogMine logs the end of the exploration.
func (l *Logger) LogMine(ctx context.Context, stats *scheduler.Stats, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "mining failed",
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "mining completed",
		"patterns", stats.Patterns,
		"steps", stats.Steps,
		"steals", stats.Steals,
		"caught_wrong_first_parents", stats.CaughtWrongFirstParents,
		"mean_length", stats.Lengths.Mean(),
		"elapsed", elapsed,
	)
}

// LogClose logs the closing or aborting of the output collector.
func (l *Logger) LogClose(ctx context.Context, patterns int64, aborted bool, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "collector close failed",
			"aborted", aborted,
			"error", err,
		)
	case aborted:
		l.WarnContext(ctx, "collector aborted")
	default:
		l.DebugContext(ctx, "collector closed",
			"patterns", patterns,
		)
	}
}
