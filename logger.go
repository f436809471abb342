package astrocat

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/astrocat/core"
)

// Logger wraps slog.Logger with registry-specific helpers.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithID adds an id field to the logger.
func (l *Logger) WithID(id core.ID) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", uint32(id)),
	}
}

// WithDomain adds a catalog domain field to the logger.
func (l *Logger) WithDomain(domain string) *Logger {
	return &Logger{
		Logger: l.Logger.With("domain", domain),
	}
}

// LogEviction logs an identifier changing owner. Use WithID to name it.
func (l *Logger) LogEviction(ctx context.Context) {
	l.DebugContext(ctx, "registration evicted")
}

// LogAutoIndex logs an auto-index allocation.
func (l *Logger) LogAutoIndex(ctx context.Context, id core.ID, err error) {
	if err != nil {
		l.WarnContext(ctx, "auto index allocation failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "auto index allocated",
			"id", uint32(id),
		)
	}
}

// LogSweep logs identifiers whose objects were collected while registered.
func (l *Logger) LogSweep(ctx context.Context, purged []core.ID) {
	if len(purged) == 0 {
		return
	}
	l.WarnContext(ctx, "objects collected without deregistration",
		"count", len(purged),
		"first_id", uint32(purged[0]),
	)
}

// LogCategoryLoad logs the outcome of reading categories from a record.
func (l *Logger) LogCategoryLoad(ctx context.Context, ok bool) {
	if !ok {
		l.WarnContext(ctx, "category load incomplete")
	}
}

// LogCategoryCreate logs the creation of a category by name.
func (l *Logger) LogCategoryCreate(ctx context.Context, name string, err error) {
	if err != nil {
		l.WarnContext(ctx, "category create failed",
			"category", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "category created",
			"category", name,
		)
	}
}

// LogFileLoad logs the outcome of fetching and decoding a catalog file.
func (l *Logger) LogFileLoad(ctx context.Context, name string, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "catalog file failed",
			"file", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "catalog file decoded",
			"file", name,
			"records", records,
		)
	}
}

// LogRecordSkipped logs a catalog record that could not be applied.
func (l *Logger) LogRecordSkipped(ctx context.Context, file string, n int, err error) {
	l.WarnContext(ctx, "catalog record skipped",
		"file", file,
		"record", n,
		"error", err,
	)
}
