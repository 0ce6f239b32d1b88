package idxgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with idxgo-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPath adds the index file path to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithPartition adds a partition index field to the logger.
func (l *Logger) WithPartition(part int) *Logger {
	return &Logger{
		Logger: l.Logger.With("partition", part),
	}
}

// LogOpen logs the lazy open and layout resolution of an index file.
func (l *Logger) LogOpen(ctx context.Context, path string, layout Layout, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "index opened",
			"path", path,
			"file_length", layout.FileLength,
			"row_id_list_length", layout.RowIDListLength,
			"footer_length", layout.FooterLength,
		)
	}
}

// LogSectionRead logs one section read.
func (l *Logger) LogSectionRead(ctx context.Context, section string, offset, length int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "section read failed",
			"section", section,
			"offset", offset,
			"length", length,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "section read",
			"section", section,
			"offset", offset,
			"length", length,
		)
	}
}

// LogPrefetch logs a partition prefetch pass.
func (l *Logger) LogPrefetch(ctx context.Context, parts, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "prefetch completed with failures",
			"total", parts,
			"failed", failed,
			"success", parts-failed,
		)
	} else {
		l.DebugContext(ctx, "prefetch completed",
			"partitions", parts,
		)
	}
}

// LogCloseError logs a close failure outside the shutdown sequence.
func (l *Logger) LogCloseError(ctx context.Context, path string, err error) {
	l.WarnContext(ctx, "close failed",
		"path", path,
		"error", err,
	)
}
