package meshdesc

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/hupe1980/meshdesc/persistence"
)

// Logger wraps slog.Logger with mesh-specific context.
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

// NewPrettyLogger creates a Logger that writes colorized, timestamped lines
// to w. It is meant for interactive tools; services should prefer JSON.
func NewPrettyLogger(w io.Writer, level slog.Level) *Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           charmlog.Level(level),
		Prefix:          "meshdesc",
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithName adds a name field to the logger (asset or file name).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogCompact logs a compaction pass.
func (l *Logger) LogCompact(ctx context.Context, removed int, duration time.Duration) {
	l.DebugContext(ctx, "compaction completed",
		"removed", removed,
		"duration", duration,
	)
}

// LogTriangulate logs the triangulation of one polygon. Degenerate
// triangulations, where an ear had to be forced, are logged as warnings.
func (l *Logger) LogTriangulate(ctx context.Context, polygon PolygonID, vertices, triangles, forced int) {
	if forced > 0 {
		l.WarnContext(ctx, "degenerate polygon triangulated with forced ears",
			"polygon", polygon,
			"vertices", vertices,
			"triangles", triangles,
			"forced_ears", forced,
		)
		return
	}
	l.DebugContext(ctx, "polygon triangulated",
		"polygon", polygon,
		"vertices", vertices,
		"triangles", triangles,
	)
}

// LogSave logs a serialization pass.
func (l *Logger) LogSave(ctx context.Context, version persistence.FormatVersion, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"version", version.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "mesh saved",
			"version", version.String(),
			"bytes", bytes,
		)
	}
}

// LogLoad logs a deserialization pass, including which reconstruction path ran.
func (l *Logger) LogLoad(ctx context.Context, version persistence.FormatVersion, rebuilt string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"version", version.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "mesh loaded",
			"version", version.String(),
			"rebuilt", rebuilt,
		)
	}
}

// LogBulk logs a bulk data transfer.
func (l *Logger) LogBulk(ctx context.Context, op, id string, size, stored int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "bulk data "+op+" failed",
			"id", id,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "bulk data "+op,
			"id", id,
			"size", size,
			"stored", stored,
		)
	}
}
