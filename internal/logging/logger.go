package logging

import (
	"io"
	"log/slog"
	"os"
	"sort"
)

// Logger is a thin wrapper around slog.Logger that adds map-based field binding.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a text logger at debug level in development and a JSON
// logger at info level otherwise. Output goes to stdout.
func NewLogger(isDevelopment bool) *Logger {
	return newLogger(os.Stdout, isDevelopment)
}

// New wraps an arbitrary slog handler.
func New(handler slog.Handler) *Logger {
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(slog.NewTextHandler(io.Discard, nil))
}

func newLogger(w io.Writer, isDevelopment bool) *Logger {
	if isDevelopment {
		return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// WithFields returns a child logger carrying the given fields.
// Keys are bound in sorted order so output is stable.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if len(fields) == 0 {
		return l
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}

	return &Logger{Logger: l.Logger.With(args...)}
}
