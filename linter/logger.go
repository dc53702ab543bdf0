package linter

import (
	"io"
	"log/slog"
	"os"
)

// Logger receives engine diagnostics. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewLogger returns a text logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// DefaultLogger logs warnings and errors to stderr.
func DefaultLogger() Logger {
	return NewLogger(os.Stderr, slog.LevelWarn)
}

// NopLogger discards everything.
func NopLogger() Logger {
	return slog.New(slog.DiscardHandler)
}
