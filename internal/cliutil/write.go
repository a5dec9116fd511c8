// Package cliutil provides output and logging helpers for the oasmodels CLI.
package cliutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// LogLevel maps the CLI's -v and -q flags to a slog level. Quiet wins over
// verbose; the default shows warnings and errors.
func LogLevel(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// NewLogger returns a text logger on w at the level chosen by verbose and quiet.
func NewLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: LogLevel(verbose, quiet)}))
}
