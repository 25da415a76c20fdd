// Package logger wraps log/slog behind the package-level call style used
// throughout this codebase: logger.Info("message", "key", value, ...).
package logger

import (
	"io"
	"log/slog"
	"os"
)

var std = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init replaces the package-level logger. format is "json" or anything
// else for text; level is one of "debug", "info", "warn", "error".
func Init(w io.Writer, format, level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	std = slog.New(handler)
}

// Logger returns the current package-level *slog.Logger, for callers
// (e.g. internal/markup.Pipeline) that need to pass one in directly.
func Logger() *slog.Logger { return std }

func Debug(msg string, kv ...any) { std.Debug(msg, kv...) }
func Info(msg string, kv ...any)  { std.Info(msg, kv...) }
func Warn(msg string, kv ...any)  { std.Warn(msg, kv...) }
func Error(msg string, kv ...any) { std.Error(msg, kv...) }
