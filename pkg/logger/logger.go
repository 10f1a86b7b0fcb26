// Package logger provides the leveled, slog-based logger the engine and the
// example binary both log through.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Log is the package-level logger. It is always non-nil after package init;
// Init/InitWithLevel reconfigure it (sink/level) for production use.
var Log *slog.Logger

func init() {
	Log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// LevelTrace is finer-grained than slog.LevelDebug, filling out the Trace
// tier of the five-level contract (info/error/debug/trace/fatal).
const LevelTrace = slog.LevelDebug - 4

func levelFromString(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

// Init initializes the global logger from environment variables:
// WEBCORE_LOG_SINK ("file:/path/to/log", or unset for stdout) and
// WEBCORE_LOG_LEVEL ("trace"|"debug"|"info"|"warn"|"error").
func Init() {
	InitWithLevel(os.Getenv("WEBCORE_LOG_LEVEL"))
}

// InitWithLevel initializes the global logger, honoring an explicit level
// string; an empty level falls back to WEBCORE_LOG_LEVEL.
func InitWithLevel(level string) {
	sink := os.Getenv("WEBCORE_LOG_SINK")
	if level == "" {
		level = os.Getenv("WEBCORE_LOG_LEVEL")
	}
	lv := levelFromString(level)

	if strings.HasPrefix(sink, "file:") {
		path := strings.TrimPrefix(sink, "file:")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err == nil {
			Log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lv}))
			return
		}
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", path, err)
	}
	Log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lv}))
}

// Sync is a no-op for the slog handlers used here.
func Sync() {}

// Trace logs below Debug granularity.
func Trace(msg string, args ...any) { Log.Log(context.Background(), LevelTrace, msg, args...) }

// Debug logs with slog-style key/value pairs.
func Debug(msg string, args ...any) { Log.Debug(msg, args...) }

// Info logs with slog-style key/value pairs.
func Info(msg string, args ...any) { Log.Info(msg, args...) }

// Warn logs with slog-style key/value pairs.
func Warn(msg string, args ...any) { Log.Warn(msg, args...) }

// Error logs with slog-style key/value pairs.
func Error(msg string, args ...any) { Log.Error(msg, args...) }

// Fatal logs at error level and then terminates the process.
func Fatal(msg string, args ...any) {
	Log.Error(msg, args...)
	os.Exit(1)
}
