package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is safe to use before Init; it starts as slog's default logger.
var Log = slog.Default()

// Init configures the process-wide JSON logger. LOG_LEVEL overrides the
// default (info in production, debug otherwise).
func Init() {
	level := slog.LevelDebug
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
