// Package logger owns the process-wide slog configuration for the portal
// commands: JSON records in production, readable text everywhere else.
package logger

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// Init installs the process logger for the given environment. Production
// logs JSON at info level; any other environment logs text at debug level.
func Init(env string) {
	var handler slog.Handler
	switch env {
	case "production":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// LoggerWrapper returns the process logger. Callers that run before Init
// (tests, early command setup) get a development logger.
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
