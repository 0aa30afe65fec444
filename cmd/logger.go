package cmd

import (
	"log/slog"
	"os"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// buildLogger builds the process logger. Unknown levels fall back to info,
// unknown formats to text.
func buildLogger(level string, format string) *slog.Logger {
	logLevel, ok := logLevels[level]
	if !ok {
		logLevel = slog.LevelInfo
	}
	options := &slog.HandlerOptions{Level: logLevel}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, options))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, options))
}
