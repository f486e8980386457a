// Package logger installs the process-wide slog handler.
package logger

import (
	"log/slog"
	"os"
)

var programLevel = new(slog.LevelVar)

// Setup routes JSON logs to stderr. Stdout carries the generated
// artifacts, so it has to stay clean.
func Setup(debug bool) {
	programLevel.Set(slog.LevelInfo)
	if debug {
		programLevel.Set(slog.LevelDebug)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: programLevel,
	})))
}
