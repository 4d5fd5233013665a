package main

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog.Logger on stdout. The level is Debug when
// the config debug flag is set, Info otherwise.
func NewLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
