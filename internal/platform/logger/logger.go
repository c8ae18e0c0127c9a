package logger

import (
	"io"
	"log/slog"

	"roster/internal/platform/config"
)

// NewWithWriter builds a structured logger on w at the configured level and format.
func NewWithWriter(w io.Writer, cfg config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", "roster")
}
