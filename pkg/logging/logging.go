// Package logging wraps log/slog with the antenna checker's run
// conventions: a service name attached to every record, and a level
// that defaults to info but can be raised from configuration or the
// CLI's --verbose flag.
package logging

import (
	"log/slog"
	"os"
)

// Config controls how New builds a logger.
type Config struct {
	// Level is one of "debug", "info", "warn", "error". Empty means
	// "info".
	Level string

	// Service is attached to every record as the "service" attribute.
	Service string
}

// Default returns the package-wide logger used when a caller has not
// configured one explicitly.
func Default() *slog.Logger {
	return New(Config{Service: "antennacheck"})
}

// New builds a structured JSON logger writing to stderr.
func New(cfg Config) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	logger := slog.New(h)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
