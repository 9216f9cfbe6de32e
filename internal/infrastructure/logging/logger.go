package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"xyzbank/internal/config"

	"github.com/go-chi/traceid"
)

func NewLogger(cfg config.LoggerConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	out := outputWriter(cfg.Output)
	var handler slog.Handler
	if strings.EqualFold(cfg.Encoding, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	handler = traceid.LogHandler(handler)
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// The console menu owns stdout, so logs default to stderr.
func outputWriter(output string) io.Writer {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	default:
		return os.Stderr
	}
}
