// Package logging builds the process logger from config.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/omarshaarawi/sportify/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New logs text to stderr and, when cfg.File is set, JSON to a rotating file.
// The returned closer flushes the file and is a no-op otherwise.
func New(cfg config.Log) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), io.NopCloser(nil)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(io.MultiWriter(os.Stderr, file), opts)), file
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
