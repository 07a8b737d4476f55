package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omarshaarawi/sportify/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sportify.log")
	logger, closer := New(config.Log{Level: "warn", File: path})

	logger.Info("dropped")
	logger.Warn("kept", "league", "4328")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "dropped") {
		t.Errorf("expected info to be filtered at warn level, got %s", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"league":"4328"`) {
		t.Errorf("expected JSON warn record, got %s", out)
	}
}

func TestNewWithoutFile(t *testing.T) {
	logger, closer := New(config.Log{Level: "debug"})
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug to be enabled")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}
