package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/supakorn-kn/peponi-admin/env"
)

func newLogger(config env.LogConfig) *slog.Logger {

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(config.Level))); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if config.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
