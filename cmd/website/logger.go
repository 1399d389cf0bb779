package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/adampresley/kenshot/cmd/website/internal/configuration"
)

func setupLogger(config *configuration.Config, version string) {
	level := slog.LevelInfo

	switch strings.ToLower(config.LogLevel) {
	case "debug":
		level = slog.LevelDebug

	case "warn":
		level = slog.LevelWarn

	case "error":
		level = slog.LevelError
	}

	options := &slog.HandlerOptions{Level: level}

	if version == "development" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, options)))
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, options)))
}
