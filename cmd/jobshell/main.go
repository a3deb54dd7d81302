package main

import (
	"log/slog"
	"os"

	"jobshell/internal/config"
	"jobshell/internal/shell"
)

const configFile = "config.yml"

func main() {
	if err := run(); err != nil {
		slog.Error("Shell failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	s, err := shell.New(cfg)
	if err != nil {
		return err
	}
	return s.Run()
}
