// Package config loads the shell's YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"jobshell/internal/apperrors"
)

const defaultMaxJobs = 32

type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	HomeDir     string `yaml:"home_dir"`
	MaxJobs     int    `yaml:"max_jobs"`
	LogLevel    string `yaml:"log_level"`
}

// Load reads the config file and fills in defaults. A missing file is not an
// error; invalid contents are fatal since the job table size and logging
// cannot be trusted otherwise.
func Load(file string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(file)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.Fatal("config.load", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, apperrors.Fatal("config.load", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.HomeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return apperrors.Fatal("config.home", err)
		}
		c.HomeDir = home
	}
	if c.HistoryFile == "" {
		c.HistoryFile = filepath.Join(c.HomeDir, ".jobshell_history")
	}
	if c.Prompt == "" {
		c.Prompt = "jobshell> "
	}
	if c.MaxJobs == 0 {
		c.MaxJobs = defaultMaxJobs
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	return nil
}

func (c *Config) validate() error {
	if c.MaxJobs < 0 {
		return apperrors.Fatal("config.validate", fmt.Errorf("max_jobs must be positive, got %d", c.MaxJobs))
	}
	if _, err := c.SlogLevel(); err != nil {
		return apperrors.Fatal("config.validate", err)
	}
	return nil
}

// SlogLevel maps the configured log level onto a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log_level %q", c.LogLevel)
}
