// Package config loads runtime settings from the environment and an
// optional dotenv-style conf file. The TUI owns the terminal, so logs go
// to a file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	DBPath   string
	LogPath  string
	LogLevel string
}

const defaultLogLevel = "warn"

// Load resolves configuration with env vars taking precedence over the
// conf file, which takes precedence over defaults. A missing conf file is
// not an error.
func Load() (Config, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	appDir := filepath.Join(cfgDir, "focuslog")

	fromEnv := fromEnviron()

	confFile := filepath.Join(appDir, "focuslog.conf")
	if _, err := os.Stat(confFile); err == nil {
		if err := godotenv.Load(confFile); err != nil {
			return Config{}, fmt.Errorf("load conf file: %w", err)
		}
	}
	fromFile := fromEnviron()

	return Config{
		DBPath:   coalesce(fromEnv.DBPath, fromFile.DBPath, filepath.Join(appDir, "focuslog.db")),
		LogPath:  coalesce(fromEnv.LogPath, fromFile.LogPath, filepath.Join(appDir, "focuslog.log")),
		LogLevel: coalesce(fromEnv.LogLevel, fromFile.LogLevel, defaultLogLevel),
	}, nil
}

func fromEnviron() Config {
	return Config{
		DBPath:   os.Getenv("FOCUSLOG_DB_PATH"),
		LogPath:  os.Getenv("FOCUSLOG_LOG_PATH"),
		LogLevel: os.Getenv("FOCUSLOG_LOG_LEVEL"),
	}
}

// NewLogger opens the log file and builds the application logger. When the
// file cannot be opened the logger discards output rather than fighting
// the TUI for the terminal.
func NewLogger(cfg Config) (*log.Logger, func() error) {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = log.WarnLevel
	}

	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err == nil {
		if f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			w = f
			closeFn = f.Close
		}
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	}), closeFn
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
