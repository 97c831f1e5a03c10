// Package config loads application settings from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultStorageSlot is the durable slot name, kept identical to the
// original web client's storage key so existing exports line up.
const DefaultStorageSlot = "fleet-app-data-v1"

// Config represents the application configuration.
type Config struct {
	Addr         string `yaml:"addr"`
	DatabasePath string `yaml:"database_path"`
	StorageSlot  string `yaml:"storage_slot"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:         ":8080",
		DatabasePath: "frota.db",
		StorageSlot:  DefaultStorageSlot,
		LogLevel:     "info",
	}
}

// Load reads the YAML file at path (or $FROTA_CONFIG when path is empty)
// and applies environment overrides. A missing file is not an error; the
// defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("FROTA_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("STORAGE_SLOT"); v != "" {
		cfg.StorageSlot = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// SlogLevel maps the configured log level onto slog's levels, defaulting
// to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
