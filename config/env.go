// Package config loads process configuration from the environment and match settings
// (placement lines and difficulty tiers) from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Env is the process configuration
type Env struct {
	DBPath       string `env:"RINGSIDE_DB_PATH" envDefault:"ringside.db"`
	SettingsFile string `env:"RINGSIDE_SETTINGS_FILE"`
	Mode         string `env:"RINGSIDE_MODE" envDefault:"solo"`
	Tier         string `env:"RINGSIDE_TIER"`
	Multiplayer  bool   `env:"RINGSIDE_MULTIPLAYER"`
	FPS          int    `env:"RINGSIDE_FPS" envDefault:"60"`
	LogLevel     string `env:"RINGSIDE_LOG_LEVEL" envDefault:"info"`
	Debug        bool   `env:"RINGSIDE_DEBUG"`
	SentryDSN    string `env:"RINGSIDE_SENTRY_DSN"`
	Audio        bool   `env:"RINGSIDE_AUDIO" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses and validates Env
func LoadEnv() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	if cfg.FPS <= 0 || cfg.FPS > 240 {
		return Env{}, fmt.Errorf("RINGSIDE_FPS out of range: %d", cfg.FPS)
	}
	if cfg.Tier != "" {
		if _, err := ParseTier(cfg.Tier); err != nil {
			return Env{}, fmt.Errorf("RINGSIDE_TIER: %w", err)
		}
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
