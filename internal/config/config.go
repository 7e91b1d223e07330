package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, populated from environment
// variables. Session and OAuth secrets stay out of the catalog file on
// purpose; everything gameplay-related lives in the card catalog instead.
type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"battles.db"`
	CatalogPath   string `env:"CATALOG_PATH" envDefault:"catalog.yaml"`

	SessionSecret      string `env:"SESSION_SECRET"`
	SessionSecure      bool   `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	// ActionTimeout bounds how long a battle may sit waiting for the
	// player before the turn is forfeited by the background sweeper.
	ActionTimeout time.Duration `env:"ACTION_TIMEOUT" envDefault:"5m"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
