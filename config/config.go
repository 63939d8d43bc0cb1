package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the engine's runtime settings, loaded from the environment.
// DatabaseURL may be empty: the engine then runs on the in-memory store,
// which is enough for local play and tests.
type Config struct {
	Port        string        `envconfig:"PORT" default:"5200"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL string        `envconfig:"DATABASE_URL"`
	CacheTTL    time.Duration `envconfig:"PLAYER_CACHE_TTL" default:"300s"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
