// Package config loads process configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/fernway/kobold/internal/errors"
)

// Config is the full process configuration
type Config struct {
	RedisAddr  string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Suspension-point timeouts
	TeachMoveTimeout   time.Duration `env:"TEACH_MOVE_TIMEOUT" envDefault:"3m"`
	TradeAcceptTimeout time.Duration `env:"TRADE_ACCEPT_TIMEOUT" envDefault:"30s"`
	TradeSelectTimeout time.Duration `env:"TRADE_SELECT_TIMEOUT" envDefault:"2m"`

	// Data files feeding the in-memory catalog
	SpeciesDataPath  string `env:"SPECIES_DATA_PATH" envDefault:"data/species.json"`
	MoveDataPath     string `env:"MOVE_DATA_PATH" envDefault:"data/moves.json"`
	LocationDataPath string `env:"LOCATION_DATA_PATH" envDefault:"data/locations.json"`
}

// Load reads the environment. A missing .env file is not an error;
// explicit environment variables win over file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	return cfg, nil
}
