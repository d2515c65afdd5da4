package app

import (
	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	HTTPAddr     string `env:"TONIC_HTTP_ADDR"     envDefault:":8080"`
	DatabasePath string `env:"TONIC_DATABASE_PATH" envDefault:"tonic.db"`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
