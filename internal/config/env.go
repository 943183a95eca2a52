package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds flag defaults taken from environment variables
type EnvConfig struct {
	Format    string `env:"CLOCKCAL_FORMAT" envDefault:"text"`
	LogLevel  string `env:"CLOCKCAL_LOG_LEVEL" envDefault:"info"`
	Monotonic bool   `env:"CLOCKCAL_MONOTONIC" envDefault:"false"`
	Textfile  string `env:"CLOCKCAL_TEXTFILE" envDefault:""`
}

// ParseEnvConfig parses flag defaults from environment variables
func ParseEnvConfig() (*EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}
	return &cfg, nil
}
