package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// ReadEnv loads the configuration from the process environment.
func ReadEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}

	return &cfg, nil
}
