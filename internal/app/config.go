package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/ImranQ74/todo-phase2/internal/config"
)

// MustReadEnv loads the configuration from the environment, plus any .env
// file picked up by godotenv, and installs it as the global config.
func MustReadEnv() {
	cfg, err := config.ReadEnv()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}

	config.SetGlobal(cfg)
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("storage_driver", cfg.Storage.Driver).
		Msg("read env")
}
