package app

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ImranQ74/todo-phase2/internal/config"
)

const serviceName = "todo-api"

var globalLogger zerolog.Logger

// InitDefaultLogger installs a plain JSON logger so failures during boot,
// before the config is read, are still structured.
func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	globalLogger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	globalLogger.Info().Msg("initialized default logger")
}

// MustInitApplicationLogger reconfigures the global logger for the
// environment the service runs in: trace with a console writer for local
// runs, debug in dev, info in prod.
func MustInitApplicationLogger() {
	cfg := config.Global()

	switch cfg.Env {
	case config.EnvProd:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.Out = os.Stdout
		consoleWriter.TimeFormat = time.DateTime
		globalLogger = globalLogger.Output(consoleWriter)
	default:
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic(fmt.Errorf("unknown env: %s", cfg.Env))
	}

	globalLogger.Info().
		Str("env", cfg.Env).
		Msg("initialized application logger")
}
