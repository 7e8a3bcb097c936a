package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ImranQ74/todo-phase2/internal/config"
	"github.com/ImranQ74/todo-phase2/internal/storage"
	"github.com/ImranQ74/todo-phase2/internal/storage/memory"
	"github.com/ImranQ74/todo-phase2/internal/storage/postgres"
)

var globalTaskStore storage.Tasks

// MustInitTaskStore builds the task store named by STORAGE_DRIVER. The
// memory driver holds tasks in process memory and is meant for local runs
// only.
func MustInitTaskStore() {
	cfg := config.Global()

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pgPool := mustConnectPostgres()
		globalTaskStore = postgres.NewTaskStore(globalLogger, pgPool)
	case config.StorageDriverMemory:
		globalLogger.Warn().Msg("using in-memory task store, data will not survive a restart")
		globalTaskStore = memory.NewTaskStore()
	default:
		globalLogger.Error().
			Str("driver", cfg.Storage.Driver).
			Msg("unknown storage driver")
		panic(fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver))
	}

	globalLogger.Info().
		Str("driver", cfg.Storage.Driver).
		Msg("initialized task store")
}

func CloseTaskStore() {
	globalTaskStore.Close()
	globalLogger.Info().Msg("closed task store")
}

func mustConnectPostgres() *pgxpool.Pool {
	cfg := config.Global().Postgres
	connURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host,
		cfg.Port, cfg.Database, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pgPool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = pgPool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}

	err = postgres.Bootstrap(ctx, pgPool)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to bootstrap postgres schema")
		panic(err)
	}

	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")
	return pgPool
}
