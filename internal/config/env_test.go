package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadEnv_Defaults(t *testing.T) {
	t.Setenv("ENV", "local")
	t.Setenv("JWT_SIGNING_KEY", "secret")

	cfg, err := ReadEnv()
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "HS256", cfg.JWT.Algorithm)
	require.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	require.Equal(t, "8000", cfg.HTTP.Port)
	require.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	require.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	require.Equal(t, 5432, cfg.Postgres.Port)
	require.Equal(t, "disable", cfg.Postgres.SSLMode)
}

func TestReadEnv_Overrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := ReadEnv()
	require.NoError(t, err)

	require.Equal(t, "HS512", cfg.JWT.Algorithm)
	require.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	require.Equal(t, "9000", cfg.HTTP.Port)
}

func TestReadEnv_MissingEnv(t *testing.T) {
	// t.Setenv registers the restore, os.Unsetenv makes the variable
	// genuinely absent for the duration of the test.
	t.Setenv("ENV", "")
	os.Unsetenv("ENV")
	t.Setenv("JWT_SIGNING_KEY", "secret")

	_, err := ReadEnv()
	require.Error(t, err)
}
