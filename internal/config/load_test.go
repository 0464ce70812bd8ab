package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REMINDFUL_DATABASE_URL", "postgres://localhost:5432/remindful")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres://localhost:5432/remindful", cfg.Database.URL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("REMINDFUL_DATABASE_URL", "postgres://localhost:5432/remindful")
	t.Setenv("REMINDFUL_SERVER_PORT", "9000")
	t.Setenv("REMINDFUL_SERVER_LOG_LEVEL", "debug")
	t.Setenv("REMINDFUL_SERVER_SHUTDOWN_TIMEOUT", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing database URL rejected", func(t *testing.T) {
		t.Setenv("REMINDFUL_DATABASE_URL", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown log level rejected", func(t *testing.T) {
		t.Setenv("REMINDFUL_DATABASE_URL", "postgres://localhost:5432/remindful")
		t.Setenv("REMINDFUL_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("out of range port rejected", func(t *testing.T) {
		t.Setenv("REMINDFUL_DATABASE_URL", "postgres://localhost:5432/remindful")
		t.Setenv("REMINDFUL_SERVER_PORT", "70000")

		_, err := Load()
		assert.Error(t, err)
	})
}
