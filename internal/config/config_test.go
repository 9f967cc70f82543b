package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "review_db", cfg.DBName)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:8084")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, BackendRedis, cfg.StorageBackend)
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8084"}, cfg.CORSOrigins)
}

func TestLoadConfigRejectsBadInt(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			HTTPPort:       5000,
			StorageBackend: BackendPostgres,
			LogLevel:       "info",
			LogFormat:      "text",
		}
	}

	t.Run("BadBackend", func(t *testing.T) {
		cfg := base()
		cfg.StorageBackend = "mongo"
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadPort", func(t *testing.T) {
		cfg := base()
		cfg.HTTPPort = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		cfg := base()
		cfg.LogLevel = "verbose"
		assert.Error(t, cfg.Validate())
	})
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: 5432, DBUser: "postgres", DBPassword: "secret", DBName: "review_db"}
	assert.Equal(t,
		"host=db port=5432 user=postgres password=secret dbname=review_db sslmode=disable",
		cfg.PostgresDSN())
}
