package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("RATE_LIMIT_MAX", "99")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("RATE_LIMIT_MAX")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 99, cfg.RateLimit.Max)
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_DRIVER", "UPLOAD_DIR", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_SEC"} {
		os.Unsetenv(k)
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, 150, cfg.RateLimit.Max)
	assert.Equal(t, 60, cfg.RateLimit.WindowSec)
}

func TestGetEnvInt_Invalid(t *testing.T) {
	os.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")
	defer os.Unsetenv("DB_MAX_IDLE_CONNS")

	cfg := Load()

	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
}
