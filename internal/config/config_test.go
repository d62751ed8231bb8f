package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/feedback")
	t.Setenv("ADMIN_PASSWORD", "super-secret")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 2*time.Second, cfg.FeedbackDebounce)
	assert.Equal(t, 12*time.Hour, cfg.SessionMaxAge)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestLoadMissingAdminPassword(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD is required")
}

func TestLoadShortSessionSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET must be at least 16 characters")
}

func TestLoadInvalidDebounce(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FEEDBACK_DEBOUNCE", "-1s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEEDBACK_DEBOUNCE must be positive")
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("FEEDBACK_DEBOUNCE", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 500*time.Millisecond, cfg.FeedbackDebounce)
}
