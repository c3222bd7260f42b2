package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("GOTENBERG_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 10*time.Second, cfg.InvoiceLockTTL)
	assert.Equal(t, 300, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.GotenbergURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("INVOICE_LOCK_TTL", "3s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 3*time.Second, cfg.InvoiceLockTTL)
	assert.Zero(t, cfg.RateLimitPerMinute)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("INVOICE_LOCK_TTL", "0s")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("INVOICE_LOCK_TTL", "5s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-1")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT_PER_MINUTE", "ten")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestIsProductionNil(t *testing.T) {
	var cfg *Config
	assert.False(t, cfg.IsProduction())
}
