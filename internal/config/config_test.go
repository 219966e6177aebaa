package config_test

import (
	"testing"
	"time"

	"hrms-lite/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "REDIS_ADDR", "OUTBOX_ENABLED", "RATE_LIMIT_RPS", "CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.CacheTTL)
	assert.False(t, cfg.OutboxEnabled)
	assert.Equal(t, 10.0, cfg.RateLimit.RPS)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_MAX_RETRIES", "2")
	t.Setenv("OUTBOX_ENABLED", "true")
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg := config.Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 2, cfg.DB.MaxRetries)
	assert.True(t, cfg.OutboxEnabled)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}
