package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/dxi")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	assert.Equal(t, domain.VariantClassic, cfg.Variant)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Empty(t, cfg.ContentWriteToken)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_RedisRequiredForRedisBackend(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dxi")
	t.Setenv("REDIS_URL", "")
	t.Setenv("STORE_BACKEND", "redis")

	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_URL")
}

func TestLoad_MemoryBackendNeedsNoRedis(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dxi")
	t.Setenv("REDIS_URL", "")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
}

func TestLoad_UnknownBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_BACKEND", "etcd")

	_, err := Load()
	assert.ErrorContains(t, err, "STORE_BACKEND")
}

func TestLoad_VariantSelection(t *testing.T) {
	setRequired(t)
	t.Setenv("REACTION_VARIANT", "share")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, domain.VariantShare, cfg.Variant)
}

func TestLoad_InvalidVariant(t *testing.T) {
	setRequired(t)
	t.Setenv("REACTION_VARIANT", "emoji")

	_, err := Load()
	assert.ErrorContains(t, err, "REACTION_VARIANT")
}

func TestLoad_BadRateLimit(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	_, err := Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_RPS")
}
