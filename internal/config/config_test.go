package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "booksfrog-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())

	assert.Equal(t, 24, cfg.Auth.AccessTokenTTLHours)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)

	assert.Equal(t, 50, cfg.Ledger.StartingBalance)
	assert.Equal(t, 50, cfg.Ledger.DailyGrantStandard)
	assert.Equal(t, 100, cfg.Ledger.DailyGrantPremium)
	assert.Equal(t, 10, cfg.Ledger.PremiumReadCost)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_HOURS", "1")
	t.Setenv("LEDGER_DAILY_GRANT_PREMIUM", "200")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 1, cfg.Auth.AccessTokenTTLHours)
	assert.Equal(t, 200, cfg.Ledger.DailyGrantPremium)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
