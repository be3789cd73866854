package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STOREFRONT_APP_ENV", "development")
	t.Setenv("STOREFRONT_APP_PORT", "8080")
	t.Setenv("STOREFRONT_ID", "sf_123")
	t.Setenv("STOREFRONT_BASE_URL", "https://storefront.example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "info", cfg.App.LogLevel)
	require.True(t, cfg.App.IsDev())
	require.False(t, cfg.App.IsProd())
	require.Equal(t, 10*time.Second, cfg.Storefront.FetchTimeout)
	require.Equal(t, 30*time.Second, cfg.Checkout.SubmitTimeout)
	require.Equal(t, 2*time.Hour, cfg.Session.IdleTTL)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSOrigins)
	require.False(t, cfg.Redis.Enabled())
}

func TestLoadRequiresStorefront(t *testing.T) {
	t.Setenv("STOREFRONT_APP_ENV", "development")
	t.Setenv("STOREFRONT_APP_PORT", "8080")
	t.Setenv("STOREFRONT_ID", "")
	t.Setenv("STOREFRONT_BASE_URL", "")
	os.Unsetenv("STOREFRONT_ID")
	os.Unsetenv("STOREFRONT_BASE_URL")

	_, err := Load()
	require.Error(t, err)
}

func TestCheckoutBaseURLFallsBackToStorefront(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STOREFRONT_CHECKOUT_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg.Storefront.BaseURL, cfg.Checkout.EffectiveBaseURL(cfg.Storefront))

	t.Setenv("STOREFRONT_CHECKOUT_BASE_URL", "https://pay.example.com")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "https://pay.example.com", cfg.Checkout.EffectiveBaseURL(cfg.Storefront))
}

func TestRedisEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STOREFRONT_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Redis.Enabled())
}
