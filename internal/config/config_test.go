package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-tenant-auth/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, "./data", cfg.DataFolder)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Positive(t, cfg.RateLimitRequests)
	require.Positive(t, cfg.BodyLimitBytes)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestValidateRejectsBadLimits(t *testing.T) {
	cfg := config.Config{
		JWTSecret:         "0123456789abcdef",
		BodyLimitBytes:    0,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
	require.Error(t, cfg.Validate())

	cfg.BodyLimitBytes = 1024
	cfg.RateLimitRequests = 0
	require.Error(t, cfg.Validate())

	cfg.RateLimitRequests = 100
	cfg.RateLimitWindow = 0
	require.Error(t, cfg.Validate())

	cfg.RateLimitWindow = time.Minute
	require.NoError(t, cfg.Validate())
}
