package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_CLIENT_ID", "123456789")
	t.Setenv("DATABASE_URL", "postgres://localhost/bot")
	t.Setenv("API_KEY", "0123456789abcdef0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "3001", cfg.BotPort)
	assert.Equal(t, "3000", cfg.APIPort)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"missing token", "DISCORD_TOKEN"},
		{"missing client id", "DISCORD_CLIENT_ID"},
		{"missing database url", "DATABASE_URL"},
		{"missing api key", "API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.missing, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoad_ShortAPIKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_KEY", "tooshort")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 16 characters")
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_RATE_LIMIT_PER_MINUTE", "lots")

	_, err := Load()
	require.Error(t, err)
}
