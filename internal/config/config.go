package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AppEnv    string
	LogLevel  string
	LogFormat string

	DiscordToken    string
	DiscordClientID string
	// DiscordGuildID scopes slash-command registration to a single guild
	// in development (near-instant propagation). Empty means global
	// registration, which Discord may take up to an hour to propagate.
	DiscordGuildID string

	DatabaseURL string
	RedisURL    string

	BotPort string
	APIPort string

	// APIKey is the shared secret required by the /api namespace.
	APIKey string
	// APIBaseURL lets the bot reach the companion API service. Optional;
	// the bot falls back to direct repository queries when unset.
	APIBaseURL string

	// RateLimitPerMinute caps requests per client IP on the /api namespace.
	RateLimitPerMinute int
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func Load() (*Config, error) {
	rateLimit, err := getEnvInt("API_RATE_LIMIT_PER_MINUTE", 100)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		DiscordToken:       getEnv("DISCORD_TOKEN", ""),
		DiscordClientID:    getEnv("DISCORD_CLIENT_ID", ""),
		DiscordGuildID:     getEnv("DISCORD_GUILD_ID", ""),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		BotPort:            getEnv("BOT_PORT", "3001"),
		APIPort:            getEnv("API_PORT", "3000"),
		APIKey:             getEnv("API_KEY", ""),
		APIBaseURL:         getEnv("API_BASE_URL", ""),
		RateLimitPerMinute: rateLimit,
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.DiscordClientID == "" {
		return nil, fmt.Errorf("DISCORD_CLIENT_ID is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}
	if len(cfg.APIKey) < 16 {
		return nil, fmt.Errorf("API_KEY must be at least 16 characters")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
