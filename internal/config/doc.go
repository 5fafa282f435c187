// Package config provides environment-based configuration for both the
// bot and API processes. Values are read from the environment (with a
// .env file loaded by the entrypoints via godotenv) and validated at
// startup; missing required values are fatal.
package config
