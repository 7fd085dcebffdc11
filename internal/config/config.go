package config

import (
	"os"
	"strconv"
	"time"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

// PostgresConfig holds Postgres connection configuration
type PostgresConfig struct {
	DSN string
}

// BatchConfig holds batch validation configuration
type BatchConfig struct {
	// TranscriptRoot is the directory batch jobs resolve their
	// subdirectories against
	TranscriptRoot string
	Workers        int
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Batch    BatchConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", ":8090"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6380"),
			CacheTTL: time.Duration(getEnvInt("CACHE_TTL_HOURS", 24)) * time.Hour,
		},
		Postgres: PostgresConfig{
			DSN: getEnv("POSTGRES_DSN", "postgres://localhost:5432/transcripts?sslmode=disable"),
		},
		Batch: BatchConfig{
			TranscriptRoot: getEnv("TRANSCRIPT_ROOT", "tokenized_data"),
			Workers:        getEnvInt("BATCH_WORKERS", 8),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
