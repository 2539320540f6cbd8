// Package config loads and validates environment-based configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

// StoreBackend selects which reaction store implementation the server runs on.
type StoreBackend string

const (
	StoreRedis  StoreBackend = "redis"
	StoreMemory StoreBackend = "memory"
)

type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	RedisURL          string
	StoreBackend      StoreBackend
	Variant           domain.Variant
	ContentWriteToken string
	RateLimitRPS      float64
	RateLimitBurst    int
	LogLevel          string
	LogFormat         string
}

func Load() (*Config, error) {
	// Best effort: local development keeps secrets in .env.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		StoreBackend:      StoreBackend(getEnv("STORE_BACKEND", string(StoreRedis))),
		Variant:           domain.Variant(getEnv("REACTION_VARIANT", string(domain.VariantClassic))),
		ContentWriteToken: getEnv("CONTENT_WRITE_TOKEN", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	switch cfg.StoreBackend {
	case StoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when STORE_BACKEND is redis")
		}
	case StoreMemory:
		// single-instance mode, no Redis needed
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be redis or memory, got %q", cfg.StoreBackend)
	}

	if !cfg.Variant.Valid() {
		return nil, fmt.Errorf("REACTION_VARIANT must be classic or share, got %q", cfg.Variant)
	}

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("rate limit settings must be positive")
	}

	// CONTENT_WRITE_TOKEN is deliberately not required here: read paths work
	// without it, and mutations fail fast with a configuration error instead.

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}
