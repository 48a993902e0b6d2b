// Package config loads process configuration once at startup. The resulting
// Config is passed into constructors explicitly; there is no global instance.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Port string
	}
	Queue struct {
		Concurrency int
	}
	Payment struct {
		Currency string
	}
}

func Load() (*Config, error) {
	// A missing .env is fine; env vars may come from the environment itself.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.Port = getEnv("APP_PORT", "8080")
	cfg.Payment.Currency = getEnv("PAYMENT_CURRENCY", "RUB")

	rawConcurrency := getEnv("QUEUE_CONCURRENCY", "2")
	concurrency, err := strconv.Atoi(rawConcurrency)
	if err != nil {
		return nil, fmt.Errorf("QUEUE_CONCURRENCY must be an integer, got %q: %w", rawConcurrency, err)
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("QUEUE_CONCURRENCY must be >= 1, got %d", concurrency)
	}
	cfg.Queue.Concurrency = concurrency

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
