package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration, loaded from the environment with
// an optional .env file for local development.
type Config struct {
	Port        string     `envconfig:"PORT" default:"8080"`
	Environment string     `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    slog.Level `envconfig:"LOG_LEVEL" default:"info"`

	// BaseURL is the externally visible origin used in activation links
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// RedisURL is optional; without it the service runs uncached
	RedisURL string `envconfig:"REDIS_URL"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`

	// SecretKey signs activation tokens
	SecretKey     string        `envconfig:"SECRET_KEY" required:"true"`
	ActivationTTL time.Duration `envconfig:"ACTIVATION_TTL" default:"72h"`
}

// LoadConfig reads configuration from the environment. A missing .env file
// is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
