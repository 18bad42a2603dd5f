package config

import (
	"errors"
	"log"
	"os"
	"time"

	"main/utils"

	"github.com/joho/godotenv"
)

// Config is loaded once at process start and injected explicitly; nothing
// outside this package reads the environment at point of use.
type Config struct {
	Port string

	Database DatabaseConfig
	RedisURL string

	JWTSecret string
	TokenTTL  time.Duration

	// AppBaseURL is where the web view is served; /app links point there.
	// OutboundWebhookURL is the transport bridge endpoint reminders are
	// pushed to; empty disables pushes.
	AppBaseURL         string
	OutboundWebhookURL string

	// Reminder sweep settings
	SweepInterval        time.Duration
	SystemMetricsEnabled bool
}

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "questline"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

// LoadConfig reads .env (when present) and assembles the full config.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:                 utils.GetEnvAsString("PORT", "8080"),
		Database:             LoadDatabaseConfig(),
		RedisURL:             utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:            utils.GetEnvAsString("JWT_SECRET_KEY", ""),
		TokenTTL:             utils.GetEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		AppBaseURL:           utils.GetEnvAsString("APP_BASE_URL", "http://localhost:8080"),
		OutboundWebhookURL:   utils.GetEnvAsString("OUTBOUND_WEBHOOK_URL", ""),
		SweepInterval:        utils.GetEnvAsDuration("REMINDER_SWEEP_INTERVAL", 15*time.Minute),
		SystemMetricsEnabled: utils.GetEnvAsBool("SYSTEM_METRICS_ENABLED", true),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}
	return cfg, nil
}
