package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	DatabaseDriver  string
	DatabaseURL     string
	AdminInviteKey  string
	FrontendURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	MongoDBURI      string
	MongoDBDatabase string
	AuthRateLimit   float64
	AuthRateBurst   int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "5001"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		DatabaseDriver:  strings.ToLower(getEnvWithDefault("DB_DRIVER", "postgres")),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AdminInviteKey:  strings.TrimSpace(os.Getenv("ADMIN_INVITE_KEY")),
		FrontendURL:     strings.TrimSuffix(getEnvWithDefault("FRONTEND_URL", "http://localhost:3000"), "/"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "eventhub"),
	}

	ttl, err := time.ParseDuration(getEnvWithDefault("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	cfg.AuthRateLimit, err = strconv.ParseFloat(getEnvWithDefault("AUTH_RATE_LIMIT", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
	}
	cfg.AuthRateBurst, err = strconv.Atoi(getEnvWithDefault("AUTH_RATE_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	switch cfg.DatabaseDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (expected postgres, mysql or sqlite)", cfg.DatabaseDriver)
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// TokensEnabled reports whether sign-in issues bearer tokens.
func (c *Config) TokensEnabled() bool {
	return c.JWTSecret != ""
}

// AdminSignupEnabled reports whether an admin invite key is configured.
func (c *Config) AdminSignupEnabled() bool {
	return c.AdminInviteKey != ""
}
