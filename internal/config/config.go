// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all configuration parameters of the application.
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL,required"`
	ServerPort     string `env:"SERVER_PORT"`
	MigrationsPath string `env:"MIGRATIONS_PATH"`

	// Session token settings. The secret and expiry window are always
	// externally configured; tokens are stateless.
	JWTSecret         string `env:"JWT_SECRET,required"`
	JWTExpiresMinutes int    `env:"JWT_EXPIRES_MINUTES"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// LoadConfig reads configuration from environment variables, loading a .env
// file first when one is present.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse configuration from environment: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "file://internal/database/migrations"
	}
	if cfg.JWTExpiresMinutes <= 0 {
		cfg.JWTExpiresMinutes = 30
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	return &cfg, nil
}

// JWTExpires returns the configured token lifetime.
func (c *Config) JWTExpires() time.Duration {
	return time.Duration(c.JWTExpiresMinutes) * time.Minute
}
