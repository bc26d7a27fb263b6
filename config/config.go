/*
Package config loads the service configuration once at startup.

There is no global config state: a Config value is built in main and passed
explicitly into whatever needs it. Values come from the environment,
optionally seeded from a .env file (godotenv), with development defaults
for everything but the JWT secret.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs. Built once, passed by value.
type Config struct {
	Port           int
	DatabasePath   string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	LogLevel       string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first, without overriding already-set variables.
func Load() (Config, error) {
	_ = godotenv.Load() // absent .env is fine

	cfg := Config{
		Port:           envInt("PORT", 8080),
		DatabasePath:   envStr("DATABASE_PATH", "intranet.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       envDuration("TOKEN_TTL", 12*time.Hour),
		AllowedOrigins: []string{envStr("CORS_ORIGIN", "http://localhost:3000")},
		LogLevel:       envStr("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
