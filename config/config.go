package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Mode        string // gin/log mode: "debug" or "production"
	DatabaseURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	TokenTTL  time.Duration

	// OpTimeout bounds every storage and catalog call made on behalf of a
	// single request.
	OpTimeout time.Duration
	// PriceLookupLimit caps concurrent price resolutions per total.
	PriceLookupLimit int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		Mode:             getenv("APP_MODE", "debug"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBHost:           getenv("DB_HOST", "localhost"),
		DBPort:           getenv("DB_PORT", "5432"),
		DBUser:           getenv("DB_USER", "postgres"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           getenv("DB_NAME", "shop"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         getenvDuration("TOKEN_TTL", 24*time.Hour),
		OpTimeout:        getenvDuration("OP_TIMEOUT", 5*time.Second),
		PriceLookupLimit: getenvInt("PRICE_LOOKUP_LIMIT", 10),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// DSN returns DATABASE_URL when set, else a DSN built from the DB_* vars.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
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

func getenvDuration(key string, fallback time.Duration) time.Duration {
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
