package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	SessionSecret string
	CookieSecure  bool
	JWTSecret     string
	JWTTTL        time.Duration

	LogLevel string
}

// DSN is the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults for unset keys.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		HTTPAddr:      get("HTTP_ADDR", ":8080"),
		GRPCAddr:      get("GRPC_ADDR", ":50051"),
		DBHost:        get("DB_HOST", "localhost"),
		DBPort:        get("DB_PORT", "5432"),
		DBUser:        get("DB_USER", "postgres"),
		DBPassword:    get("DB_PASSWORD", ""),
		DBName:        get("DB_NAME", "lojamix"),
		DBSSLMode:     get("DB_SSLMODE", "disable"),
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisUsername: get("REDIS_USERNAME", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),
		SessionSecret: get("SESSION_SECRET", ""),
		JWTSecret:     get("JWT_SECRET", ""),
		LogLevel:      get("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(get("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("config: REDIS_DB: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(get("CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("config: CACHE_TTL: %w", err)
	}
	if cfg.JWTTTL, err = time.ParseDuration(get("JWT_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("config: JWT_TTL: %w", err)
	}
	if cfg.CookieSecure, err = strconv.ParseBool(get("COOKIE_SECURE", "false")); err != nil {
		return nil, fmt.Errorf("config: COOKIE_SECURE: %w", err)
	}

	if len(cfg.SessionSecret) < 32 {
		return nil, fmt.Errorf("config: SESSION_SECRET must be at least 32 bytes")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return cfg, nil
}
