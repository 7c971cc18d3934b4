package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Inventory sources.
const (
	SourceEmbedded = "embedded"
	SourcePostgres = "postgres"
)

// Cache drivers.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string

	InventorySource          string
	DBConn                   string
	InventoryRefreshSchedule string

	CacheDriver    string
	RedisAddr      string
	CacheTTL       time.Duration
	CacheSize      int
	QueryCacheSize int
	QueryCacheTTL  time.Duration

	RateLimitCapacity int
	RateLimitWindow   time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:              getEnv("ENVIRONMENT", "dev"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		LogFormat:                getEnv("LOG_FORMAT", "json"),
		InventorySource:          getEnv("INVENTORY_SOURCE", SourceEmbedded),
		DBConn:                   getEnv("DB_CONN", ""),
		InventoryRefreshSchedule: getEnv("INVENTORY_REFRESH_SCHEDULE", ""),
		CacheDriver:              getEnv("CACHE_DRIVER", CacheMemory),
		RedisAddr:                getEnv("REDIS_ADDR", "localhost:6379"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getEnvInt("CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.QueryCacheSize, err = getEnvInt("QUERY_CACHE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.RateLimitCapacity, err = getEnvInt("RATE_LIMIT_CAPACITY", 5); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.QueryCacheTTL, err = getEnvDuration("QUERY_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	switch c.InventorySource {
	case SourceEmbedded:
	case SourcePostgres:
		if c.DBConn == "" {
			return fmt.Errorf("DB_CONN is required when INVENTORY_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown INVENTORY_SOURCE %q", c.InventorySource)
	}
	switch c.CacheDriver {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unknown CACHE_DRIVER %q", c.CacheDriver)
	}
	if c.CacheSize <= 0 || c.QueryCacheSize <= 0 {
		return fmt.Errorf("cache sizes must be positive")
	}
	if c.RateLimitCapacity <= 0 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
