// Package config loads taskrank settings from a TOML file, .env and the
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultFile is the project config file looked up in the working directory.
const DefaultFile = "taskrank.toml"

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string `toml:"app_env"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Ranking
	DefaultStrategy string `toml:"default_strategy"`
	StrictStrategy  bool   `toml:"strict_strategy"`
	MaxBatchSize    int    `toml:"max_batch_size"`
	SuggestLimit    int    `toml:"suggest_limit"`

	// HTTP
	HTTPAddr    string   `toml:"http_addr"`
	CORSOrigins []string `toml:"cors_origins"`

	// Database. An empty URL selects SQLite at SQLitePath.
	DatabaseURL    string `toml:"database_url"`
	DatabaseDriver string `toml:"database_driver"`
	SQLitePath     string `toml:"sqlite_path"`

	// Cache. An empty Redis URL selects the in-memory cache.
	RedisURL string        `toml:"redis_url"`
	CacheTTL time.Duration `toml:"cache_ttl"`

	// Events. An empty RabbitMQ URL selects the in-process bus.
	RabbitMQURL string `toml:"rabbitmq_url"`

	// MCP
	MCPAddr      string `toml:"mcp_addr"`
	MCPAuthToken string `toml:"mcp_auth_token"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		AppEnv:          "development",
		LogLevel:        "info",
		LogFormat:       "text",
		DefaultStrategy: "smart",
		MaxBatchSize:    500,
		SuggestLimit:    3,
		HTTPAddr:        "127.0.0.1:8000",
		CacheTTL:        5 * time.Minute,
		MCPAddr:         "127.0.0.1:8082",
	}
}

// Load builds the configuration. path names a TOML file that must exist;
// when empty, DefaultFile is read if present.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// .env is optional.
	_ = godotenv.Load()

	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	cfg.DefaultStrategy = getEnv("TASKRANK_DEFAULT_STRATEGY", cfg.DefaultStrategy)
	cfg.StrictStrategy = getBoolEnv("TASKRANK_STRICT_STRATEGY", cfg.StrictStrategy)
	cfg.MaxBatchSize = getIntEnv("TASKRANK_MAX_BATCH_SIZE", cfg.MaxBatchSize)
	cfg.SuggestLimit = getIntEnv("TASKRANK_SUGGEST_LIMIT", cfg.SuggestLimit)

	cfg.HTTPAddr = getEnv("TASKRANK_HTTP_ADDR", cfg.HTTPAddr)
	cfg.CORSOrigins = getListEnv("TASKRANK_CORS_ORIGINS", cfg.CORSOrigins)

	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DatabaseDriver = getEnv("DATABASE_DRIVER", cfg.DatabaseDriver)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)

	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.CacheTTL = getDurationEnv("CACHE_TTL", cfg.CacheTTL)

	cfg.RabbitMQURL = getEnv("RABBITMQ_URL", cfg.RabbitMQURL)

	cfg.MCPAddr = getEnv("MCP_ADDR", cfg.MCPAddr)
	cfg.MCPAuthToken = getEnv("MCP_AUTH_TOKEN", cfg.MCPAuthToken)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks numeric limits.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxBatchSize < 1 {
		errs = append(errs, fmt.Errorf("max_batch_size must be positive, got %d", c.MaxBatchSize))
	}
	if c.SuggestLimit < 1 {
		errs = append(errs, fmt.Errorf("suggest_limit must be positive, got %d", c.SuggestLimit))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping blanks.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
