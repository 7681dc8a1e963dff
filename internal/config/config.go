package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultMongoDatabase     = "competitor_intelligence"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "anthropic/claude-3.5-sonnet"
	defaultMaxBodyBytes      = 1 << 20 // 1 MiB request body cap
)

type Config struct {
	HTTPPort    string
	Environment string
	LogLevel    string
	LogFormat   string

	MongoURI      string
	MongoDatabase string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string

	MaxBodyBytes int64
}

// Load resolves configuration from the environment once at startup.
// A .env file is honored when present so local runs don't need exported vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "production"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", defaultMongoDatabase),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", defaultOpenRouterBaseURL),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", defaultOpenRouterModel),

		MaxBodyBytes: getEnvAsInt64("MAX_BODY_BYTES", defaultMaxBodyBytes),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI environment variable is required")
	}
	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is required")
	}

	return cfg, nil
}

// Development reports whether the service runs in a development-like mode,
// which loosens error redaction (stack traces in 500 responses).
func (c *Config) Development() bool {
	return c.Environment == "development"
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return value
	}
	return defaultValue
}
