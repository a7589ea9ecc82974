package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	API      APIConfig
	Session  SessionConfig
	Seed     SeedConfig
	Customer CustomerConfig
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port           int
	AllowedOrigins []string
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	Backend  string
	RedisURL string
	TTL      time.Duration
}

// SeedConfig controls the generated part of the collection
type SeedConfig struct {
	RandomCount int
	// Value seeds the generator; 0 draws a new seed on every refresh
	Value uint64
}

// CustomerConfig holds customer collection settings
type CustomerConfig struct {
	DefaultPageSize int
	NodeID          int64
}

// Load reads configuration from an optional .env file and the environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	apiPort, err := strconv.Atoi(getEnv("API_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}

	ttlMinutes, err := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES: %w", err)
	}
	if ttlMinutes <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES: must be positive")
	}

	randomCount, err := strconv.Atoi(getEnv("SEED_RANDOM_COUNT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_RANDOM_COUNT: %w", err)
	}
	if randomCount < 0 {
		return nil, fmt.Errorf("invalid SEED_RANDOM_COUNT: must not be negative")
	}

	seedValue, err := strconv.ParseUint(getEnv("SEED_VALUE", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_VALUE: %w", err)
	}

	pageSize, err := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: %w", err)
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: must be between 1 and 100")
	}

	nodeID, err := strconv.ParseInt(getEnv("NODE_ID", "1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid NODE_ID: %w", err)
	}

	backend := strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendMemory))
	if backend != SessionBackendMemory && backend != SessionBackendRedis {
		return nil, fmt.Errorf("invalid SESSION_BACKEND: %q", backend)
	}

	return &Config{
		API: APIConfig{
			Port:           apiPort,
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Session: SessionConfig{
			Backend:  backend,
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
			TTL:      time.Duration(ttlMinutes) * time.Minute,
		},
		Seed: SeedConfig{
			RandomCount: randomCount,
			Value:       seedValue,
		},
		Customer: CustomerConfig{
			DefaultPageSize: pageSize,
			NodeID:          nodeID,
		},
	}, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
