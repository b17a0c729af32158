// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Routing backends selectable with ROUTING_PROVIDER.
const (
	ProviderORS  = "ors"
	ProviderMock = "mock"
)

type Config struct {
	Port            string
	DBPath          string
	DatabaseURL     string
	SeedPath        string
	RoutingProvider string
	ORSAPIKey       string
	ORSBaseURL      string
	ORSTimeout      time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	DirectionsTTL   time.Duration
	LogLevel        string
	LogFormat       string
}

// Load reads a .env file when present and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		Port:            Get("PORT", "8080"),
		DBPath:          Get("DB_PATH", "data/app.db"),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SeedPath:        Get("SEED_PATH", "data/seeds/caches.json"),
		RoutingProvider: strings.ToLower(Get("ROUTING_PROVIDER", ProviderORS)),
		ORSAPIKey:       strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		ORSBaseURL:      Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ORSTimeout:      getSeconds("ORS_TIMEOUT_SECONDS", 10),
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getInt("REDIS_DB", 0),
		DirectionsTTL:   getSeconds("DIRECTIONS_CACHE_TTL_SECONDS", 3600),
		LogLevel:        Get("LOG_LEVEL", "info"),
		LogFormat:       Get("LOG_FORMAT", "text"),
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	var errs []error
	switch c.RoutingProvider {
	case ProviderORS:
		if c.ORSAPIKey == "" {
			errs = append(errs, errors.New("ORS_API_KEY is required when ROUTING_PROVIDER=ors"))
		}
	case ProviderMock:
	default:
		errs = append(errs, errors.New("ROUTING_PROVIDER must be ors or mock"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must be non-empty"))
	}
	return errors.Join(errs...)
}

// Get returns the environment value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func getSeconds(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Second
}
