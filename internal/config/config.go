package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the canteen server and client tools.
// Following 12-factor app principles, all config is loaded from environment variables,
// optionally seeded from a .env file in the working directory.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Client   ClientConfig
	Redis    RedisConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	SessionSecret string
	// StaffAccounts maps staff id to bcrypt password hash
	StaffAccounts map[string]string
	StaffDomain   string
	// ProtectMutations requires a staff session on status and menu updates
	ProtectMutations bool
	SessionMaxAge    time.Duration
}

type ClientConfig struct {
	BaseURL string
	// Credentials is "listing" (only the order listing sends cookies) or "always"
	Credentials string
	StateDir    string
}

type RedisConfig struct {
	URL        string
	SessionTTL time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	accounts, err := parseStaffAccounts(getEnv("STAFF_ACCOUNTS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			SessionSecret:    getEnv("SESSION_SECRET", "canteen-dev-session-secret-32byt"),
			StaffAccounts:    accounts,
			StaffDomain:      getEnv("STAFF_DOMAIN", "slps.one"),
			ProtectMutations: getEnvAsBool("AUTH_PROTECT_MUTATIONS", false),
			SessionMaxAge:    getEnvAsDuration("SESSION_MAX_AGE", 12*time.Hour),
		},
		Client: ClientConfig{
			BaseURL:     getEnv("CANTEEN_BASE_URL", "http://localhost:8080"),
			Credentials: getEnv("CANTEEN_CREDENTIALS", "listing"),
			StateDir:    getEnv("CANTEEN_STATE_DIR", defaultStateDir()),
		},
		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", ""),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters")
	}

	if c.Client.BaseURL == "" {
		return fmt.Errorf("CANTEEN_BASE_URL is required")
	}

	if c.Client.Credentials != "listing" && c.Client.Credentials != "always" {
		return fmt.Errorf("invalid CANTEEN_CREDENTIALS: %s (must be listing or always)", c.Client.Credentials)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// parseStaffAccounts parses "id=hash,id=hash" pairs
func parseStaffAccounts(raw string) (map[string]string, error) {
	accounts := make(map[string]string)
	if raw == "" {
		return accounts, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		id, hash, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || id == "" || hash == "" {
			return nil, fmt.Errorf("STAFF_ACCOUNTS entry %q must look like id=bcrypt-hash", pair)
		}
		accounts[id] = hash
	}
	return accounts, nil
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "canteen")
	}
	return filepath.Join(dir, "canteen")
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
