package config

import (
	"os"
	"strconv"
	"time"

	"detectlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Provider ProviderConfig
	Server   ServerConfig
	Lab      LabConfig
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case the file-backed store is used instead of postgres.
type DatabaseConfig struct {
	URL string
}

// ProviderConfig holds live provider settings
type ProviderConfig struct {
	OpenAIKey   string
	OpenAIModel string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// ServerConfig holds web server settings. Port serves the JSON API,
// DashboardPort the browser dashboard.
type ServerConfig struct {
	Port          string
	DashboardPort string
}

// LabConfig holds detection lab paths and tunables
type LabConfig struct {
	DataDir      string
	SegmentMode  string // "space" or "newline"
	ContextNotes string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Provider: ProviderConfig{
			OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
			OpenAIModel: getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Timeout:     getEnvDurationOrDefault("PROVIDER_TIMEOUT", 60*time.Second),
			Temperature: getEnvFloatOrDefault("PROVIDER_TEMPERATURE", 0.7),
			MaxTokens:   getEnvIntOrDefault("PROVIDER_MAX_TOKENS", 1024),
		},
		Server: ServerConfig{
			Port:          getEnvOrDefault("SERVER_PORT", "8080"),
			DashboardPort: getEnvOrDefault("DASHBOARD_PORT", "8081"),
		},
		Lab: LabConfig{
			DataDir:      getEnvOrDefault("LAB_DATA_DIR", "lab_data"),
			SegmentMode:  getEnvOrDefault("SEGMENT_MODE", "space"),
			ContextNotes: os.Getenv("LAB_CONTEXT_NOTES"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Lab.DataDir == "" {
		return errors.ConfigInvalid("LAB_DATA_DIR cannot be empty")
	}
	if mode := cfg.Lab.SegmentMode; mode != "space" && mode != "newline" {
		return errors.ConfigInvalid("SEGMENT_MODE must be \"space\" or \"newline\"")
	}
	if cfg.Provider.Timeout <= 0 {
		return errors.ConfigInvalid("PROVIDER_TIMEOUT must be positive")
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloatOrDefault(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDurationOrDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
