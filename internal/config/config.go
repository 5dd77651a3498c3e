package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database
	DatabaseDriver string `yaml:"database_driver"`
	DatabaseURL    string `yaml:"database_url"`

	// Supabase storage for photos and workbooks
	SupabaseURL            string `yaml:"supabase_url"`
	SupabasePublishableKey string `yaml:"supabase_publishable_key"`
	SupabaseStorageBucket  string `yaml:"supabase_storage_bucket"`

	// Local blob fallback when Supabase is not configured
	BlobDir string `yaml:"blob_dir"`

	// Auth
	JWTSecret string `yaml:"jwt_secret"`

	// Documents
	SpreadsheetURL string `yaml:"spreadsheet_url"`
	Timezone       string `yaml:"timezone"`

	// Server
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	BaseURL     string `yaml:"base_url"`
	LogLevel    string `yaml:"log_level"`
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "inspection-reports"),

		BlobDir: getEnv("BLOB_DIR", "data/blobs"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		SpreadsheetURL: getEnv("SPREADSHEET_URL", ""),
		Timezone:       getEnv("TIMEZONE", "Asia/Seoul"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	// An optional YAML file overrides whatever the environment provided.
	if path := os.Getenv("INSPECTION_CONFIG"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite3":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %q", c.DatabaseDriver)
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.SupabaseURL != "" && c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required when SUPABASE_URL is set")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UseSupabase reports whether blobs go to Supabase Storage instead of BlobDir.
func (c *Config) UseSupabase() bool {
	return c.SupabaseURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
