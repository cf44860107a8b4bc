// Package common provides shared utilities for CityPulse
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// DefaultJWTSecret is the development signing secret. ValidateRequired rejects it in production.
const DefaultJWTSecret = "dev-jwt-secret-change-in-production"

// Config holds all configuration for CityPulse
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Auth        AuthConfig    `toml:"auth"`
	OTP         OTPConfig     `toml:"otp"`
	Data        DataConfig    `toml:"data"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend   string `toml:"backend"` // "file" (default) or "surrealdb"
	Path      string `toml:"path"`    // base directory for the file backend
	Address   string `toml:"address"` // SurrealDB websocket RPC address
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// AuthConfig holds JWT signing configuration.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// OTPConfig controls one-time-password issuance.
type OTPConfig struct {
	Mode      string  `toml:"mode"`       // "mock" accepts any 6-digit code, "live" checks the issued code
	TTL       string  `toml:"ttl"`        // code lifetime, default "5m"
	SendRate  float64 `toml:"send_rate"`  // sends per second per phone
	SendBurst int     `toml:"send_burst"` // burst allowance per phone
}

// GetTTL parses and returns the OTP lifetime.
func (c *OTPConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// IsMock reports whether OTP verification runs in demo mode.
func (c *OTPConfig) IsMock() bool {
	return !strings.EqualFold(strings.TrimSpace(c.Mode), "live")
}

// DataConfig controls the demo data set.
type DataConfig struct {
	Seed           int64  `toml:"seed"`            // 0 means seed from the clock
	ComplaintCount int    `toml:"complaint_count"` // number of generated complaints
	CatalogPath    string `toml:"catalog_path"`    // optional YAML department catalog
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Backend:   "file",
			Path:      "data",
			Address:   "ws://localhost:8000/rpc",
			Namespace: "citypulse",
			Database:  "citypulse",
			Username:  "root",
			Password:  "root",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			JWTSecret:   DefaultJWTSecret,
			TokenExpiry: "24h",
		},
		OTP: OTPConfig{
			Mode:      "mock",
			TTL:       "5m",
			SendRate:  1.0 / 30,
			SendBurst: 3,
		},
		Data: DataConfig{
			ComplaintCount: 50,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// A .env file in the working directory is applied to the environment first
// without overriding variables that are already set.
func LoadConfig(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CITYPULSE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("CITYPULSE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("CITYPULSE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("CITYPULSE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("CITYPULSE_DATA_PATH"); path != "" {
		config.Storage.Path = filepath.Clean(path)
	}

	if backend := os.Getenv("CITYPULSE_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = strings.ToLower(backend)
	}

	if addr := os.Getenv("CITYPULSE_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}

	if v := os.Getenv("CITYPULSE_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("CITYPULSE_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}

	if v := os.Getenv("CITYPULSE_OTP_MODE"); v != "" {
		config.OTP.Mode = v
	}

	if v := os.Getenv("CITYPULSE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Data.Seed = seed
		}
	}

	if v := os.Getenv("CITYPULSE_CATALOG_PATH"); v != "" {
		config.Data.CatalogPath = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ValidateRequired returns the names of settings that must be changed before
// the server can run in its current environment.
func (c *Config) ValidateRequired() []string {
	var missing []string

	if c.Auth.JWTSecret == "" || (c.IsProduction() && c.Auth.JWTSecret == DefaultJWTSecret) {
		missing = append(missing, "auth.jwt_secret")
	}
	if strings.EqualFold(c.Storage.Backend, "surrealdb") && c.Storage.Address == "" {
		missing = append(missing, "storage.address")
	}
	if c.IsProduction() && c.OTP.IsMock() {
		missing = append(missing, "otp.mode")
	}

	return missing
}
