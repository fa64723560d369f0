package config

import (
	"os"
	"strconv"
	"time"

	"tourhub/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Auth       AuthConfig
	Media      MediaConfig
	Monitor    MonitorConfig
	Pagination PaginationConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	OpsPort         string
	GinMode         string
	ShutdownTimeout time.Duration
	PprofEnabled    bool
}

// AuthConfig holds token and cookie settings
type AuthConfig struct {
	JWTSecret    string
	Issuer       string
	TokenTTL     time.Duration
	CookieName   string
	CookieSecure bool
}

// MediaConfig holds media storage settings. Driver is "cloud" or
// "disk"; the cloud settings are the service-wide fallback when a
// seller has no credentials of their own.
type MediaConfig struct {
	Driver      string
	CloudName   string
	APIKey      string
	APISecret   string
	UploadDir   string
	BaseURL     string
	MaxUploadMB int64
}

// MonitorConfig holds uptime monitoring settings
type MonitorConfig struct {
	Enabled      bool
	ProbeTimeout time.Duration
	RetainChecks int
}

// PaginationConfig holds the hybrid pagination settings
type PaginationConfig struct {
	StreamThreshold int64
	DefaultPerPage  int
	MaxPerPage      int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			OpsPort:         getEnvOrDefault("OPS_PORT", "6060"),
			GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
			PprofEnabled:    getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			Issuer:       getEnvOrDefault("JWT_ISSUER", "tourhub"),
			TokenTTL:     getEnvDurationOrDefault("TOKEN_TTL", 24*time.Hour),
			CookieName:   getEnvOrDefault("AUTH_COOKIE_NAME", "access_token"),
			CookieSecure: getEnvBoolOrDefault("AUTH_COOKIE_SECURE", true),
		},
		Media: MediaConfig{
			Driver:      getEnvOrDefault("MEDIA_DRIVER", "disk"),
			CloudName:   os.Getenv("MEDIA_CLOUD_NAME"),
			APIKey:      os.Getenv("MEDIA_API_KEY"),
			APISecret:   os.Getenv("MEDIA_API_SECRET"),
			UploadDir:   getEnvOrDefault("MEDIA_UPLOAD_DIR", "./uploads"),
			BaseURL:     getEnvOrDefault("MEDIA_BASE_URL", "/media"),
			MaxUploadMB: int64(getEnvIntOrDefault("MEDIA_MAX_UPLOAD_MB", 10)),
		},
		Monitor: MonitorConfig{
			Enabled:      getEnvBoolOrDefault("MONITOR_ENABLED", true),
			ProbeTimeout: getEnvDurationOrDefault("MONITOR_PROBE_TIMEOUT", 10*time.Second),
			RetainChecks: getEnvIntOrDefault("MONITOR_RETAIN_CHECKS", 500),
		},
		Pagination: PaginationConfig{
			StreamThreshold: int64(getEnvIntOrDefault("PAGINATION_STREAM_THRESHOLD", 10000)),
			DefaultPerPage:  getEnvIntOrDefault("PAGINATION_DEFAULT_PER_PAGE", 20),
			MaxPerPage:      getEnvIntOrDefault("PAGINATION_MAX_PER_PAGE", 100),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.ConfigInvalid("JWT_SECRET is required")
	}
	if cfg.Media.Driver != "disk" && cfg.Media.Driver != "cloud" {
		return errors.ConfigInvalid("MEDIA_DRIVER must be disk or cloud")
	}
	if cfg.Media.Driver == "cloud" && (cfg.Media.CloudName == "" || cfg.Media.APIKey == "" || cfg.Media.APISecret == "") {
		return errors.ConfigInvalid("cloud media driver requires MEDIA_CLOUD_NAME, MEDIA_API_KEY and MEDIA_API_SECRET")
	}
	if cfg.Pagination.StreamThreshold < 1 {
		return errors.ConfigInvalid("PAGINATION_STREAM_THRESHOLD must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
