// Package config loads the application configuration from environment variables.
// Every problem found while loading is collected, so a misconfigured deployment
// reports all missing or invalid variables at once instead of one per restart.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// DatabaseConfig represents configuration for the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxSize        int
	MigrateOnStart bool
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret            string        // Secret key for signing JWTs
	AccessTokenDuration  time.Duration // Duration for access tokens
	RefreshTokenDuration time.Duration // Duration for refresh tokens
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

// PaginationConfig bounds the page size accepted on list endpoints.
type PaginationConfig struct {
	DefaultSize int
	MaxSize     int
}

// ImportConfig holds bulk import limits.
type ImportConfig struct {
	MaxUploadBytes int64
}

// MonitorConfig drives the background due-date monitor. A zero Interval disables it.
type MonitorConfig struct {
	Interval    time.Duration
	HorizonDays int
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	StorageBackend string
	Database       *DatabaseConfig
	Auth           *AuthConfig
	Server         *ServerConfig
	Pagination     *PaginationConfig
	Import         *ImportConfig
	Monitor        *MonitorConfig
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// Helper function to get an optional environment variable parsed as a bool.
func getOptionalEnvBool(key string, defaultValue bool, errors *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// Helper function to get an optional environment variable parsed as time.Duration.
// `time.ParseDuration` expects a string like "15m", "1h30s".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the pool size between 5 and 100, reporting out-of-range values.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5", varName, size))
		return 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100", varName, size))
		return 100
	}
	return size
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	backend := strings.ToLower(getOptionalEnv("STORAGE_BACKEND", StoragePostgres))
	if backend != StoragePostgres && backend != StorageMemory {
		errors = append(errors, fmt.Sprintf("invalid value for STORAGE_BACKEND: expected %q or %q, got %q", StoragePostgres, StorageMemory, backend))
	}

	// Database credentials are only mandatory when postgres is the backend.
	var database *DatabaseConfig
	if backend == StoragePostgres {
		database = &DatabaseConfig{
			User:           getRequiredEnv("DB_USER", &errors),
			Password:       getRequiredEnv("DB_PASSWORD", &errors),
			DBName:         getRequiredEnv("DB_NAME", &errors),
			Host:           getOptionalEnv("DB_HOST", "localhost"),
			Port:           getOptionalEnvInt("DB_PORT", 5432, &errors),
			SSLMode:        getOptionalEnv("DB_SSLMODE", "disable"),
			MaxSize:        clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors),
			MigrateOnStart: getOptionalEnvBool("MIGRATE_ON_START", true, &errors),
		}
	}

	authConfig := &AuthConfig{
		JWTSecret:            getRequiredEnv("JWT_SECRET", &errors),
		AccessTokenDuration:  getOptionalEnvDuration("JWT_ACCESS_TOKEN_DURATION", 15*time.Minute, &errors),
		RefreshTokenDuration: getOptionalEnvDuration("JWT_REFRESH_TOKEN_DURATION", 168*time.Hour, &errors), // 7 days
	}

	serverConfig := &ServerConfig{
		Port:               getOptionalEnv("PORT", "8080"),
		RequestTimeout:     getOptionalEnvDuration("REQUEST_TIMEOUT", 60*time.Second, &errors),
		CORSAllowedOrigins: splitList(getOptionalEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	pagination := &PaginationConfig{
		DefaultSize: getOptionalEnvInt("PAGE_SIZE_DEFAULT", 20, &errors),
		MaxSize:     getOptionalEnvInt("PAGE_SIZE_MAX", 100, &errors),
	}
	if pagination.DefaultSize < 1 || pagination.MaxSize < pagination.DefaultSize {
		errors = append(errors, fmt.Sprintf("invalid pagination: PAGE_SIZE_DEFAULT=%d must be at least 1 and not exceed PAGE_SIZE_MAX=%d", pagination.DefaultSize, pagination.MaxSize))
	}

	importConfig := &ImportConfig{
		MaxUploadBytes: int64(getOptionalEnvInt("IMPORT_MAX_UPLOAD_BYTES", 10<<20, &errors)),
	}
	if importConfig.MaxUploadBytes <= 0 {
		errors = append(errors, "IMPORT_MAX_UPLOAD_BYTES must be positive")
	}

	monitor := &MonitorConfig{
		Interval:    getOptionalEnvDuration("DUE_MONITOR_INTERVAL", time.Minute, &errors),
		HorizonDays: getOptionalEnvInt("DUE_MONITOR_HORIZON_DAYS", 7, &errors),
	}
	if monitor.Interval < 0 || monitor.HorizonDays < 0 {
		errors = append(errors, "DUE_MONITOR_INTERVAL and DUE_MONITOR_HORIZON_DAYS must not be negative")
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		StorageBackend: backend,
		Database:       database,
		Auth:           authConfig,
		Server:         serverConfig,
		Pagination:     pagination,
		Import:         importConfig,
		Monitor:        monitor,
	}, nil
}
