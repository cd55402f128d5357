package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// booking time zones must resolve on hosts without a zoneinfo database
	_ "time/tzdata"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	Catalog   CatalogConfig
	Search    SearchConfig
	Booking   BookingConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	Env            string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL     string
	APIKey  string
	Enabled bool
}

// CatalogConfig selects and tunes the hospital data provider
type CatalogConfig struct {
	// Source is "mock" for the built-in catalog or "sheet" for the remote sheet API.
	Source        string
	SheetEndpoint string
	SheetTimeout  time.Duration
	CacheTTL      time.Duration
	WarmInterval  time.Duration
}

// SearchConfig holds filter/sort defaults
type SearchConfig struct {
	PriceCeiling float64
}

// BookingConfig holds booking configuration
type BookingConfig struct {
	// Store is "memory" or "postgres".
	Store    string
	Timezone string
	// Submitter is "log" or "sheet".
	Submitter string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Env:            getEnv("ENV", "production"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "hospital_finder"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		Typesense: TypesenseConfig{
			URL:     getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey:  getEnv("TYPESENSE_API_KEY", "xyz"),
			Enabled: getEnvAsBool("TYPESENSE_ENABLED", false),
		},
		Catalog: CatalogConfig{
			Source:        getEnv("CATALOG_SOURCE", "mock"),
			SheetEndpoint: getEnv("SHEET_API_ENDPOINT", ""),
			SheetTimeout:  getEnvAsDuration("SHEET_TIMEOUT", 10*time.Second),
			CacheTTL:      getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			WarmInterval:  getEnvAsDuration("CATALOG_WARM_INTERVAL", 5*time.Minute),
		},
		Search: SearchConfig{
			PriceCeiling: getEnvAsFloat("PRICE_CEILING", 100000),
		},
		Booking: BookingConfig{
			Store:     getEnv("BOOKING_STORE", "memory"),
			Timezone:  getEnv("BOOKING_TIMEZONE", "Asia/Kolkata"),
			Submitter: getEnv("BOOKING_SUBMITTER", "log"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "hospital-finder"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case "mock":
	case "sheet":
		if c.Catalog.SheetEndpoint == "" {
			return fmt.Errorf("SHEET_API_ENDPOINT is required when CATALOG_SOURCE=sheet")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}

	switch c.Booking.Store {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unknown BOOKING_STORE %q", c.Booking.Store)
	}

	switch c.Booking.Submitter {
	case "log":
	case "sheet":
		if c.Catalog.SheetEndpoint == "" {
			return fmt.Errorf("SHEET_API_ENDPOINT is required when BOOKING_SUBMITTER=sheet")
		}
	default:
		return fmt.Errorf("unknown BOOKING_SUBMITTER %q", c.Booking.Submitter)
	}

	if c.Search.PriceCeiling <= 0 {
		return fmt.Errorf("PRICE_CEILING must be positive, got %v", c.Search.PriceCeiling)
	}

	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.Booking.Timezone, err)
	}
	return nil
}

// Location returns the booking time zone. Load has already validated it.
func (c *BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
