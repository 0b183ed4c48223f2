package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL          string
	Port                 string
	IsProduction         bool
	EnableDBCheck        bool
	StorageDriver        string
	BaseCurrency         string
	SettlementMaxRetries int
	JWTSecret            string
	CORSAllowedOrigins   []string
	RateLimit            string // ulule limiter format, e.g. "100-M"
	MigrationsPath       string
	AutoMigrate          bool
	LogLevel             string
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Real environment variables win over .env values, which win over defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("BASE_CURRENCY", "EUR")
	v.SetDefault("SETTLEMENT_MAX_RETRIES", 3)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          v.GetString("PGSQL_URL"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:        strings.ToLower(v.GetString("STORAGE_DRIVER")),
		BaseCurrency:         strings.ToUpper(v.GetString("BASE_CURRENCY")),
		SettlementMaxRetries: v.GetInt("SETTLEMENT_MAX_RETRIES"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:            v.GetString("RATE_LIMIT"),
		MigrationsPath:       v.GetString("MIGRATIONS_PATH"),
		AutoMigrate:          v.GetBool("AUTO_MIGRATE"),
		LogLevel:             strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if len(cfg.BaseCurrency) != 3 {
		return nil, fmt.Errorf("BASE_CURRENCY must be a 3-letter code, got %q", cfg.BaseCurrency)
	}

	if cfg.SettlementMaxRetries < 1 {
		log.Printf("Warning: invalid SETTLEMENT_MAX_RETRIES (%d). Defaulting to 3.\n", cfg.SettlementMaxRetries)
		cfg.SettlementMaxRetries = 3
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
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
