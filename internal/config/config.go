package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Cart        CartConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type CartConfig struct {
	// SnapshotBackend selects where the cart item list persists:
	// "file" or "redis"
	SnapshotBackend string
	SnapshotDir     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CART_SNAPSHOT_BACKEND", "file")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:           getEnvOrViper("DB_HOST", "localhost"),
			Port:           getEnvOrViper("DB_PORT", "5432"),
			User:           getEnvOrViper("DB_USER", "postgres"),
			Password:       getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:         getEnvOrViper("DB_NAME", "experium"),
			SSLMode:        getEnvOrViper("DB_SSLMODE", "disable"),
			MigrationsPath: getEnvOrViper("DB_MIGRATIONS_PATH", "internal/repository/postgres/migrations"),
		},
		Cart: CartConfig{
			SnapshotBackend: getEnvOrViper("CART_SNAPSHOT_BACKEND", "file"),
			SnapshotDir:     getEnvOrViper("CART_SNAPSHOT_DIR", "."),
			RedisAddr:       getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			RedisPassword:   getEnvOrViper("REDIS_PASSWORD", ""),
			RedisDB:         getIntEnvOrViper("REDIS_DB", 0),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate snapshot backend choice
	if cfg.Cart.SnapshotBackend != "file" && cfg.Cart.SnapshotBackend != "redis" {
		return nil, fmt.Errorf("CART_SNAPSHOT_BACKEND must be \"file\" or \"redis\", got %q", cfg.Cart.SnapshotBackend)
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getIntEnvOrViper(key string, defaultValue int) int {
	if val := getEnvOrViper(key, ""); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultValue
}
