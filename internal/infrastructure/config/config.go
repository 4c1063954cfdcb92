// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Postgres
	PostgresURI string

	// MongoDB
	MongoURI string
	MongoDB  string

	// Mail relay
	MailerEndpoint string

	// Tracking
	PublicOrigin       string
	MapRefreshInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresURI: getEnv("POSTGRES_URI", ""),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "emeloc"),

		MailerEndpoint: getEnv("MAILER_ENDPOINT", ""),

		PublicOrigin:       getEnv("PUBLIC_ORIGIN", "http://localhost:5173"),
		MapRefreshInterval: time.Duration(getEnvAsInt("MAP_REFRESH_INTERVAL_MS", 5000)) * time.Millisecond,
	}

	if config.PostgresURI == "" {
		return nil, fmt.Errorf("POSTGRES_URI is required")
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
