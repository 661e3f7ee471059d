package app

import "os"

type Config struct {
	Driver       string // Storage driver: surreal or sqlite (default: surreal)
	DatabaseFile string // Optional: path to SQLite database file (default: ./fanapen.db)
	Env          string // Environment (dev, staging, prod) (default: dev)
	LogLevel     string // Log level (debug, info, warn, error) (default: info)
	LogFormat    string // Log format (json, text) (default: json)
}

// LoadConfig reads the app settings from the environment. The surreal
// driver's own SURREAL_* settings are read by the driver itself.
func LoadConfig() Config {
	return Config{
		Driver:       getEnvOrDefault("DB_DRIVER", "surreal"),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "fanapen.db"),
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
