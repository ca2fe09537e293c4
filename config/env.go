package config

import "os"

// GetEnv returns the value of an environment variable, empty string if unset.
// Variables are loaded from .env once at startup via godotenv in main.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault returns the environment variable value or a fallback.
func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
