package config

import (
	"os"
)

// JwtKey signs and verifies the session tokens issued at login.
var JwtKey []byte

// Settings holds the environment-driven configuration for the application.
type Settings struct {
	ServerAddr string

	// Export settings for the billing hand-off file.
	ExportSystemName  string
	ExportPointOfSale string
}

// Load reads settings from the environment, falling back to development
// defaults where a value is not set.
func Load() *Settings {
	JwtKey = []byte(getEnv("JWT_SECRET", "dev-secret-change-me"))

	return &Settings{
		ServerAddr:        getEnv("SERVER_ADDR", ":8080"),
		ExportSystemName:  getEnv("EXPORT_SYSTEM_NAME", "saga"),
		ExportPointOfSale: getEnv("EXPORT_POINT_OF_SALE", "00003"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
