package core

import (
	"os"
)

// Config holds the application configuration.
type Config struct {
	LogLevel     string // debug, info, warn, error
	APIKey       string // Required for generation operations
	BaseURL      string // Generation service base URL
	DefaultModel string // Default model identifier
	BaseDir      string // Study store base directory
}

// LoadConfig loads configuration from environment variables. The API key is
// not required here; it is validated when a generation operation is
// attempted.
func LoadConfig() (*Config, error) {
	logLevel := getEnvOrDefault("FMECA_LOG_LEVEL", "info")
	if os.Getenv("DEBUG") == "1" {
		logLevel = "debug"
	}

	return &Config{
		LogLevel:     logLevel,
		APIKey:       os.Getenv("OPENROUTER_API_KEY"),
		BaseURL:      getEnvOrDefault("FMECA_BASE_URL", "https://openrouter.ai/api/v1"),
		DefaultModel: getEnvOrDefault("FMECA_MODEL", "anthropic/claude-3.5-sonnet"),
		BaseDir:      getEnvOrDefault("FMECA_DIR", ".fmeca"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
