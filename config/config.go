package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not fatal; the environment may already be configured.
func LoadEnv() error {
	possiblePaths := []string{
		".env",
		"../.env",
		os.Getenv("BLI_ENV"),
	}

	for _, path := range possiblePaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			log.Printf("Loading environment variables from %s", path)
			return godotenv.Load(path)
		}
	}
	return nil
}

// Server settings.
func GetPort() string {
	return getEnvWithDefault("PORT", "8080")
}

func GetMaxUploadSizeMB() int {
	return getEnvAsInt("MAX_UPLOAD_SIZE_MB", 50)
}

// Text-generation backend settings. The default targets a local Ollama
// runtime; any failure falls back to the rule-based responder.
func GetOllamaURL() string {
	return getEnvWithDefault("OLLAMA_URL", "http://localhost:11434")
}

func GetOllamaModel() string {
	return getEnvWithDefault("OLLAMA_MODEL", "llama3.2:1b")
}

func GetLLMTimeout() time.Duration {
	return time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second
}

func GetCORSDebug() bool {
	return getEnvAsBool("CORS_DEBUG", false)
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
