package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads environment variables from .env/.env.local files.
// It attempts each supported filename in order and stops at the first
// successfully parsed file. Existing process environment variables are never
// overwritten (godotenv semantics). Absence of any env file is not an error.
func LoadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to parse env file", "path", envPath, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", envPath)
		return
	}
}

// Environment reads the build environment flag once. The empty string (unset)
// is a valid value and selects the non-production branch.
func Environment() string {
	return os.Getenv(EnvVar)
}
