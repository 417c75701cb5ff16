package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort        = 8080
	defaultBaseURL     = "http://localhost:8080"
	defaultDatabaseURL = "./data/tinyclonec.db"
)

// Config holds runtime configuration with sensible defaults for local dev.
type Config struct {
	Port        int    // HTTP port (default 8080)
	BaseURL     string // e.g., http://localhost:8080 (no trailing slash)
	DatabaseURL string // SQLite path or postgres:// URL
}

// FromEnv loads configuration from environment variables, falling back to
// defaults. Recognized: PORT, BASE_URL, DATABASE_URL.
// A local ".env" file is loaded first if present; real environment
// variables win over it.
func FromEnv() Config {
	_ = godotenv.Load() // best-effort; a missing .env is fine

	return Config{
		Port:        getEnvInt("PORT", defaultPort),
		BaseURL:     sanitizeBaseURL(getEnv("BASE_URL", defaultBaseURL)),
		DatabaseURL: getEnv("DATABASE_URL", defaultDatabaseURL),
	}
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// getEnvInt falls back for unset, non-numeric, and non-positive values;
// a port of 0 or below is never what the caller meant.
func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// sanitizeBaseURL drops trailing slashes so short links can be built by
// plain concatenation with "/" + code.
func sanitizeBaseURL(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	if s == "" {
		return defaultBaseURL
	}
	return s
}
