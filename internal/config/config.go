package config

import (
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

// Config is the centralized application configuration, populated from
// environment variables. A local .env file is auto-loaded when present;
// real environment variables take precedence.
type Config struct {
	Port string

	// DatabaseURL is optional; without it the server falls back to
	// file-based snapshot storage and disables the experiences API.
	DatabaseURL string

	// SnapshotDir is where per-user snapshot files live when no database
	// is configured.
	SnapshotDir string

	// CaptureWidth is the emulated browser viewport width in pixels used
	// for PDF capture.
	CaptureWidth int64
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SnapshotDir:  getEnv("SNAPSHOT_DIR", "resume-data/snapshots"),
		CaptureWidth: getEnvInt64("CAPTURE_WIDTH", 1200),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
