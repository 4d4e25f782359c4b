// Package config provides configuration management for the LegalEase client.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the LegalEase client.
type Config struct {
	// ServiceURL is the base address of the analysis service.
	ServiceURL string

	// DataDir is the directory for persistent data (SQLite DB).
	DataDir string

	// DatabasePath is the full path to the SQLite database file.
	DatabasePath string

	// GatewayAddr is the address the local gateway listens on (e.g., ":7080").
	GatewayAddr string
}

// Load creates a Config from environment variables with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	dataDir := envOr("LEGALEASE_DATA_DIR", defaultDataDir())
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	cfg := &Config{
		ServiceURL:   envOr("LEGALEASE_SERVICE_URL", "http://localhost:8000"),
		DataDir:      dataDir,
		DatabasePath: filepath.Join(dataDir, "legalease.db"),
		GatewayAddr:  envOr("LEGALEASE_ADDR", ":7080"),
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".legalease"
	}
	return filepath.Join(home, ".legalease")
}
