package legalease

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/7Nouman/LegalEase-Phase1/analysis"
	"github.com/7Nouman/LegalEase-Phase1/session"
)

// applyDefaults fills in missing fields on the builder with sensible defaults.
func applyDefaults(b *Builder) error {
	if b.config.ServiceURL == "" {
		b.config.ServiceURL = analysis.DefaultBaseURL
	}
	if b.config.DataDir == "" {
		b.config.DataDir = defaultDataDir()
	}
	if b.config.DatabasePath == "" {
		b.config.DatabasePath = filepath.Join(b.config.DataDir, "legalease.db")
	}

	if b.store == nil {
		if err := os.MkdirAll(b.config.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		st, err := session.New(b.config.DatabasePath)
		if err != nil {
			return fmt.Errorf("initializing session store: %w", err)
		}
		b.store = st
	}

	if b.client == nil {
		b.client = analysis.New(b.config.ServiceURL)
	}

	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".legalease"
	}
	return filepath.Join(home, ".legalease")
}
