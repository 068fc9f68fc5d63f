// Package config reads client settings from the environment. A .env
// file next to the binary is honored through godotenv autoload in
// cmd/main.go.
package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8080/api"
	defaultCDNURL  = "https://img.otruyenapi.com/uploads/comics"
)

type Config struct {
	// BaseURL is the remote comic API root, e.g. https://host/api.
	BaseURL string
	// CDNURL prefixes relative thumbnail paths.
	CDNURL string
	// DataDir holds the secrets database, log file and exports.
	DataDir string
	// Timeout bounds every remote call.
	Timeout time.Duration
}

// FromEnv builds the configuration from CHIBI_* variables, falling
// back to workable defaults.
func FromEnv() Config {
	cfg := Config{
		BaseURL: defaultBaseURL,
		CDNURL:  defaultCDNURL,
		Timeout: 60 * time.Second,
	}

	if v := os.Getenv("CHIBI_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CHIBI_CDN_URL"); v != "" {
		cfg.CDNURL = v
	}
	if v := os.Getenv("CHIBI_DATA_DIR"); v != "" {
		cfg.DataDir = v
	} else {
		home, _ := os.UserHomeDir()
		cfg.DataDir = filepath.Join(home, ".chibi")
	}
	if v := os.Getenv("CHIBI_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// SecretsPath is the location of the credential store.
func (c Config) SecretsPath() string {
	return filepath.Join(c.DataDir, "chibi.db")
}

// LogPath is where the TUI redirects the standard logger.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "chibi.log")
}

// ExportDir is where chapter EPUBs land.
func (c Config) ExportDir() string {
	return filepath.Join(c.DataDir, "exports")
}
