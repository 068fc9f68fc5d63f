package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CHIBI_API_URL", "")
	t.Setenv("CHIBI_CDN_URL", "")
	t.Setenv("CHIBI_DATA_DIR", "")
	t.Setenv("CHIBI_HTTP_TIMEOUT", "")

	cfg := FromEnv()

	if cfg.BaseURL != defaultBaseURL {
		t.Errorf("Unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Expected 60s timeout, got %s", cfg.Timeout)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should default under the home directory")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CHIBI_API_URL", "https://comics.example/api")
	t.Setenv("CHIBI_DATA_DIR", "/tmp/chibi-test")
	t.Setenv("CHIBI_HTTP_TIMEOUT", "5s")

	cfg := FromEnv()

	if cfg.BaseURL != "https://comics.example/api" {
		t.Errorf("Unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.DataDir != "/tmp/chibi-test" {
		t.Errorf("Unexpected data dir: %s", cfg.DataDir)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Unexpected timeout: %s", cfg.Timeout)
	}
	if cfg.SecretsPath() != filepath.Join("/tmp/chibi-test", "chibi.db") {
		t.Errorf("Unexpected secrets path: %s", cfg.SecretsPath())
	}
}

func TestFromEnvBadTimeoutIgnored(t *testing.T) {
	t.Setenv("CHIBI_HTTP_TIMEOUT", "soon")

	cfg := FromEnv()
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Bad duration should keep the default, got %s", cfg.Timeout)
	}
}
