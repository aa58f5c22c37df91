package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("data dir = %q, want %q", cfg.DataDir, DefaultDataDir)
	}
	if cfg.Format != "text" {
		t.Errorf("format = %q, want text", cfg.Format)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("timeout = %s, want 10s", cfg.Timeout)
	}
	if !cfg.CacheEnabled {
		t.Error("cache should be enabled by default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("a missing config file should not be an error, got: %v", err)
	}
	if cfg.Format != "text" {
		t.Errorf("expected defaults for missing file, got format %q", cfg.Format)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
format = "json"
timeout = "30s"
remote_chrome = "http://localhost:9222"
cache_enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Format)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.RemoteChrome != "http://localhost:9222" {
		t.Errorf("remote chrome = %q", cfg.RemoteChrome)
	}
	if cfg.CacheEnabled {
		t.Error("cache should be disabled by the file")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`format = "json"`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GAIA_STATS_FORMAT", "text")
	t.Setenv("GAIA_STATS_TIMEOUT", "45s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Format != "text" {
		t.Errorf("format = %q, env should win over the file", cfg.Format)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("timeout = %s, want 45s from env", cfg.Timeout)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`format = "yaml"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown format")
	}

	if err := os.WriteFile(path, []byte(`timeout = "-5s"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for non-positive timeout")
	}
}
