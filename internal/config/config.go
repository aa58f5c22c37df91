package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// DefaultDataDir is where summaries, the game archive and config.toml live.
const DefaultDataDir = "~/.local/share/gaia-stats"

// Config holds the tool's settings.
type Config struct {
	// DataDir is the cache/archive directory.
	DataDir string `env:"GAIA_STATS_DATA_DIR"`

	// Format is the default output format: "text" or "json".
	Format string `env:"GAIA_STATS_FORMAT"`

	// Timeout bounds the wait for the game page to finish rendering.
	Timeout time.Duration `env:"GAIA_STATS_TIMEOUT"`

	// RemoteChrome is an optional Chrome debugging URL. When set, the
	// fetcher attaches to that browser instead of launching headless Chrome.
	RemoteChrome string `env:"GAIA_STATS_REMOTE_CHROME"`

	// CacheEnabled controls whether parsed summaries are cached and reused.
	CacheEnabled bool `env:"GAIA_STATS_CACHE"`
}

// fileConfig is the TOML shape. Durations are strings ("10s") and optional
// fields are pointers so absent keys leave defaults alone.
type fileConfig struct {
	DataDir      *string `toml:"data_dir"`
	Format       *string `toml:"format"`
	Timeout      *string `toml:"timeout"`
	RemoteChrome *string `toml:"remote_chrome"`
	CacheEnabled *bool   `toml:"cache_enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:      DefaultDataDir,
		Format:       "text",
		Timeout:      10 * time.Second,
		CacheEnabled: true,
	}
}

// Load builds the effective configuration: defaults, then the TOML file at
// path (ignored when absent), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.Format != "text" && cfg.Format != "json" {
		return nil, fmt.Errorf("invalid format %q (must be text or json)", cfg.Format)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.Format != nil {
		cfg.Format = *fc.Format
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("parsing timeout in %s: %w", path, err)
		}
		cfg.Timeout = d
	}
	if fc.RemoteChrome != nil {
		cfg.RemoteChrome = *fc.RemoteChrome
	}
	if fc.CacheEnabled != nil {
		cfg.CacheEnabled = *fc.CacheEnabled
	}

	return nil
}

// FilePath returns the config.toml location inside a data directory.
func FilePath(dataDir string) string {
	return filepath.Join(dataDir, "config.toml")
}
