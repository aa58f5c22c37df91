package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jgunter/gaia-stats/internal/stats"
)

// Cache persists parsed game summaries so repeated runs against the same
// game skip the browser entirely.
type Cache struct {
	dataDir string
}

// New creates a Cache rooted at dataDir, creating the directory if needed.
// A leading "~/" is expanded to the user's home directory.
func New(dataDir string) (*Cache, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Cache{dataDir: dataDir}, nil
}

// Dir returns the resolved data directory.
func (c *Cache) Dir() string {
	return c.dataDir
}

func (c *Cache) summaryPath(gameID string) string {
	return filepath.Join(c.dataDir, fmt.Sprintf("summary_%s.json", gameID))
}

// Load returns the cached summary for a game, or nil when none exists.
// A file that exists but cannot be decoded is an error, not a miss.
func (c *Cache) Load(gameID string) (*stats.Summary, error) {
	data, err := os.ReadFile(c.summaryPath(gameID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading summary: %w", err)
	}

	var summary stats.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parsing cached summary for game %s: %w", gameID, err)
	}
	return &summary, nil
}

// Save writes a summary to the cache, keyed by its game ID.
func (c *Cache) Save(summary *stats.Summary) error {
	if summary.GameID == "" {
		return fmt.Errorf("summary has no game ID")
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	if err := os.WriteFile(c.summaryPath(summary.GameID), data, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
