package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jgunter/gaia-stats/internal/stats"
)

func testSummary(gameID string) *stats.Summary {
	return &stats.Summary{
		GameID:    gameID,
		SourceURL: "https://www.boardgamers.space/game/" + gameID,
		CheckedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Factions: []*stats.FactionSummary{
			{
				Faction:   "terrans",
				VP:        stats.VPBreakdown{Total: 19, Endgame: 6, Boosters: 3},
				Resources: stats.ResourceTotals{Power: 2, Coins: 2},
			},
		},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	if err := cache.Save(testSummary("game-1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := cache.Load("game-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected cached summary, got nil")
	}
	if loaded.GameID != "game-1" {
		t.Errorf("game ID = %q, want game-1", loaded.GameID)
	}
	if len(loaded.Factions) != 1 || loaded.Factions[0].VP.Total != 19 {
		t.Errorf("faction data did not survive the round trip: %+v", loaded.Factions)
	}
}

func TestCacheMiss(t *testing.T) {
	cache, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	loaded, err := cache.Load("never-seen")
	if err != nil {
		t.Fatalf("a cache miss should not be an error, got: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil for a cache miss, got %+v", loaded)
	}
}

func TestCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	cache, err := New(dir)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	path := filepath.Join(dir, "summary_broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := cache.Load("broken"); err == nil {
		t.Error("expected error for a corrupt cache entry")
	}
}

func TestSaveRequiresGameID(t *testing.T) {
	cache, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	summary := testSummary("x")
	summary.GameID = ""
	if err := cache.Save(summary); err == nil {
		t.Error("expected error when saving a summary without a game ID")
	}
}
