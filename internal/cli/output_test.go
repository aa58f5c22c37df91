package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/jgunter/gaia-stats/internal/stats"
)

func sampleSummary() *stats.Summary {
	return &stats.Summary{
		GameID:    "sample-game",
		SourceURL: "https://www.boardgamers.space/game/sample-game",
		CheckedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Factions: []*stats.FactionSummary{
			{
				Faction: "taklons",
				VP: stats.VPBreakdown{
					Total:        20,
					RoundScoring: 4,
					Endgame:      5,
					TechTracks:   2,
					Leech:        -1,
				},
				Resources: stats.ResourceTotals{Power: 3, Leech: 3},
			},
			{
				Faction: "terrans",
				VP: stats.VPBreakdown{
					Total:    19,
					Boosters: 3,
					Endgame:  6,
				},
				Resources: stats.ResourceTotals{Power: 2, Leech: 2, Coins: 2},
			},
		},
	}
}

// normalize collapses column padding so the comparison is insensitive to
// tabwriter alignment while still checking every value.
func normalize(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestWriteSummaryTextGolden(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatText, ""); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	actual := normalize(buf.String())
	goldenPath := "../../testdata/goldens/breakdown.txt"

	if os.Getenv("UPDATE_GOLDENS") == "true" {
		if err := os.WriteFile(goldenPath, []byte(actual), 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		t.Logf("updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}

	if actual != string(expected) {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(expected)),
			B:        difflib.SplitLines(actual),
			FromFile: "golden",
			ToFile:   "actual",
			Context:  3,
		})
		t.Errorf("output does not match golden file:\n%s", diff)
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatJSON, ""); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	var decoded stats.Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.GameID != "sample-game" {
		t.Errorf("game_id = %q, want sample-game", decoded.GameID)
	}
	if len(decoded.Factions) != 2 {
		t.Fatalf("expected 2 factions in JSON, got %d", len(decoded.Factions))
	}
	if decoded.Factions[0].VP.Total != 20 {
		t.Errorf("first faction total = %d, want 20", decoded.Factions[0].VP.Total)
	}
}

func TestWriteSummaryFactionFilter(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatText, "terrans"); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "taklons") {
		t.Error("filtered output should not mention taklons")
	}
	if !strings.Contains(out, "terrans") {
		t.Error("filtered output should mention terrans")
	}

	err := WriteSummary(&buf, sampleSummary(), FormatText, "xenos")
	if err == nil {
		t.Fatal("expected error for faction not in game")
	}
	if !strings.Contains(err.Error(), "xenos") {
		t.Errorf("error should name the missing faction, got: %v", err)
	}
}

func TestWriteSummaryNoFactions(t *testing.T) {
	empty := &stats.Summary{GameID: "empty"}
	var buf bytes.Buffer
	if err := WriteSummary(&buf, empty, FormatText, ""); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No factions") {
		t.Errorf("expected empty-log message, got %q", buf.String())
	}
}
