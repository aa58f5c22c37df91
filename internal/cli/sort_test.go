package cli

import (
	"testing"

	"github.com/jgunter/gaia-stats/internal/stats"
)

func TestSortFactions(t *testing.T) {
	factions := func() []*stats.FactionSummary {
		return []*stats.FactionSummary{
			{Faction: "ambas", VP: stats.VPBreakdown{Total: 15}},
			{Faction: "xenos", VP: stats.VPBreakdown{Total: 22}},
			{Faction: "itars", VP: stats.VPBreakdown{Total: 22}},
		}
	}

	byVP := factions()
	sortFactions(byVP, SortByVP)
	wantVP := []string{"itars", "xenos", "ambas"} // ties break alphabetically
	for i, name := range wantVP {
		if byVP[i].Faction != name {
			t.Errorf("vp order[%d] = %q, want %q", i, byVP[i].Faction, name)
		}
	}

	byName := factions()
	sortFactions(byName, SortByFaction)
	wantName := []string{"ambas", "itars", "xenos"}
	for i, name := range wantName {
		if byName[i].Faction != name {
			t.Errorf("faction order[%d] = %q, want %q", i, byName[i].Faction, name)
		}
	}
}
