package cli

import (
	"sort"

	"github.com/jgunter/gaia-stats/internal/stats"
)

// SortOrder represents the available row orderings
type SortOrder string

const (
	SortByVP      SortOrder = "vp"
	SortByFaction SortOrder = "faction"
)

// sortFactions orders faction summaries for output: highest VP first, or
// alphabetically by faction name.
func sortFactions(factions []*stats.FactionSummary, order SortOrder) {
	switch order {
	case SortByVP:
		sort.Slice(factions, func(i, j int) bool {
			if factions[i].VP.Total != factions[j].VP.Total {
				return factions[i].VP.Total > factions[j].VP.Total
			}
			return factions[i].Faction < factions[j].Faction
		})
	case SortByFaction:
		sort.Slice(factions, func(i, j int) bool {
			return factions[i].Faction < factions[j].Faction
		})
	}
}
