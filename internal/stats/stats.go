package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/jgunter/gaia-stats/internal/gamelog"
)

// StartingVP is the victory point total every faction begins the game with.
const StartingVP = 10

// VPBreakdown classifies a faction's victory points by source.
type VPBreakdown struct {
	Total         int `json:"total"`
	RoundScoring  int `json:"round_scoring"`
	Boosters      int `json:"boosters"`
	Endgame       int `json:"endgame"`
	Techs         int `json:"techs"`
	AdvancedTechs int `json:"advanced_techs"`
	Federations   int `json:"federations"`
	QICActions    int `json:"qic_actions"`
	TechTracks    int `json:"tech_tracks"`
	Resources     int `json:"resources"`
	Leech         int `json:"leech"` // negative: VP paid to charge power
}

// Percent returns a category's share of the faction's total VP. It returns
// 0 when the total is 0 so callers never divide by zero.
func (b VPBreakdown) Percent(category int) float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(category) / float64(b.Total) * 100
}

// ResourceTotals tracks how much of each resource a faction gained over the
// game. Losses are not counted; Leech is the subset of Power charged from
// opponents.
type ResourceTotals struct {
	Power       int `json:"power"`
	Leech       int `json:"leech"`
	Coins       int `json:"coins"`
	Ore         int `json:"ore"`
	Knowledge   int `json:"knowledge"`
	QIC         int `json:"qic"`
	PowerTokens int `json:"power_tokens"`
}

// FactionSummary aggregates everything tracked for one faction.
type FactionSummary struct {
	Faction   string         `json:"faction"`
	VP        VPBreakdown    `json:"vp"`
	Resources ResourceTotals `json:"resources"`
}

// Summary is the full result of analyzing one game.
type Summary struct {
	GameID    string            `json:"game_id"`
	SourceURL string            `json:"source_url,omitempty"`
	CheckedAt time.Time         `json:"checked_at"`
	Factions  []*FactionSummary `json:"factions"`
}

// Faction returns the summary for a faction name, or nil.
func (s *Summary) Faction(name string) *FactionSummary {
	for _, fs := range s.Factions {
		if fs.Faction == name {
			return fs
		}
	}
	return nil
}

// Compute folds the log into per-faction summaries, sorted by faction name.
func Compute(log *gamelog.GameLog) *Summary {
	byFaction := make(map[string]*FactionSummary, len(log.Factions))
	for _, faction := range log.Factions {
		byFaction[faction] = &FactionSummary{
			Faction: faction,
			VP:      VPBreakdown{Total: StartingVP},
		}
	}

	for _, item := range log.Items {
		fs := byFaction[item.Faction]
		if fs == nil {
			continue
		}
		for _, event := range item.Events {
			fs.apply(event)
		}
	}

	factions := make([]*FactionSummary, 0, len(byFaction))
	for _, fs := range byFaction {
		factions = append(factions, fs)
	}
	sort.Slice(factions, func(i, j int) bool {
		return factions[i].Faction < factions[j].Faction
	})

	return &Summary{CheckedAt: time.Now().UTC(), Factions: factions}
}

func (fs *FactionSummary) apply(event gamelog.Event) {
	for _, change := range event.Changes {
		if change.Resource == gamelog.ResourceVP {
			fs.applyVP(event.Action, change)
		} else {
			fs.applyResource(event.Action, change)
		}
	}
}

// applyVP classifies a VP change by the action that caused it and updates
// the running total.
func (fs *FactionSummary) applyVP(action string, change gamelog.StateChange) {
	vp := &fs.VP
	switch {
	case strings.Contains(action, "round"):
		vp.RoundScoring += change.Quantity
	case strings.Contains(action, "booster"):
		vp.Boosters += change.Quantity
	case strings.Contains(action, "final"):
		vp.Endgame += change.Quantity
	case strings.Contains(action, "adv"):
		vp.AdvancedTechs += change.Quantity
	case strings.Contains(action, "tech"):
		vp.Techs += change.Quantity
	case action == "federation":
		vp.Federations += change.Quantity
	case strings.Contains(action, "qic"):
		vp.QICActions += change.Quantity
	case gamelog.IsTechTrack(action):
		vp.TechTracks += change.Quantity
	case action == "spend":
		vp.Resources += change.Quantity
	case action == "charge":
		vp.Leech -= change.Quantity
	}

	if change.Kind == gamelog.Gain {
		vp.Total += change.Quantity
	} else {
		vp.Total -= change.Quantity
	}
}

// applyResource counts resource income. Losses are spending, not income,
// and are ignored.
func (fs *FactionSummary) applyResource(action string, change gamelog.StateChange) {
	if change.Kind == gamelog.Loss {
		return
	}

	res := &fs.Resources
	if action == "charge" {
		res.Leech += change.Quantity
	}

	switch change.Resource {
	case gamelog.ResourcePower:
		res.Power += change.Quantity
	case gamelog.ResourceCoin:
		res.Coins += change.Quantity
	case gamelog.ResourceOre:
		res.Ore += change.Quantity
	case gamelog.ResourceKnowledge:
		res.Knowledge += change.Quantity
	case gamelog.ResourceQIC:
		res.QIC += change.Quantity
	case gamelog.ResourcePowerToken:
		res.PowerTokens += change.Quantity
	}
}
