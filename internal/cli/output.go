package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jgunter/gaia-stats/internal/stats"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteSummary writes a game summary in the specified format. With a
// non-empty faction, output is limited to that faction.
func WriteSummary(w io.Writer, summary *stats.Summary, format OutputFormat, faction string) error {
	if faction != "" {
		fs := summary.Faction(strings.ToLower(faction))
		if fs == nil {
			return fmt.Errorf("faction %q not in this game (factions: %s)",
				faction, strings.Join(factionNames(summary), ", "))
		}
		limited := *summary
		limited.Factions = []*stats.FactionSummary{fs}
		summary = &limited
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		return writeText(w, summary)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func factionNames(summary *stats.Summary) []string {
	names := make([]string, 0, len(summary.Factions))
	for _, fs := range summary.Factions {
		names = append(names, fs.Faction)
	}
	return names
}

// writeJSON outputs the summary as a single JSON document
func writeJSON(w io.Writer, summary *stats.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// writeText outputs the three human-readable breakdown tables
func writeText(w io.Writer, summary *stats.Summary) error {
	if len(summary.Factions) == 0 {
		fmt.Fprintln(w, "No factions found in the game log.")
		return nil
	}

	fmt.Fprintln(w, "VP breakdown:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Faction\tTotal VP\tRound\tBoosters\tEndgame\tTechs\tAdv. Techs\tFeds\tQIC Actions\tTracks\tResources\tLeech")
	for _, fs := range summary.Factions {
		vp := fs.VP
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			fs.Faction, vp.Total, vp.RoundScoring, vp.Boosters, vp.Endgame,
			vp.Techs, vp.AdvancedTechs, vp.Federations, vp.QICActions,
			vp.TechTracks, vp.Resources, vp.Leech)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "VP percentages:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Faction\tRound\tBoosters\tEndgame\tTechs\tAdv. Techs\tFeds\tQIC Actions\tTracks\tResources\tLeech")
	for _, fs := range summary.Factions {
		vp := fs.VP
		if vp.Total == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			fs.Faction, vp.Percent(vp.RoundScoring), vp.Percent(vp.Boosters),
			vp.Percent(vp.Endgame), vp.Percent(vp.Techs), vp.Percent(vp.AdvancedTechs),
			vp.Percent(vp.Federations), vp.Percent(vp.QICActions),
			vp.Percent(vp.TechTracks), vp.Percent(vp.Resources), vp.Percent(vp.Leech))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resources breakdown:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Faction\tPower\tLeech\tCoins\tOre\tKnowledge\tQIC\tPower Tokens")
	for _, fs := range summary.Factions {
		res := fs.Resources
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			fs.Faction, res.Power, res.Leech, res.Coins, res.Ore,
			res.Knowledge, res.QIC, res.PowerTokens)
	}
	return tw.Flush()
}
