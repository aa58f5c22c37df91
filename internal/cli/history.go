package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jgunter/gaia-stats/internal/history"
	"github.com/jgunter/gaia-stats/internal/logger"
)

// newHistoryCmd creates the history subcommand
func newHistoryCmd() *cobra.Command {
	var (
		flagLimit          int
		flagHistoryFaction string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously analyzed games and faction aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}

			cache, _, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			db, err := history.Open(filepath.Join(cache.Dir(), "history.db"))
			if err != nil {
				return fmt.Errorf("opening game archive: %w", err)
			}
			defer db.Close()

			games, err := db.RecentGames(cmd.Context(), flagLimit)
			if err != nil {
				return fmt.Errorf("listing games: %w", err)
			}

			aggregates, err := db.FactionAggregates(cmd.Context(), flagHistoryFaction)
			if err != nil {
				return fmt.Errorf("computing aggregates: %w", err)
			}

			return writeHistory(os.Stdout, games, aggregates)
		},
	}

	cmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of games to list")
	cmd.Flags().StringVar(&flagHistoryFaction, "faction", "", "Limit aggregates to one faction")

	return cmd
}

func writeHistory(w io.Writer, games []*history.GameRecord, aggregates []history.FactionAggregate) error {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games in the archive yet.")
		return nil
	}

	fmt.Fprintf(w, "Recent games (%d):\n", len(games))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Game\tAnalyzed\tResults")
	for _, g := range games {
		results := ""
		for i, r := range g.Results {
			if i > 0 {
				results += ", "
			}
			results += fmt.Sprintf("%s %d", r.Faction, r.VP)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", g.GameID, g.AnalyzedAt.Format("2006-01-02 15:04"), results)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(aggregates) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Faction aggregates:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Faction\tGames\tMean VP\tBest VP")
	for _, a := range aggregates {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%d\n", a.Faction, a.Games, a.MeanVP, a.BestVP)
	}
	return tw.Flush()
}
