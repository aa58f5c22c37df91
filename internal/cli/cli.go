package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgunter/gaia-stats/internal/browser"
	"github.com/jgunter/gaia-stats/internal/config"
	"github.com/jgunter/gaia-stats/internal/gamelog"
	"github.com/jgunter/gaia-stats/internal/history"
	"github.com/jgunter/gaia-stats/internal/logger"
	"github.com/jgunter/gaia-stats/internal/stats"
	"github.com/jgunter/gaia-stats/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDataDir      string
	flagVerbose      bool
	flagFromFile     string
	flagFormat       string
	flagFaction      string
	flagSort         string
	flagTimeout      time.Duration
	flagNoCache      bool
	flagRemoteChrome string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaia-stats [flags] GAME_URL",
		Short: "Break down VP and resource statistics for a Gaia Project game",
		Long: `Fetches a boardgamers.space Gaia Project game page, parses the advanced
log, and prints per-faction victory point and resource breakdowns.

The page is rendered in headless Chrome because the log only exists after
the game client runs. Parsed summaries are cached locally, so analyzing
the same game again does not launch a browser.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", config.DefaultDataDir, "Data directory for cache, archive, and config")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagFromFile, "from-file", "", "Parse a saved HTML file instead of fetching a URL")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagFaction, "faction", "", "Limit output to one faction")
	cmd.Flags().StringVar(&flagSort, "sort", "vp", "Row order: vp or faction")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", browser.DefaultTimeout, "Page render wait budget")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Skip the summary cache and force a fresh fetch")
	cmd.Flags().StringVar(&flagRemoteChrome, "remote-chrome", "", "Chrome debugging URL to attach to instead of launching headless Chrome")

	cmd.AddCommand(newHistoryCmd())

	return cmd
}

// runAnalyze is the main command logic
func runAnalyze(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	if len(args) == 0 && flagFromFile == "" {
		return fmt.Errorf("a game URL (or --from-file) must be supplied")
	}
	if len(args) == 1 && flagFromFile != "" {
		return fmt.Errorf("pass either a game URL or --from-file, not both")
	}

	sortOrder := SortOrder(strings.ToLower(flagSort))
	if sortOrder != SortByVP && sortOrder != SortByFaction {
		return fmt.Errorf("invalid sort order: %s (must be 'vp' or 'faction')", flagSort)
	}

	cache, cfg, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	// Flags override config file and environment.
	if cmd.Flags().Changed("format") {
		cfg.Format = flagFormat
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if cmd.Flags().Changed("remote-chrome") {
		cfg.RemoteChrome = flagRemoteChrome
	}
	if flagNoCache {
		cfg.CacheEnabled = false
	}

	format := OutputFormat(strings.ToLower(cfg.Format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", cfg.Format)
	}

	var summary *stats.Summary
	var fromCache bool
	if flagFromFile != "" {
		summary, err = analyzeFile(flagFromFile)
	} else {
		summary, fromCache, err = analyzeURL(cmd, args[0], cfg, cache)
	}
	if err != nil {
		return err
	}

	// A cache hit re-renders an analysis the archive already has; only
	// fresh analyses are recorded.
	if !fromCache {
		archiveSummary(cmd, cache.Dir(), summary)
	}
	sortFactions(summary.Factions, sortOrder)

	return WriteSummary(os.Stdout, summary, format, flagFaction)
}

// openWorkspace resolves the data directory and loads configuration. An
// explicit --data-dir flag wins; otherwise a data_dir from config.toml or
// GAIA_STATS_DATA_DIR re-roots the cache and archive.
func openWorkspace(cmd *cobra.Command) (*storage.Cache, *config.Config, error) {
	cache, err := storage.New(flagDataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	cfg, err := config.Load(config.FilePath(cache.Dir()))
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	if !cmd.Flags().Changed("data-dir") && cfg.DataDir != config.DefaultDataDir {
		if cache, err = storage.New(cfg.DataDir); err != nil {
			return nil, nil, fmt.Errorf("initializing storage: %w", err)
		}
	}

	return cache, cfg, nil
}

// analyzeFile parses a locally saved game page. The game ID is taken from
// the file name.
func analyzeFile(path string) (*stats.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	summary, err := parsePage(string(data))
	if err != nil {
		return nil, err
	}
	summary.GameID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return summary, nil
}

// analyzeURL fetches and parses a live game page, consulting the summary
// cache first. The second return value reports whether the summary came
// from the cache, in which case no browser was launched.
func analyzeURL(cmd *cobra.Command, rawURL string, cfg *config.Config, cache *storage.Cache) (*stats.Summary, bool, error) {
	gameID, err := GameIDFromURL(rawURL)
	if err != nil {
		return nil, false, err
	}

	if cfg.CacheEnabled {
		cached, err := cache.Load(gameID)
		if err != nil {
			return nil, false, err
		}
		if cached != nil {
			logger.Info("using cached summary", logger.Fields{"game_id": gameID})
			return cached, true, nil
		}
	}

	fetcher := browser.New(cfg.RemoteChrome, cfg.Timeout)
	html, err := fetcher.FetchGamePage(cmd.Context(), rawURL)
	if err != nil {
		return nil, false, fmt.Errorf("fetching game page: %w", err)
	}

	summary, err := parsePage(html)
	if err != nil {
		return nil, false, err
	}
	summary.GameID = gameID
	summary.SourceURL = rawURL

	if cfg.CacheEnabled {
		if err := cache.Save(summary); err != nil {
			logger.Warn("could not cache summary", logger.Fields{"game_id": gameID, "reason": err.Error()})
		}
	}

	return summary, false, nil
}

func parsePage(html string) (*stats.Summary, error) {
	start := time.Now()
	log, err := gamelog.Parse(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing game log: %w", err)
	}
	logger.Timing("gamelog.parse", time.Since(start))
	logger.Debug("parsed game log", logger.Fields{
		"items":    len(log.Items),
		"factions": strings.Join(log.Factions, ", "),
	})

	return stats.Compute(log), nil
}

// archiveSummary records the analysis in the SQLite archive. Archive
// failures are reported but never fail the run.
func archiveSummary(cmd *cobra.Command, dataDir string, summary *stats.Summary) {
	db, err := history.Open(filepath.Join(dataDir, "history.db"))
	if err != nil {
		logger.Warn("could not open game archive", logger.Fields{"reason": err.Error()})
		return
	}
	defer db.Close()

	if err := db.RecordGame(cmd.Context(), summary); err != nil {
		logger.Warn("could not archive game", logger.Fields{"game_id": summary.GameID, "reason": err.Error()})
	}
}

// GameIDFromURL extracts the game identifier from a boardgamers.space game
// URL (the last path segment).
func GameIDFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid game URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid game URL %q: scheme must be http or https", rawURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid game URL %q: missing host", rawURL)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	gameID := segments[len(segments)-1]
	if gameID == "" {
		return "", fmt.Errorf("invalid game URL %q: no game ID in path", rawURL)
	}
	return gameID, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
