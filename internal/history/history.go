package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jgunter/gaia-stats/internal/stats"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id          TEXT PRIMARY KEY,
	source_url  TEXT NOT NULL DEFAULT '',
	analyzed_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS faction_results (
	game_id      TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	faction      TEXT NOT NULL,
	vp           INTEGER NOT NULL,
	vp_endgame   INTEGER NOT NULL,
	vp_leech     INTEGER NOT NULL,
	coins        INTEGER NOT NULL,
	ore          INTEGER NOT NULL,
	knowledge    INTEGER NOT NULL,
	qic          INTEGER NOT NULL,
	power        INTEGER NOT NULL,
	PRIMARY KEY (game_id, faction)
);

CREATE INDEX IF NOT EXISTS idx_faction_results_faction ON faction_results(faction);
`

// DB is the game archive.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the archive at path and ensures the schema
// exists. Use ":memory:" for tests.
func Open(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One writer is plenty for a CLI, and it keeps ":memory:" databases on
	// a single connection.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// RecordGame upserts a game and its faction results in one transaction.
// Re-analyzing a game replaces its previous rows.
func (db *DB) RecordGame(ctx context.Context, summary *stats.Summary) error {
	if summary.GameID == "" {
		return fmt.Errorf("summary has no game ID")
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO games (id, source_url, analyzed_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET source_url = excluded.source_url, analyzed_at = excluded.analyzed_at
	`, summary.GameID, summary.SourceURL, summary.CheckedAt); err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM faction_results WHERE game_id = ?`, summary.GameID); err != nil {
		return fmt.Errorf("clearing faction results: %w", err)
	}

	for _, fs := range summary.Factions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO faction_results
				(game_id, faction, vp, vp_endgame, vp_leech, coins, ore, knowledge, qic, power)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			summary.GameID, fs.Faction,
			fs.VP.Total, fs.VP.Endgame, fs.VP.Leech,
			fs.Resources.Coins, fs.Resources.Ore, fs.Resources.Knowledge,
			fs.Resources.QIC, fs.Resources.Power,
		); err != nil {
			return fmt.Errorf("inserting result for %s: %w", fs.Faction, err)
		}
	}

	return tx.Commit()
}

// GameRecord is one archived game with its faction results.
type GameRecord struct {
	GameID     string
	SourceURL  string
	AnalyzedAt time.Time
	Results    []FactionResult
}

// FactionResult is one faction's archived outcome.
type FactionResult struct {
	Faction string
	VP      int
}

// RecentGames returns up to limit archived games, newest first.
func (db *DB) RecentGames(ctx context.Context, limit int) ([]*GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, source_url, analyzed_at FROM games
		ORDER BY analyzed_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []*GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.GameID, &g.SourceURL, &g.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating games: %w", err)
	}

	for _, g := range games {
		results, err := db.factionResults(ctx, g.GameID)
		if err != nil {
			return nil, err
		}
		g.Results = results
	}

	return games, nil
}

func (db *DB) factionResults(ctx context.Context, gameID string) ([]FactionResult, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT faction, vp FROM faction_results
		WHERE game_id = ? ORDER BY vp DESC, faction
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying faction results: %w", err)
	}
	defer rows.Close()

	var results []FactionResult
	for rows.Next() {
		var r FactionResult
		if err := rows.Scan(&r.Faction, &r.VP); err != nil {
			return nil, fmt.Errorf("scanning faction result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// FactionAggregate summarizes a faction's results across all archived games.
type FactionAggregate struct {
	Faction string
	Games   int
	MeanVP  float64
	BestVP  int
}

// FactionAggregates computes per-faction aggregates across the archive.
// With a non-empty faction, only that faction is returned.
func (db *DB) FactionAggregates(ctx context.Context, faction string) ([]FactionAggregate, error) {
	query := `
		SELECT faction, COUNT(*), AVG(vp), MAX(vp) FROM faction_results
	`
	args := []any{}
	if faction != "" {
		query += ` WHERE faction = ?`
		args = append(args, faction)
	}
	query += ` GROUP BY faction ORDER BY faction`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying aggregates: %w", err)
	}
	defer rows.Close()

	var aggregates []FactionAggregate
	for rows.Next() {
		var a FactionAggregate
		if err := rows.Scan(&a.Faction, &a.Games, &a.MeanVP, &a.BestVP); err != nil {
			return nil, fmt.Errorf("scanning aggregate: %w", err)
		}
		aggregates = append(aggregates, a)
	}
	return aggregates, rows.Err()
}
