// Package history archives analyzed games in a local SQLite database.
//
// Every successful analysis records one row per game and one row per
// faction result. The archive powers the "history" subcommand: recent games
// and per-faction aggregates (games played, mean and best VP) across every
// game analyzed on this machine.
package history
