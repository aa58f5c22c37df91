// Package cli implements the command-line interface for gaia-stats.
//
// The root command analyzes one game: it renders the page in headless
// Chrome (or reads a saved HTML file), parses the advanced log, computes
// per-faction statistics, and prints them as text tables or JSON. The
// history subcommand reports on previously analyzed games from the local
// archive. It coordinates the browser, gamelog, stats, storage and history
// packages.
package cli
