// Package storage provides JSON-based caching of parsed game summaries.
//
// Summaries are stored one file per game (summary_GAMEID.json) under the
// data directory, by default ~/.local/share/gaia-stats/. A cache hit lets
// the CLI re-render output without launching a browser.
package storage
