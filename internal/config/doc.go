// Package config loads gaia-stats configuration.
//
// Precedence, lowest to highest: built-in defaults, an optional config.toml
// in the data directory, GAIA_STATS_* environment variables. Command-line
// flags override all of these in the cli package.
package config
