// Package gamelog parses the rendered advanced log of a boardgamers.space
// Gaia Project game into structured records.
//
// The advanced log is a table whose rows appear newest-first. Each row holds
// a description cell and, when the action changed game state, two additional
// cells with parallel lists of sub-actions and state-change tokens. Tokens
// use a compact grammar such as "2vp", "-1o" or "4pw", where the suffix names
// the resource and a leading minus marks a loss. Parsing reverses the rows so
// that the resulting log is in play order.
package gamelog
