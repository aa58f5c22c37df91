// Package stats folds a parsed game log into per-faction statistics.
//
// Each faction gets a victory point breakdown (points classified by the
// action that granted them) and resource income totals. A summary is a pure
// function of the ordered log, so re-running the fold over the same log
// always yields the same result.
package stats
