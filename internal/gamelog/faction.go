package gamelog

import "strings"

// Factions lists every playable Gaia Project faction as it appears in log
// descriptions.
var Factions = []string{
	"ambas", "baltaks", "bescods", "firaks", "geodens", "gleens",
	"hadsch-hallas", "itars", "ivits", "lantids", "nevlas", "taklons",
	"terrans", "xenos",
}

// TechTracks lists the six research track names used as action labels when a
// faction advances a track.
var TechTracks = []string{"terra", "nav", "int", "gaia", "eco", "sci"}

// FactionIn returns the faction mentioned in a log description, or "" when
// the line is not attributable to a faction (round markers, setup rows).
func FactionIn(text string) string {
	lower := strings.ToLower(text)
	for _, faction := range Factions {
		if strings.Contains(lower, faction) {
			return faction
		}
	}
	return ""
}

// IsTechTrack reports whether an action label names a research track.
func IsTechTrack(action string) bool {
	for _, track := range TechTracks {
		if action == track {
			return true
		}
	}
	return false
}
