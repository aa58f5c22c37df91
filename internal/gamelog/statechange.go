package gamelog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Resource identifies the kind of resource a state change affects.
type Resource string

const (
	ResourceCoin       Resource = "coin"
	ResourceOre        Resource = "ore"
	ResourceKnowledge  Resource = "knowledge"
	ResourceQIC        Resource = "qic"
	ResourcePower      Resource = "power"
	ResourcePowerToken Resource = "power_token"
	ResourceVP         Resource = "vp"
)

// ChangeKind marks a state change as a gain or a loss.
type ChangeKind string

const (
	Gain ChangeKind = "gain"
	Loss ChangeKind = "loss"
)

// StateChange is one resource delta from the log, e.g. "2vp" or "-1o".
type StateChange struct {
	Kind     ChangeKind `json:"kind"`
	Resource Resource   `json:"resource"`
	Quantity int        `json:"quantity"`
}

// resourceSuffixes maps token suffixes to resources. Two-letter suffixes
// must be checked before single-letter ones ("2pw" would otherwise never
// match, and "4vp" must not fall through to a shorter suffix).
var resourceSuffixes = []struct {
	suffix   string
	resource Resource
}{
	{"pw", ResourcePower},
	{"vp", ResourceVP},
	{"c", ResourceCoin},
	{"o", ResourceOre},
	{"k", ResourceKnowledge},
	{"q", ResourceQIC},
	{"t", ResourcePowerToken},
}

var quantityPattern = regexp.MustCompile(`\d+`)

// ParseStateChange parses a single state-change token.
func ParseStateChange(token string) (StateChange, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return StateChange{}, fmt.Errorf("empty state change token")
	}

	change := StateChange{Kind: Gain}
	if strings.HasPrefix(token, "-") {
		change.Kind = Loss
	}

	for _, entry := range resourceSuffixes {
		if strings.HasSuffix(token, entry.suffix) {
			change.Resource = entry.resource
			break
		}
	}
	if change.Resource == "" {
		return StateChange{}, fmt.Errorf("no resource suffix in token %q", token)
	}

	digits := quantityPattern.FindString(token)
	if digits == "" {
		return StateChange{}, fmt.Errorf("no quantity in token %q", token)
	}
	quantity, err := strconv.Atoi(digits)
	if err != nil {
		return StateChange{}, fmt.Errorf("parsing quantity in token %q: %w", token, err)
	}
	change.Quantity = quantity

	return change, nil
}

// ParseStateChangeList parses a whole state-change cell, e.g. "2vp, -1o 1k".
// Tokens are separated by commas and/or whitespace.
func ParseStateChangeList(text string) ([]StateChange, error) {
	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	changes := make([]StateChange, 0, len(fields))
	for _, field := range fields {
		change, err := ParseStateChange(field)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	return changes, nil
}
