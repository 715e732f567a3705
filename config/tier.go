package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownTier = errors.New("unknown tier")

// Tier is a difficulty level; progression only ever moves forward through them
type Tier uint8

const (
	TierEasy Tier = iota
	TierIntermediate
	TierHard
)

var tierNames = [...]string{"easy", "intermediate", "hard"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("tier(%d)", t)
}

// Next returns the following tier; false on the last one
func (t Tier) Next() (Tier, bool) {
	if t >= TierHard {
		return t, false
	}
	return t + 1, true
}

// ParseTier maps a tier name to its value
func ParseTier(s string) (Tier, error) {
	for i, name := range tierNames {
		if strings.EqualFold(s, name) {
			return Tier(i), nil
		}
	}
	return TierEasy, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

func (t *Tier) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseTier(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Tier) MarshalYAML() (any, error) {
	return t.String(), nil
}

// Scoring picks how a tier ranks its match result
type Scoring uint8

const (
	// ScoringPoints ranks the player by the presentation layer's score
	ScoringPoints Scoring = iota
	// ScoringTime ranks finished competitors by finish time
	ScoringTime
)

func (s Scoring) String() string {
	if s == ScoringTime {
		return "time"
	}
	return "points"
}

func (s *Scoring) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "", "points":
		*s = ScoringPoints
	case "time":
		*s = ScoringTime
	default:
		return fmt.Errorf("unknown scoring %q", node.Value)
	}
	return nil
}
