package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed default_settings.yaml
var defaultSettings []byte

var ErrInvalidSettings = errors.New("invalid settings")

// Entrant is one bot in a tier roster
type Entrant struct {
	Name      string  `yaml:"name"`
	Asset     string  `yaml:"asset"`
	BaseSpeed float32 `yaml:"base_speed"`
}

// TierSettings is immutable for the duration of a match
type TierSettings struct {
	Roster          []Entrant `yaml:"roster"`
	PointsToSucceed int       `yaml:"points_to_succeed"`
	TimeoutSeconds  int       `yaml:"timeout_seconds"`
	Scoring         Scoring   `yaml:"scoring"`
}

// Timeout is the match duration limit measured from match start
func (t TierSettings) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// Line names the start and end markers of one placement slot
type Line struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Marker is a named point of arena geometry
type Marker struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
}

// Surface is an axis-aligned walkable box
type Surface struct {
	Name string     `yaml:"name"`
	Min  [3]float32 `yaml:"min"`
	Max  [3]float32 `yaml:"max"`
}

// Arena is the level geometry a match loads in setup
type Arena struct {
	Surfaces []Surface `yaml:"surfaces"`
	Markers  []Marker  `yaml:"markers"`
}

// Vec returns the marker position as a vector
func (m Marker) Vec() mgl32.Vec3 {
	return mgl32.Vec3(m.Position)
}

// Settings is the match configuration, loaded once and read-only afterwards
type Settings struct {
	Mode             string                `yaml:"mode"`
	ProgressionKey   string                `yaml:"progression_key"`
	DefaultCharacter string                `yaml:"default_character"`
	Arena            Arena                 `yaml:"arena"`
	Placement        []Line                `yaml:"placement"`
	Tiers            map[Tier]TierSettings `yaml:"tiers"`
}

// Tier returns the settings for t
func (s *Settings) Tier(t Tier) (TierSettings, bool) {
	ts, ok := s.Tiers[t]
	return ts, ok
}

// LoadSettings reads path, or the embedded defaults when path is empty
func LoadSettings(path string) (*Settings, error) {
	data := defaultSettings
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
		data = b
	}
	return ParseSettings(data)
}

// ParseSettings decodes and validates YAML settings
func ParseSettings(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every tier and placement line is usable
func (s *Settings) Validate() error {
	if s.Mode == "" {
		return fmt.Errorf("%w: mode is empty", ErrInvalidSettings)
	}
	if s.ProgressionKey == "" {
		return fmt.Errorf("%w: progression_key is empty", ErrInvalidSettings)
	}
	if s.DefaultCharacter == "" {
		return fmt.Errorf("%w: default_character is empty", ErrInvalidSettings)
	}
	if len(s.Placement) == 0 {
		return fmt.Errorf("%w: no placement lines", ErrInvalidSettings)
	}
	for i, l := range s.Placement {
		if l.Start == "" || l.End == "" {
			return fmt.Errorf("%w: placement line %d incomplete", ErrInvalidSettings, i)
		}
	}
	for _, t := range []Tier{TierEasy, TierIntermediate, TierHard} {
		ts, ok := s.Tiers[t]
		if !ok {
			return fmt.Errorf("%w: tier %s missing", ErrInvalidSettings, t)
		}
		if ts.TimeoutSeconds <= 0 {
			return fmt.Errorf("%w: tier %s timeout must be positive", ErrInvalidSettings, t)
		}
		if ts.PointsToSucceed < 0 {
			return fmt.Errorf("%w: tier %s points_to_succeed negative", ErrInvalidSettings, t)
		}
		for _, e := range ts.Roster {
			if e.Name == "" || e.Asset == "" {
				return fmt.Errorf("%w: tier %s roster entry incomplete", ErrInvalidSettings, t)
			}
			if e.BaseSpeed < 0 {
				return fmt.Errorf("%w: tier %s bot %s negative speed", ErrInvalidSettings, t, e.Name)
			}
		}
	}
	return nil
}
