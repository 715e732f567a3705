package physics

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/ringside/parameter"
)

// SpeedProfile tunes the alternation speed model
type SpeedProfile struct {
	Base           float32       // Speed at construction
	Accel          float32       // Added per valid alternation
	Decel          float32       // Removed per tick without exactly one side held
	MinSwitchDelay time.Duration // Debounce window after an alternation
	MinRunSpeed    float32       // Below this the competitor counts as idle
}

// DefaultSpeedProfile matches the player's original tuning
var DefaultSpeedProfile = SpeedProfile{
	Base:           parameter.PlayerBaseSpeed,
	Accel:          parameter.SpeedAcceleration,
	Decel:          parameter.SpeedDeceleration,
	MinSwitchDelay: parameter.MinSwitchDelay,
	MinRunSpeed:    parameter.MinRunSpeed,
}

// SpeedModel turns two-sided binary input into a scalar forward speed
// Speed grows by Accel each time the held side changes, at most once per MinSwitchDelay,
// and decays by Decel on ticks where neither or both sides are held
type SpeedModel struct {
	profile     SpeedProfile
	speed       float32
	direction   int
	leftActive  bool
	rightActive bool
	lastSwitch  time.Duration
}

func NewSpeedModel(profile SpeedProfile) *SpeedModel {
	return &SpeedModel{
		profile:    profile,
		speed:      profile.Base,
		direction:  1,
		lastSwitch: -profile.MinSwitchDelay,
	}
}

// Update advances the model; now is match-relative time
func (m *SpeedModel) Update(now time.Duration, left, right bool) {
	if now-m.lastSwitch < m.profile.MinSwitchDelay {
		return
	}

	if left != right {
		justPressed := (left && !m.leftActive) || (right && !m.rightActive)
		if justPressed {
			m.speed += m.profile.Accel
			m.leftActive = left
			m.rightActive = right
			m.lastSwitch = now
			if left {
				m.direction = -1
			} else {
				m.direction = 1
			}
		}
		return
	}

	m.speed = math32.Max(0, m.speed-m.profile.Decel)
	m.leftActive = false
	m.rightActive = false
	if m.speed == 0 {
		m.direction = 0
	}
}

func (m *SpeedModel) Speed() float32 { return m.speed }

// Direction is -1 after a left alternation, 1 after a right one, 0 once stopped
func (m *SpeedModel) Direction() int { return m.direction }

// LastSwitch returns the time of the last accepted alternation
func (m *SpeedModel) LastSwitch() time.Duration { return m.lastSwitch }

// IsIdle reports speed below the run threshold
func (m *SpeedModel) IsIdle() bool { return m.speed < m.profile.MinRunSpeed }

// Profile returns the tuning in use
func (m *SpeedModel) Profile() SpeedProfile { return m.profile }
