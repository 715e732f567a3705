// Package competitor drives one racer: its capsule body, speed model, grounding probe,
// animation clips and finish detection.
package competitor

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Kind distinguishes the local player from scripted bots
type Kind uint8

const (
	KindPlayer Kind = iota
	KindBot
)

func (k Kind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "bot"
}

// Slot is a paired start/end placement taken from level geometry
type Slot struct {
	Start mgl32.Vec3
	End   mgl32.Vec3
}

// State is the controller-owned snapshot of a competitor
// FinishTime is valid only when Finished
type State struct {
	ID              uuid.UUID
	Name            string
	Kind            Kind
	Position        mgl32.Vec3
	Grounded        bool
	Speed           float32
	Direction       int
	LastInputSwitch time.Duration
	Finished        bool
	FinishTime      time.Duration
}

// Clock reports match-relative elapsed time
type Clock interface {
	Elapsed() time.Duration
}
