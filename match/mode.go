// Package match runs one timed match: setup, placement, intro camera, countdown, play,
// result snapshot and scoreboard, driven by a single Update per frame.
package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMultiplayerUnsupported = errors.New("match: multiplayer mode is not implemented")
	ErrNoSlot                 = errors.New("match: not enough placement slots")
	ErrEmptyRoster            = errors.New("match: empty roster")
)

// Mode is a top-level game mode driven by the runner
type Mode interface {
	Enter(ctx context.Context) error
	Exit()
	Update(dt time.Duration)
	Outcome() Outcome
}

// Kind selects a Mode implementation
type Kind uint8

const (
	KindSolo Kind = iota
	KindMultiplayer
)

func (k Kind) String() string {
	if k == KindMultiplayer {
		return "multiplayer"
	}
	return "solo"
}

// ParseKind maps a mode name to its Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solo":
		return KindSolo, nil
	case "multiplayer", "multi":
		return KindMultiplayer, nil
	}
	return KindSolo, fmt.Errorf("unknown mode %q", s)
}

// Outcome is how a match was left
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeReplay
	OutcomeContinue
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReplay:
		return "replay"
	case OutcomeContinue:
		return "continue"
	}
	return "none"
}

// SetupError is a fatal failure before the match could start
// No match that returned a SetupError ever reaches Active
type SetupError struct {
	Phase string
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("match setup failed in %s: %v", e.Phase, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// New builds the Mode for kind
func New(kind Kind, deps Deps, opts Options) (Mode, error) {
	if opts.Multiplayer {
		kind = KindMultiplayer
	}
	switch kind {
	case KindSolo:
		return NewSolo(deps, opts)
	case KindMultiplayer:
		return nil, ErrMultiplayerUnsupported
	}
	return nil, fmt.Errorf("unknown mode kind %d", kind)
}
