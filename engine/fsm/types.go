package fsm

import (
	"time"

	"github.com/lixenwraith/ringside/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
)

// Machine is a generic hierarchical finite state machine with a single active region
// T is the context type passed to actions and guards (e.g., *match.Orchestrator)
type Machine[T any] struct {
	// Graph Data (Immutable after CompilePaths)
	nodes map[StateID]*Node[T]

	// Runtime State
	activeID    StateID       // The current leaf node
	activePath  []StateID     // Stack of active states (Root -> Child -> Leaf)
	timeInState time.Duration // Time elapsed in current state
	compiled    bool

	// OnTransition observes every completed transition (logging, metrics)
	OnTransition func(from, to StateID)
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from the top-level ancestor to this node
	Path []StateID

	// Lifecycle Actions
	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation priority order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventNone = Tick (auto-transition)
	Guard    GuardFunc[T]    // nil = Always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
