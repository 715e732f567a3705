package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/ringside/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		activePath: make([]StateID, 0, 4),
	}
}

// Init enters the initial state, executing OnEnter for the chain from the top-level ancestor
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	if !m.compiled {
		if err := m.CompilePaths(); err != nil {
			return err
		}
	}
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}

	m.activeID = initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action(ctx)
		}
	}
	return nil
}

// Update advances the FSM by delta time, runs leaf OnUpdate actions and evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeID == StateNone {
		return
	}

	m.timeInState += dt

	leafID := m.activeID
	for _, action := range m.nodes[leafID].OnUpdate {
		action(ctx)
		// An update action may have transitioned the machine
		if m.activeID != leafID {
			return
		}
	}

	// Evaluate Tick Transitions (Event == EventNone), bubble up
	currID := m.activeID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event == event.EventNone && (trans.Guard == nil || trans.Guard(ctx)) {
				m.transition(ctx, trans.TargetID)
				return
			}
		}
		currID = node.ParentID
	}
}

// HandleEvent routes an event from the leaf up through its ancestors
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, et event.EventType) bool {
	if m.activeID == StateNone || et == event.EventNone {
		return false
	}

	currID := m.activeID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event == et && (trans.Guard == nil || trans.Guard(ctx)) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// TransitionTo forces a transition regardless of declared edges
func (m *Machine[T]) TransitionTo(ctx T, targetID StateID) {
	m.transition(ctx, targetID)
}

// transition performs the state change: exit up to the LCA, enter down to the target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	fromID := m.activeID

	// Find LCA
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Commit the new leaf before running actions so actions observe the target state
	exiting := make([]StateID, 0, len(currentPath))
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		exiting = append(exiting, currentPath[i])
	}
	m.activeID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Exit Phase: walk UP from previous leaf to LCA (exclusive)
	for _, id := range exiting {
		for _, action := range m.nodes[id].OnExit {
			action(ctx)
		}
	}

	if m.OnTransition != nil {
		m.OnTransition(fromID, targetID)
	}

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, action := range m.nodes[targetPath[i]].OnEnter {
			action(ctx)
			// An enter action may chain into another transition; stop entering the stale path
			if m.activeID != targetID {
				return
			}
		}
	}
}

// Stop exits every active state, leaving the machine without an active state
func (m *Machine[T]) Stop(ctx T) {
	path := append([]StateID(nil), m.activePath...)
	m.activeID = StateNone
	m.activePath = m.activePath[:0]
	for i := len(path) - 1; i >= 0; i-- {
		for _, action := range m.nodes[path[i]].OnExit {
			action(ctx)
		}
	}
}

// Current returns the active leaf state
func (m *Machine[T]) Current() StateID {
	return m.activeID
}

// CurrentName returns the active leaf state name, empty if stopped
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeID]; ok {
		return node.Name
	}
	return ""
}

// Name returns the name of a state
func (m *Machine[T]) Name(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time spent in the current state
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// IsIn reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) IsIn(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}
