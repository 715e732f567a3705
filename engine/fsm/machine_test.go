package fsm

import (
	"reflect"
	"testing"
	"time"

	"github.com/lixenwraith/ringside/event"
)

type recorder struct {
	log   []string
	ready bool
}

const (
	stateIdle StateID = iota + 1
	stateRun
	stateRunFast
	stateDone
)

func newTestMachine(t *testing.T) *Machine[*recorder] {
	t.Helper()
	m := NewMachine[*recorder]()

	idle := m.AddState(stateIdle, "Idle", StateNone)
	run := m.AddState(stateRun, "Run", StateNone)
	fast := m.AddState(stateRunFast, "RunFast", stateRun)
	m.AddState(stateDone, "Done", StateNone)

	idle.OnExit = append(idle.OnExit, func(r *recorder) { r.log = append(r.log, "exit:Idle") })
	run.OnEnter = append(run.OnEnter, func(r *recorder) { r.log = append(r.log, "enter:Run") })
	run.OnExit = append(run.OnExit, func(r *recorder) { r.log = append(r.log, "exit:Run") })
	fast.OnEnter = append(fast.OnEnter, func(r *recorder) { r.log = append(r.log, "enter:RunFast") })
	fast.OnExit = append(fast.OnExit, func(r *recorder) { r.log = append(r.log, "exit:RunFast") })

	m.On(stateIdle, event.EventReadyClicked, stateRunFast, func(r *recorder) bool { return r.ready })
	// Parent-level transition reachable from the RunFast leaf
	m.On(stateRun, event.EventTimeout, stateDone, nil)

	if err := m.CompilePaths(); err != nil {
		t.Fatalf("CompilePaths() error = %v", err)
	}
	return m
}

func TestMachineGuardBlocksEvent(t *testing.T) {
	m := newTestMachine(t)
	r := &recorder{}
	if err := m.Init(r, stateIdle); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if m.HandleEvent(r, event.EventReadyClicked) {
		t.Fatal("HandleEvent() = true with guard false")
	}
	if m.Current() != stateIdle {
		t.Errorf("Current() = %v, want Idle", m.CurrentName())
	}

	r.ready = true
	if !m.HandleEvent(r, event.EventReadyClicked) {
		t.Fatal("HandleEvent() = false with guard true")
	}
	want := []string{"exit:Idle", "enter:Run", "enter:RunFast"}
	if !reflect.DeepEqual(r.log, want) {
		t.Errorf("log = %v, want %v", r.log, want)
	}
	if !m.IsIn(stateRun) {
		t.Error("IsIn(Run) = false for RunFast leaf")
	}
}

func TestMachineEventBubblesToParent(t *testing.T) {
	m := newTestMachine(t)
	r := &recorder{ready: true}
	_ = m.Init(r, stateIdle)
	m.HandleEvent(r, event.EventReadyClicked)
	r.log = nil

	if !m.HandleEvent(r, event.EventTimeout) {
		t.Fatal("parent transition not taken")
	}
	want := []string{"exit:RunFast", "exit:Run"}
	if !reflect.DeepEqual(r.log, want) {
		t.Errorf("log = %v, want %v", r.log, want)
	}
	if m.CurrentName() != "Done" {
		t.Errorf("CurrentName() = %q, want Done", m.CurrentName())
	}
}

func TestMachineTickTransitionAndTimeInState(t *testing.T) {
	m := NewMachine[*recorder]()
	m.AddState(stateIdle, "Idle", StateNone)
	m.AddState(stateDone, "Done", StateNone)
	m.AddTransition(stateIdle, Transition[*recorder]{
		TargetID: stateDone,
		Guard:    func(*recorder) bool { return m.TimeInState() >= time.Second },
	})

	r := &recorder{}
	if err := m.Init(r, stateIdle); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	m.Update(r, 600*time.Millisecond)
	if m.Current() != stateIdle {
		t.Fatal("tick transition fired early")
	}
	m.Update(r, 600*time.Millisecond)
	if m.Current() != stateDone {
		t.Fatalf("Current() = %q, want Done", m.CurrentName())
	}
	if m.TimeInState() != 0 {
		t.Errorf("TimeInState() = %v after transition, want 0", m.TimeInState())
	}
}

func TestMachineOnTransitionObserver(t *testing.T) {
	m := newTestMachine(t)
	r := &recorder{ready: true}
	var seen [][2]StateID
	m.OnTransition = func(from, to StateID) { seen = append(seen, [2]StateID{from, to}) }

	_ = m.Init(r, stateIdle)
	m.HandleEvent(r, event.EventReadyClicked)

	if len(seen) != 1 || seen[0] != [2]StateID{stateIdle, stateRunFast} {
		t.Errorf("observed %v, want [[Idle RunFast]]", seen)
	}
}

func TestMachineUnknownTargetPanics(t *testing.T) {
	m := NewMachine[*recorder]()
	m.AddState(stateIdle, "Idle", StateNone)
	r := &recorder{}
	_ = m.Init(r, stateIdle)

	defer func() {
		if recover() == nil {
			t.Error("TransitionTo(unknown) did not panic")
		}
	}()
	m.TransitionTo(r, StateID(42))
}

func TestCompilePathsMissingParent(t *testing.T) {
	m := NewMachine[*recorder]()
	m.AddState(stateRunFast, "RunFast", stateRun)
	if err := m.CompilePaths(); err == nil {
		t.Error("CompilePaths() error = nil, want missing parent error")
	}
}
