package event

import (
	"testing"
	"time"
)

func TestTimersOneShot(t *testing.T) {
	tm := NewTimers()
	tm.After(500*time.Millisecond, GameEvent{Type: EventCountdownHide})

	if evs := tm.Advance(499 * time.Millisecond); len(evs) != 0 {
		t.Fatalf("fired early: %v", evs)
	}
	evs := tm.Advance(time.Millisecond)
	if len(evs) != 1 || evs[0].Type != EventCountdownHide {
		t.Fatalf("Advance() = %v, want one CountdownHide", evs)
	}
	if evs[0].At != 500*time.Millisecond {
		t.Errorf("At = %v, want 500ms", evs[0].At)
	}
	if tm.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", tm.Pending())
	}
}

func TestTimersRepeatingPayloadIndex(t *testing.T) {
	tm := NewTimers()
	tm.Every(time.Second, 4, EventCountdownStep)

	var steps []int
	for i := 0; i < 10; i++ {
		for _, ev := range tm.Advance(500 * time.Millisecond) {
			steps = append(steps, ev.Payload.(int))
		}
	}

	if len(steps) != 4 {
		t.Fatalf("fired %d times, want 4", len(steps))
	}
	for i, s := range steps {
		if s != i {
			t.Errorf("step[%d] = %d, want %d", i, s, i)
		}
	}
	if tm.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", tm.Pending())
	}
}

func TestTimersLargeDeltaOrdersByDue(t *testing.T) {
	tm := NewTimers()
	tm.Every(time.Second, 4, EventCountdownStep)
	tm.After(4500*time.Millisecond, GameEvent{Type: EventReveal})
	tm.After(1500*time.Millisecond, GameEvent{Type: EventCountdownHide})

	evs := tm.Advance(10 * time.Second)
	want := []EventType{
		EventCountdownStep, EventCountdownHide, EventCountdownStep,
		EventCountdownStep, EventCountdownStep, EventReveal,
	}
	if len(evs) != len(want) {
		t.Fatalf("Advance() len = %d, want %d", len(evs), len(want))
	}
	for i := range want {
		if evs[i].Type != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, evs[i].Type, want[i])
		}
	}
}

func TestTimersCancel(t *testing.T) {
	tm := NewTimers()
	id := tm.After(time.Second, GameEvent{Type: EventReveal})

	if !tm.Cancel(id) {
		t.Fatal("Cancel() = false, want true")
	}
	if evs := tm.Advance(2 * time.Second); len(evs) != 0 {
		t.Errorf("cancelled timer fired: %v", evs)
	}
	if tm.Cancel(id) {
		t.Error("second Cancel() = true, want false")
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		et   EventType
		want string
	}{
		{EventReadyClicked, "ReadyClicked"},
		{EventTimeout, "Timeout"},
		{EventType(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.et.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
