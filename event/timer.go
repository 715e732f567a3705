package event

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled timer for cancellation
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Duration
	interval time.Duration // 0 = one-shot
	left     int           // remaining firings for repeating timers
	fired    int
	ev       GameEvent
}

// Timers is a scheduled-event queue on the match clock
// Timers never run callbacks; Advance returns due events for the owner to dispatch
// on its own update, keeping a single writer for match state
type Timers struct {
	now     time.Duration
	nextID  TimerID
	pending []*timer
}

// NewTimers creates an empty timer queue at clock zero
func NewTimers() *Timers {
	return &Timers{}
}

// Now returns the timer clock
func (t *Timers) Now() time.Duration {
	return t.now
}

// After schedules a one-shot event d from now
func (t *Timers) After(d time.Duration, ev GameEvent) TimerID {
	t.nextID++
	t.pending = append(t.pending, &timer{
		id:  t.nextID,
		due: t.now + d,
		ev:  ev,
	})
	return t.nextID
}

// Every schedules count events of type et, the first one interval from now
// Payload of each event is the zero-based firing index
func (t *Timers) Every(interval time.Duration, count int, et EventType) TimerID {
	if interval <= 0 || count <= 0 {
		return 0
	}
	t.nextID++
	t.pending = append(t.pending, &timer{
		id:       t.nextID,
		due:      t.now + interval,
		interval: interval,
		left:     count,
		ev:       GameEvent{Type: et},
	})
	return t.nextID
}

// Cancel removes a pending timer, returns false if it already completed
func (t *Timers) Cancel(id TimerID) bool {
	for i, tm := range t.pending {
		if tm.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of live timers
func (t *Timers) Pending() int {
	return len(t.pending)
}

// Advance moves the clock by dt and returns every event that came due, ordered by due time
// A repeating timer spanned several times by one large dt fires once per interval
func (t *Timers) Advance(dt time.Duration) []GameEvent {
	if dt < 0 {
		dt = 0
	}
	t.now += dt

	type firing struct {
		due time.Duration
		id  TimerID
		ev  GameEvent
	}
	var due []firing

	kept := t.pending[:0]
	for _, tm := range t.pending {
		for tm.due <= t.now {
			ev := tm.ev
			ev.At = tm.due
			if tm.interval > 0 {
				ev.Payload = tm.fired
			}
			due = append(due, firing{due: tm.due, id: tm.id, ev: ev})
			tm.fired++

			if tm.interval == 0 {
				break
			}
			tm.left--
			if tm.left == 0 {
				break
			}
			tm.due += tm.interval
		}

		done := tm.fired > 0 && (tm.interval == 0 || tm.left == 0)
		if !done {
			kept = append(kept, tm)
		}
	}
	// Clear tail references for GC
	for i := len(kept); i < len(t.pending); i++ {
		t.pending[i] = nil
	}
	t.pending = kept

	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	out := make([]GameEvent, len(due))
	for i, f := range due {
		out[i] = f.ev
	}
	return out
}
