package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/ringside/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Emit(EventReadyClicked)
	q.Emit(EventSkipClicked)
	q.Push(GameEvent{Type: EventCountdownStep, Payload: 2})

	got := q.Drain(nil)
	if len(got) != 3 {
		t.Fatalf("Drain() len = %d, want 3", len(got))
	}
	want := []EventType{EventReadyClicked, EventSkipClicked, EventCountdownStep}
	for i, ev := range got {
		if ev.Type != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, ev.Type, want[i])
		}
	}
	if got[2].Payload.(int) != 2 {
		t.Errorf("payload = %v, want 2", got[2].Payload)
	}
	if n := len(q.Drain(got)); n != 0 {
		t.Errorf("second Drain() len = %d, want 0", n)
	}
	if q.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", q.Dropped())
	}
}

func TestQueueDrainReusesBuffer(t *testing.T) {
	q := NewQueue()
	buf := make([]GameEvent, 0, 8)

	q.Emit(EventReadyClicked)
	buf = q.Drain(buf)
	q.Emit(EventSkipClicked)
	buf = q.Drain(buf)

	if len(buf) != 1 || buf[0].Type != EventSkipClicked {
		t.Fatalf("buf = %+v, want only the skip click", buf)
	}
	if cap(buf) != 8 {
		t.Errorf("cap = %d, buffer was reallocated", cap(buf))
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventCountdownStep, Payload: i})
	}

	if q.Len() != parameter.EventQueueSize {
		t.Fatalf("Len() = %d, want %d", q.Len(), parameter.EventQueueSize)
	}
	if q.Dropped() != 10 {
		t.Errorf("Dropped() = %d, want 10", q.Dropped())
	}
	got := q.Drain(nil)
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("Drain() len = %d, want %d", len(got), parameter.EventQueueSize)
	}
	if first := got[0].Payload.(int); first != 10 {
		t.Errorf("oldest surviving payload = %d, want 10", first)
	}
	if last := got[len(got)-1].Payload.(int); last != total-1 {
		t.Errorf("newest payload = %d, want %d", last, total-1)
	}

	// Positions keep counting after a wrap
	q.Emit(EventSkipClicked)
	if got := q.Drain(nil); len(got) != 1 || got[0].Type != EventSkipClicked {
		t.Errorf("after wrap = %+v", got)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				q.Emit(EventReadyClicked)
			}
		}()
	}
	wg.Wait()

	if got := len(q.Drain(nil)); got != 100 {
		t.Errorf("drained %d events, want 100", got)
	}
}
