package event

import (
	"sync/atomic"

	"github.com/lixenwraith/ringside/parameter"
)

// Queue carries control clicks and fired timers to the frame update
// Producers: click handlers on the input goroutine, timers on the frame goroutine
// Consumer: one Drain per frame
//
// A full queue overwrites its oldest entry; Dropped counts the losses
type Queue struct {
	slots   [parameter.EventQueueSize]slot
	read    atomic.Uint64
	write   atomic.Uint64
	dropped atomic.Uint64
}

type slot struct {
	ev    GameEvent
	ready atomic.Bool // Set once ev is fully written
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push claims the next position, then publishes ev into its slot
func (q *Queue) Push(ev GameEvent) {
	pos := q.write.Add(1) - 1
	s := &q.slots[pos&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	// Drag the reader forward past anything this write overwrote
	floor := pos + 1
	if floor < parameter.EventQueueSize {
		return
	}
	floor -= parameter.EventQueueSize
	for {
		r := q.read.Load()
		if r >= floor {
			return
		}
		if q.read.CompareAndSwap(r, floor) {
			q.dropped.Add(floor - r)
			return
		}
	}
}

// Emit pushes an event without payload
func (q *Queue) Emit(t EventType) {
	q.Push(GameEvent{Type: t})
}

// Drain appends pending events to buf[:0] in FIFO order and returns it
// It stops at the first slot a producer is still writing; that event waits for the next frame
func (q *Queue) Drain(buf []GameEvent) []GameEvent {
	for {
		buf = buf[:0]
		start := q.read.Load()
		end := q.write.Load()

		from := start
		if end-from > parameter.EventQueueSize {
			from = end - parameter.EventQueueSize
		}
		for pos := from; pos < end; pos++ {
			s := &q.slots[pos&parameter.EventBufferMask]
			if !s.ready.Load() {
				break
			}
			buf = append(buf, s.ev)
		}

		next := from + uint64(len(buf))
		if next == start {
			return buf
		}
		if !q.read.CompareAndSwap(start, next) {
			continue
		}
		for pos := from; pos < next; pos++ {
			q.slots[pos&parameter.EventBufferMask].ready.Store(false)
		}
		return buf
	}
}

// Len returns the approximate pending count
func (q *Queue) Len() int {
	r := q.read.Load()
	w := q.write.Load()
	if w <= r {
		return 0
	}
	return int(min(w-r, parameter.EventQueueSize))
}

// Dropped returns how many events were overwritten before being drained
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
