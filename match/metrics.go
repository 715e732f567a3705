package match

import (
	"sync/atomic"

	"github.com/lixenwraith/ringside/status"
)

// metrics caches registry pointers written once per frame
type metrics struct {
	phase    *status.AtomicString
	frames   *atomic.Int64
	elapsed  *status.AtomicFloat
	finished *atomic.Int64
	revealed *atomic.Bool
	dropped  *atomic.Int64
}

func newMetrics(reg *status.Registry) metrics {
	return metrics{
		phase:    reg.Strings.Get("match.phase"),
		frames:   reg.Ints.Get("match.frames"),
		elapsed:  reg.Floats.Get("match.elapsed"),
		finished: reg.Ints.Get("match.finished"),
		revealed: reg.Bools.Get("match.revealed"),
		dropped:  reg.Ints.Get("match.dropped_events"),
	}
}

func (m *metrics) publish(o *Orchestrator) {
	m.phase.Store(o.machine.CurrentName())
	m.frames.Store(o.frames)
	m.elapsed.Set(o.Elapsed().Seconds())
	m.finished.Store(int64(o.finishedCount))
	m.revealed.Store(o.revealed)
	m.dropped.Store(int64(o.queue.Dropped()))
}
