package scene

import "github.com/ethaniccc/float32-cube/cube"

type trigger struct {
	volume    cube.BBox
	collider  *Collider
	fn        func()
	inside    bool
	cancelled bool
}

// Handle is a cancelable intersection subscription
type Handle struct {
	t     *trigger
	scene *Scene
}

// Cancel unsubscribes; safe to call more than once and from inside the callback
func (h *Handle) Cancel() {
	if h == nil || h.t == nil || h.t.cancelled {
		return
	}
	h.t.cancelled = true
	h.scene.pruneTriggers()
}

// Active reports whether the subscription still fires
func (h *Handle) Active() bool {
	return h != nil && h.t != nil && !h.t.cancelled
}

// OnIntersectionEnter calls fn each time c enters volume
// Evaluated synchronously whenever c moves, within the caller's frame update
func (s *Scene) OnIntersectionEnter(volume cube.BBox, c *Collider, fn func()) *Handle {
	t := &trigger{
		volume:   volume,
		collider: c,
		fn:       fn,
		inside:   overlaps(volume, c.Box()),
	}
	s.triggers = append(s.triggers, t)
	return &Handle{t: t, scene: s}
}

// TriggerCount returns the number of live subscriptions
func (s *Scene) TriggerCount() int {
	n := 0
	for _, t := range s.triggers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (s *Scene) evaluateTriggers(c *Collider) {
	// Callbacks may cancel handles; iterate over a snapshot
	snapshot := append([]*trigger(nil), s.triggers...)
	box := c.Box()
	for _, t := range snapshot {
		if t.cancelled || t.collider != c {
			continue
		}
		in := overlaps(t.volume, box)
		entered := in && !t.inside
		t.inside = in
		if entered {
			t.fn()
		}
	}
}

func (s *Scene) pruneTriggers() {
	kept := s.triggers[:0]
	for _, t := range s.triggers {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.triggers); i++ {
		s.triggers[i] = nil
	}
	s.triggers = kept
}
