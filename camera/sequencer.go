package camera

import (
	"context"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Rig is the active viewpoint
type Rig struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	// Target names the entity the rig follows once handed off, empty while sequenced
	Target string
}

// Sequencer advances a Path on the rig one frame update at a time
// Done closes when the path reaches its last frame or Skip is called
type Sequencer struct {
	mu      sync.Mutex
	rig     *Rig
	path    Path
	elapsed time.Duration
	playing bool
	skipped bool
	done    chan struct{}
}

func NewSequencer(rig *Rig) *Sequencer {
	done := make(chan struct{})
	close(done)
	return &Sequencer{rig: rig, done: done}
}

// Play starts path from its first frame, ending any sequence in progress
func (s *Sequencer) Play(path Path) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finishLocked()
	s.path = path
	s.elapsed = 0
	s.playing = true
	s.skipped = false
	s.done = make(chan struct{})
	s.rig.Target = ""
	s.rig.Position, s.rig.Rotation = path.Sample(0)

	if path.Frames <= 0 || path.FPS <= 0 {
		s.rig.Position, s.rig.Rotation = path.Final()
		s.finishLocked()
	}
}

// Update advances by dt with fixed-step sampling at the path frame rate
func (s *Sequencer) Update(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		return
	}
	s.elapsed += dt
	frame := int(s.elapsed * time.Duration(s.path.FPS) / time.Second)
	if frame >= s.path.Frames {
		s.rig.Position, s.rig.Rotation = s.path.Final()
		s.finishLocked()
		return
	}
	s.rig.Position, s.rig.Rotation = s.path.Sample(frame)
}

// Skip jumps to the final keyframe and resolves the sequence
// Returns false when nothing was playing
func (s *Sequencer) Skip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		return false
	}
	s.rig.Position, s.rig.Rotation = s.path.Final()
	s.skipped = true
	s.finishLocked()
	return true
}

// Done is closed once the current sequence resolves
func (s *Sequencer) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Wait blocks until the sequence resolves or ctx ends
func (s *Sequencer) Wait(ctx context.Context) error {
	select {
	case <-s.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sequencer) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Skipped reports whether the last sequence ended through Skip
func (s *Sequencer) Skipped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

func (s *Sequencer) finishLocked() {
	if !s.playing {
		return
	}
	s.playing = false
	close(s.done)
}
