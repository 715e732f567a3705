package competitor

import (
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/ringside/scene"
)

// Detector records when a competitor first enters its finish volume
// The first overlap wins; the subscription is cancelled after it fires
type Detector struct {
	handle     *scene.Handle
	clock      Clock
	onFinish   func(elapsed time.Duration)
	fired      bool
	finishTime time.Duration
}

// NewDetector subscribes to body entering volume
func NewDetector(sc *scene.Scene, volume cube.BBox, body *scene.Collider, clock Clock, onFinish func(time.Duration)) *Detector {
	d := &Detector{clock: clock, onFinish: onFinish}
	d.handle = sc.OnIntersectionEnter(volume, body, d.Trigger)
	return d
}

// Trigger handles an overlap; calls after the first are no-ops
func (d *Detector) Trigger() {
	if d.fired {
		return
	}
	d.fired = true
	d.finishTime = d.clock.Elapsed()
	d.handle.Cancel()
	if d.onFinish != nil {
		d.onFinish(d.finishTime)
	}
}

func (d *Detector) Fired() bool { return d.fired }

// FinishTime returns the elapsed match time at first overlap
func (d *Detector) FinishTime() (time.Duration, bool) {
	return d.finishTime, d.fired
}

// Cancel drops the subscription without firing
func (d *Detector) Cancel() {
	d.handle.Cancel()
}

// FinishVolume is the trigger box around an end marker
func FinishVolume(end mgl32.Vec3, hx, hy, hz float32) cube.BBox {
	return cube.Box(end.X()-hx, end.Y()-hy, end.Z()-hz, end.X()+hx, end.Y()+hy, end.Z()+hz)
}
