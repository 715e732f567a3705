package competitor

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/ringside/parameter"
	"github.com/lixenwraith/ringside/physics"
	"github.com/lixenwraith/ringside/scene"
)

// Config describes one competitor to construct
type Config struct {
	Name    string
	Kind    Kind
	Slot    Slot
	Asset   *scene.Asset
	Speed   physics.SpeedProfile
	Intents Intents
	Logger  logrus.FieldLogger
}

// Controller owns one competitor's body and state
// Update mutates only this competitor; the match holds a non-owning reference
type Controller struct {
	state State

	scene    *scene.Scene
	body     *scene.Collider
	asset    *scene.Asset
	idle     *scene.Clip
	run      *scene.Clip
	probe    *physics.GroundingProbe
	speed    *physics.SpeedModel
	intents  Intents
	detector *Detector
	facing   mgl32.Vec3
	elapsed  time.Duration
	log      logrus.FieldLogger

	onFinish  func(*Controller)
	destroyed bool
}

// New places a competitor at its slot and subscribes its finish detector
// Fails when the asset has no idle clip variant
func New(sc *scene.Scene, cfg Config, clock Clock) (*Controller, error) {
	idle, run, err := resolveClips(cfg.Asset, parameter.IdleClipVariants, parameter.RunClipVariants)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	intents := cfg.Intents
	if intents == nil {
		intents = &HeldKeys{}
	}

	id := uuid.New()
	c := &Controller{
		scene:   sc,
		asset:   cfg.Asset,
		idle:    idle,
		run:     run,
		probe:   physics.NewGroundingProbe(sc),
		speed:   physics.NewSpeedModel(cfg.Speed),
		intents: intents,
		facing:  facingOf(cfg.Slot),
		log:     log.WithFields(logrus.Fields{"competitor": cfg.Name, "kind": cfg.Kind.String()}),
	}
	c.state = State{
		ID:        id,
		Name:      cfg.Name,
		Kind:      cfg.Kind,
		Speed:     c.speed.Speed(),
		Direction: c.speed.Direction(),
	}

	spawn := cfg.Slot.Start.Add(mgl32.Vec3{0, parameter.SpawnLift, 0})
	c.body = sc.NewCapsule(cfg.Name, spawn, parameter.CapsuleHeight, parameter.CapsuleRadius)
	c.body.SetRotation(mgl32.Vec3{0, math32.Atan2(c.facing.X(), c.facing.Z()), 0})
	c.asset.StopAll()
	c.asset.AttachTo(c.body)
	c.idle.Start(true)
	c.state.Position = spawn

	volume := FinishVolume(cfg.Slot.End, parameter.FinishVolumeHalfX, parameter.FinishVolumeHalfY, parameter.FinishVolumeHalfZ)
	c.detector = NewDetector(sc, volume, c.body, clock, c.finish)

	return c, nil
}

// facingOf is the horizontal unit direction from start to end
func facingOf(slot Slot) mgl32.Vec3 {
	d := slot.End.Sub(slot.Start)
	d[1] = 0
	if d.Len() < 1e-6 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// OnFinish registers a callback invoked once when the detector fires
func (c *Controller) OnFinish(fn func(*Controller)) {
	c.onFinish = fn
}

// Settle applies grounding and gravity only, used before play starts
func (c *Controller) Settle() {
	c.mustBeLive()
	c.applyGravity()
	c.state.Position = c.body.Position()
}

// Update advances one frame of play
func (c *Controller) Update(dt time.Duration) {
	c.mustBeLive()
	c.elapsed += dt

	c.applyGravity()

	if !c.state.Finished {
		left, right := c.intents.Sample(c.elapsed)
		c.speed.Update(c.elapsed, left, right)
		c.state.Speed = c.speed.Speed()
		c.state.Direction = c.speed.Direction()
		c.state.LastInputSwitch = c.speed.LastSwitch()

		if s := c.speed.Speed(); s > 0 {
			c.body.MoveWithCollisions(c.facing.Mul(s))
		}
	}

	// Detector may have fired during the move above
	if !c.state.Finished {
		c.animate()
	}
	c.state.Position = c.body.Position()
}

func (c *Controller) applyGravity() {
	c.state.Grounded = c.probe.IsGrounded(c.body.Position())
	if !c.state.Grounded {
		c.body.MoveWithCollisions(mgl32.Vec3{0, parameter.Gravity, 0})
	}
}

func (c *Controller) animate() {
	if c.speed.IsIdle() {
		if c.run != c.idle && c.run.Playing() {
			c.run.Stop()
		}
		if !c.idle.Playing() {
			c.idle.Start(true)
		}
		return
	}
	if c.run != c.idle && c.idle.Playing() {
		c.idle.Stop()
	}
	if !c.run.Playing() {
		c.run.Start(true)
	}
}

func (c *Controller) finish(elapsed time.Duration) {
	c.state.Finished = true
	c.state.FinishTime = elapsed
	if c.run != c.idle {
		c.run.Stop()
	}
	c.idle.Start(true)
	c.log.WithField("finish_time", elapsed).Info("competitor finished")
	if c.onFinish != nil {
		c.onFinish(c)
	}
}

// Destroy removes the body and detector; the controller is unusable afterwards
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.detector.Cancel()
	c.asset.StopAll()
	c.body.Destroy()
}

func (c *Controller) mustBeLive() {
	if c.destroyed {
		panic(fmt.Sprintf("competitor: update on destroyed competitor %q", c.state.Name))
	}
}

// State returns a copy of the competitor snapshot
func (c *Controller) State() State { return c.state }

func (c *Controller) Name() string          { return c.state.Name }
func (c *Controller) ID() uuid.UUID         { return c.state.ID }
func (c *Controller) Kind() Kind            { return c.state.Kind }
func (c *Controller) Finished() bool        { return c.state.Finished }
func (c *Controller) Destroyed() bool       { return c.destroyed }
func (c *Controller) Body() *scene.Collider { return c.body }
func (c *Controller) Detector() *Detector   { return c.detector }
func (c *Controller) Facing() mgl32.Vec3    { return c.facing }
func (c *Controller) IdleClip() *scene.Clip { return c.idle }
func (c *Controller) RunClip() *scene.Clip  { return c.run }
