package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Collider is a capsule-shaped competitor body approximated by its bounding box
// Position is the bottom centre (feet)
type Collider struct {
	Name    string
	Visible bool

	scene     *Scene
	position  mgl32.Vec3
	rotation  mgl32.Vec3
	radius    float32
	height    float32
	destroyed bool
}

// NewCapsule creates a collider with its feet at pos
func (s *Scene) NewCapsule(name string, pos mgl32.Vec3, height, radius float32) *Collider {
	c := &Collider{
		Name:     name,
		scene:    s,
		position: pos,
		radius:   radius,
		height:   height,
	}
	s.colliders[c] = struct{}{}
	return c
}

// Position returns the feet position
func (c *Collider) Position() mgl32.Vec3 {
	return c.position
}

// Rotation returns the Euler rotation (radians)
func (c *Collider) Rotation() mgl32.Vec3 {
	return c.rotation
}

// SetRotation sets the Euler rotation (radians)
func (c *Collider) SetRotation(rot mgl32.Vec3) {
	c.rotation = rot
}

// Box returns the world-space bounding box
func (c *Collider) Box() cube.BBox {
	return cube.Box(-c.radius, 0, -c.radius, c.radius, c.height, c.radius).Translate(c.position)
}

// Destroyed reports whether the collider was removed from its scene
func (c *Collider) Destroyed() bool {
	return c.destroyed
}

// Teleport moves the collider without collision resolution
func (c *Collider) Teleport(pos mgl32.Vec3) {
	c.mustBeLive()
	c.position = pos
	c.scene.evaluateTriggers(c)
}

// MoveWithCollisions displaces the collider by delta, clipped against enabled surfaces
// Axes resolve in Y, X, Z order; returns the displacement actually applied
func (c *Collider) MoveWithCollisions(delta mgl32.Vec3) mgl32.Vec3 {
	c.mustBeLive()

	box := c.Box()
	applied := mgl32.Vec3{}
	for _, axis := range [3]int{1, 0, 2} {
		d := delta[axis]
		if d == 0 {
			continue
		}
		for _, surf := range c.scene.surfaces {
			if !surf.Enabled {
				continue
			}
			d = clipAxis(box, surf.Box, axis, d)
		}
		var shift mgl32.Vec3
		shift[axis] = d
		box = box.Translate(shift)
		applied[axis] = d
	}

	c.position = c.position.Add(applied)
	c.scene.evaluateTriggers(c)
	return applied
}

// Destroy removes the collider and cancels every trigger bound to it
func (c *Collider) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	delete(c.scene.colliders, c)
	for _, t := range c.scene.triggers {
		if t.collider == c {
			t.cancelled = true
		}
	}
	c.scene.pruneTriggers()
}

func (c *Collider) mustBeLive() {
	if c.destroyed {
		panic(fmt.Errorf("%w: %s", ErrDestroyed, c.Name))
	}
}

// clipAxis limits movement d of moving along axis so it stops at the face of stationary
// Only boxes overlapping on the two other axes can block
func clipAxis(moving, stationary cube.BBox, axis int, d float32) float32 {
	mMin, mMax := moving.Min(), moving.Max()
	sMin, sMax := stationary.Min(), stationary.Max()

	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if mMax[i]-sMin[i] <= epsilon || sMax[i]-mMin[i] <= epsilon {
			return d
		}
	}

	switch {
	case d > 0 && mMax[axis] <= sMin[axis]+epsilon:
		d = math32.Min(d, sMin[axis]-mMax[axis])
	case d < 0 && mMin[axis] >= sMax[axis]-epsilon:
		d = math32.Max(d, sMax[axis]-mMin[axis])
	}
	return d
}
