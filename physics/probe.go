package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/ringside/parameter"
	"github.com/lixenwraith/ringside/scene"
)

// RayCaster answers nearest-hit segment queries against level surfaces
type RayCaster interface {
	Raycast(origin, dir mgl32.Vec3, length float32, filter scene.Filter) (mgl32.Vec3, bool)
}

// Contact is a probe hit
type Contact struct {
	Point    mgl32.Vec3
	Distance float32
}

var down = mgl32.Vec3{0, -1, 0}

// GroundingProbe casts short downward rays for walkable contact
// Only pickable, enabled surfaces count; probes are pure queries
type GroundingProbe struct {
	caster RayCaster
	lift   float32
	length float32
}

// NewGroundingProbe uses the default lift and reach from parameter
func NewGroundingProbe(caster RayCaster) *GroundingProbe {
	return &GroundingProbe{
		caster: caster,
		lift:   parameter.ProbeLift,
		length: parameter.ProbeLength,
	}
}

// Probe casts down from pos raised by offset, reaching maxDist
func (p *GroundingProbe) Probe(pos mgl32.Vec3, offset, maxDist float32) (Contact, bool) {
	origin := pos.Add(mgl32.Vec3{0, offset, 0})
	hit, ok := p.caster.Raycast(origin, down, maxDist, scene.PickableEnabled)
	if !ok {
		return Contact{}, false
	}
	return Contact{Point: hit, Distance: origin.Y() - hit.Y()}, true
}

// IsGrounded probes from the feet with the default lift and reach
func (p *GroundingProbe) IsGrounded(pos mgl32.Vec3) bool {
	_, ok := p.Probe(pos, p.lift, p.length)
	return ok
}
