// Package scene is the geometric substrate a match runs on: walkable surfaces, named
// markers, lights, capsule colliders that move with collision, a downward ray query and
// intersection triggers. Geometry is float32 and built on float32-cube boxes.
package scene

import (
	"errors"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrMarkerNotFound = errors.New("scene: marker not found")
	ErrDestroyed      = errors.New("scene: collider destroyed")
)

// Surface is a static box in the level
// Enabled surfaces block colliders; rays additionally require Pickable
type Surface struct {
	Name     string
	Box      cube.BBox
	Pickable bool
	Enabled  bool
}

// Filter selects surfaces for a ray query
type Filter func(*Surface) bool

// PickableEnabled accepts only pickable, enabled surfaces
func PickableEnabled(s *Surface) bool {
	return s.Pickable && s.Enabled
}

// Marker is a named transform placed in level geometry (placement lines, spawn points)
type Marker struct {
	Name     string
	Position mgl32.Vec3
	Visible  bool
}

// Light is a hemispheric light
type Light struct {
	Name      string
	Direction mgl32.Vec3
	Intensity float32
}

// Scene holds the level geometry and the live colliders
// Not safe for concurrent use: the match mutates it from its frame update only
type Scene struct {
	surfaces  []*Surface
	markers   map[string]*Marker
	lights    []*Light
	colliders map[*Collider]struct{}
	triggers  []*trigger
}

// New creates an empty scene
func New() *Scene {
	return &Scene{
		markers:   make(map[string]*Marker),
		colliders: make(map[*Collider]struct{}),
	}
}

// AddSurface registers a static surface, pickable and enabled
func (s *Scene) AddSurface(name string, box cube.BBox) *Surface {
	surf := &Surface{Name: name, Box: box, Pickable: true, Enabled: true}
	s.surfaces = append(s.surfaces, surf)
	return surf
}

// Surfaces returns the registered surfaces
func (s *Scene) Surfaces() []*Surface {
	return s.surfaces
}

// AddMarker registers or replaces a named marker
func (s *Scene) AddMarker(name string, pos mgl32.Vec3) *Marker {
	m := &Marker{Name: name, Position: pos, Visible: true}
	s.markers[name] = m
	return m
}

// Marker looks up a marker by name
func (s *Scene) Marker(name string) (*Marker, bool) {
	m, ok := s.markers[name]
	return m, ok
}

// AddLight creates a hemispheric light
func (s *Scene) AddLight(name string, dir mgl32.Vec3, intensity float32) *Light {
	l := &Light{Name: name, Direction: dir, Intensity: intensity}
	s.lights = append(s.lights, l)
	return l
}

// Lights returns the lights created so far
func (s *Scene) Lights() []*Light {
	return s.lights
}

// Raycast returns the nearest point where the segment origin + dir*length enters a surface
// accepted by filter
func (s *Scene) Raycast(origin, dir mgl32.Vec3, length float32, filter Filter) (mgl32.Vec3, bool) {
	if length <= 0 || dir.Len() == 0 {
		return mgl32.Vec3{}, false
	}
	end := origin.Add(dir.Normalize().Mul(length))

	var (
		best     mgl32.Vec3
		bestDist float32
		hit      bool
	)
	for _, surf := range s.surfaces {
		if filter != nil && !filter(surf) {
			continue
		}
		res, ok := trace.BBoxIntercept(surf.Box, origin, end)
		if !ok {
			continue
		}
		pos := res.Position()
		dist := pos.Sub(origin).Len()
		if !hit || dist < bestDist {
			best, bestDist, hit = pos, dist, true
		}
	}
	return best, hit
}

// ColliderCount returns the number of live colliders
func (s *Scene) ColliderCount() int {
	return len(s.colliders)
}

// overlaps reports strict box intersection, touching faces do not overlap
func overlaps(a, b cube.BBox) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if aMax[i]-bMin[i] <= epsilon || bMax[i]-aMin[i] <= epsilon {
			return false
		}
	}
	return true
}

const epsilon = 1e-5
