// Package camera plays fixed, timed viewpoint paths over the arena.
package camera

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/ringside/parameter"
)

// Keyframe pins a value at a frame index
type Keyframe struct {
	Frame int
	Value mgl32.Vec3
}

// Path is a pair of keyframe tracks played at FPS for Frames frames
// Keyframes must be sorted by frame
type Path struct {
	FPS      int
	Frames   int
	Position []Keyframe
	Rotation []Keyframe
}

// DefaultPath circles the ring and settles behind the player's start line
func DefaultPath() Path {
	fps := parameter.CameraFPS
	at := func(seconds int) int { return seconds * fps }
	pi := math32.Pi

	return Path{
		FPS:    fps,
		Frames: at(parameter.CameraPathSeconds),
		Position: []Keyframe{
			{at(0), mgl32.Vec3{-4, 3.6, 14.45}},
			{at(2), mgl32.Vec3{0, 3.6, 11}},
			{at(4), mgl32.Vec3{4, 3.6, 14.45}},
			{at(6), mgl32.Vec3{0, 3.6, 17.9}},
			{at(9), mgl32.Vec3{-4, 2.5, 14.45}},
			{at(11), mgl32.Vec3{-0.74, 0.4, 13.4}},
		},
		Rotation: []Keyframe{
			{at(0), mgl32.Vec3{pi / 4, pi / 2, 0}},
			{at(2), mgl32.Vec3{pi / 4, 0, 0}},
			{at(4), mgl32.Vec3{pi / 4, -pi / 2, 0}},
			{at(6), mgl32.Vec3{pi / 4, -pi, 0}},
			{at(9), mgl32.Vec3{pi / 5, -3 * pi / 2, 0}},
			{at(11), mgl32.Vec3{0, -2 * pi, 0}},
		},
	}
}

// Duration is the wall time of the whole path
func (p Path) Duration() time.Duration {
	if p.FPS <= 0 {
		return 0
	}
	return time.Duration(p.Frames) * time.Second / time.Duration(p.FPS)
}

// Sample returns position and rotation at frame
func (p Path) Sample(frame int) (pos, rot mgl32.Vec3) {
	return sampleTrack(p.Position, frame), sampleTrack(p.Rotation, frame)
}

// Final returns the last keyed position and rotation
func (p Path) Final() (pos, rot mgl32.Vec3) {
	if n := len(p.Position); n > 0 {
		pos = p.Position[n-1].Value
	}
	if n := len(p.Rotation); n > 0 {
		rot = p.Rotation[n-1].Value
	}
	return pos, rot
}

// sampleTrack linearly interpolates between the keys surrounding frame, clamping at the ends
func sampleTrack(keys []Keyframe, frame int) mgl32.Vec3 {
	switch {
	case len(keys) == 0:
		return mgl32.Vec3{}
	case frame <= keys[0].Frame:
		return keys[0].Value
	case frame >= keys[len(keys)-1].Frame:
		return keys[len(keys)-1].Value
	}

	for i := 1; i < len(keys); i++ {
		next := keys[i]
		if frame > next.Frame {
			continue
		}
		prev := keys[i-1]
		span := next.Frame - prev.Frame
		if span <= 0 {
			return next.Value
		}
		t := float32(frame-prev.Frame) / float32(span)
		return prev.Value.Add(next.Value.Sub(prev.Value).Mul(t))
	}
	return keys[len(keys)-1].Value
}
