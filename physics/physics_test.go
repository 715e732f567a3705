package physics

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/ringside/scene"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

func testProfile() SpeedProfile {
	return SpeedProfile{
		Base:           0,
		Accel:          0.02,
		Decel:          0.0035,
		MinSwitchDelay: 800 * time.Millisecond,
		MinRunSpeed:    0.10,
	}
}

func TestProbe(t *testing.T) {
	s := scene.New()
	s.AddSurface("floor", cube.Box(-10, -1, -10, 10, 0, 10))
	p := NewGroundingProbe(s)

	tests := []struct {
		name string
		pos  mgl32.Vec3
		want bool
	}{
		{"on floor", mgl32.Vec3{0, 0, 0}, true},
		{"just above", mgl32.Vec3{0, 0.05, 0}, true},
		{"airborne", mgl32.Vec3{0, 0.5, 0}, false},
		{"off the edge", mgl32.Vec3{20, 0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.IsGrounded(tt.pos); got != tt.want {
				t.Errorf("IsGrounded(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}

	c, ok := p.Probe(mgl32.Vec3{0, 0, 0}, 0.5, 0.6)
	if !ok || !approx(c.Distance, 0.5) {
		t.Errorf("contact = %+v %v, want distance 0.5", c, ok)
	}
}

func TestProbeIgnoresUnpickable(t *testing.T) {
	s := scene.New()
	floor := s.AddSurface("floor", cube.Box(-10, -1, -10, 10, 0, 10))
	p := NewGroundingProbe(s)

	floor.Pickable = false
	if p.IsGrounded(mgl32.Vec3{}) {
		t.Error("unpickable surface should not ground")
	}
	floor.Pickable = true
	floor.Enabled = false
	if p.IsGrounded(mgl32.Vec3{}) {
		t.Error("disabled surface should not ground")
	}
}

func TestAlternationInsideDebounceIsIgnored(t *testing.T) {
	m := NewSpeedModel(testProfile())

	m.Update(0, true, false)
	if !approx(m.Speed(), 0.02) {
		t.Fatalf("speed = %v, want 0.02", m.Speed())
	}
	for now := 10 * time.Millisecond; now < 800*time.Millisecond; now += 100 * time.Millisecond {
		m.Update(now, false, true)
		m.Update(now+time.Millisecond, false, false)
	}
	if !approx(m.Speed(), 0.02) {
		t.Errorf("speed = %v, want unchanged 0.02", m.Speed())
	}
}

func TestAlternationAtDelayAddsAccel(t *testing.T) {
	m := NewSpeedModel(testProfile())

	now := time.Duration(0)
	for i := 0; i < 6; i++ {
		left := i%2 == 0
		m.Update(now, left, !left)
		want := float32(i+1) * 0.02
		if !approx(m.Speed(), want) {
			t.Fatalf("after %d alternations speed = %v, want %v", i+1, m.Speed(), want)
		}
		if m.LastSwitch() != now {
			t.Errorf("lastSwitch = %v, want %v", m.LastSwitch(), now)
		}
		wantDir := 1
		if left {
			wantDir = -1
		}
		if m.Direction() != wantDir {
			t.Errorf("after %d alternations direction = %d, want %d", i+1, m.Direction(), wantDir)
		}
		now += 800 * time.Millisecond
	}
}

func TestHoldingSameSideDoesNotAccelerate(t *testing.T) {
	m := NewSpeedModel(testProfile())
	m.Update(0, true, false)
	m.Update(time.Second, true, false)
	m.Update(2*time.Second, true, false)
	if !approx(m.Speed(), 0.02) {
		t.Errorf("speed = %v, want 0.02", m.Speed())
	}
	if m.Direction() != -1 {
		t.Errorf("direction = %d, want -1", m.Direction())
	}
}

func TestDecelerationPerTick(t *testing.T) {
	tests := []struct {
		name        string
		left, right bool
	}{
		{"neither", false, false},
		{"both", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			p.Base = 0.05
			m := NewSpeedModel(p)

			for tick := 1; tick <= 10; tick++ {
				m.Update(time.Duration(tick)*16*time.Millisecond, tt.left, tt.right)
			}
			if !approx(m.Speed(), 0.05-10*0.0035) {
				t.Errorf("speed = %v, want %v", m.Speed(), 0.05-10*0.0035)
			}

			for tick := 11; tick <= 100; tick++ {
				m.Update(time.Duration(tick)*16*time.Millisecond, tt.left, tt.right)
			}
			if m.Speed() != 0 {
				t.Errorf("speed = %v, want floor 0", m.Speed())
			}
			if m.Direction() != 0 {
				t.Errorf("direction = %d, want 0", m.Direction())
			}
		})
	}
}

func TestIdleThreshold(t *testing.T) {
	m := NewSpeedModel(DefaultSpeedProfile)
	if !m.IsIdle() {
		t.Error("base speed should be idle")
	}
	for i := 0; i < 4; i++ {
		left := i%2 == 0
		m.Update(time.Duration(i)*time.Second, left, !left)
	}
	if m.IsIdle() {
		t.Errorf("speed %v should be running", m.Speed())
	}
}
