package camera

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultPathShape(t *testing.T) {
	p := DefaultPath()
	if p.Frames != 660 || p.FPS != 60 {
		t.Fatalf("frames=%d fps=%d, want 660@60", p.Frames, p.FPS)
	}
	if len(p.Position) != 6 || len(p.Rotation) != 6 {
		t.Fatalf("keys = %d/%d, want 6/6", len(p.Position), len(p.Rotation))
	}
	if got := p.Duration(); got != 11*time.Second {
		t.Errorf("duration = %v, want 11s", got)
	}
	pos, _ := p.Final()
	if pos != (mgl32.Vec3{-0.74, 0.4, 13.4}) {
		t.Errorf("final position = %v", pos)
	}
}

func TestSampleInterpolates(t *testing.T) {
	p := Path{
		FPS:      10,
		Frames:   20,
		Position: []Keyframe{{0, mgl32.Vec3{0, 0, 0}}, {10, mgl32.Vec3{10, 0, 0}}, {20, mgl32.Vec3{10, 10, 0}}},
	}
	tests := []struct {
		frame int
		want  mgl32.Vec3
	}{
		{-5, mgl32.Vec3{0, 0, 0}},
		{5, mgl32.Vec3{5, 0, 0}},
		{10, mgl32.Vec3{10, 0, 0}},
		{15, mgl32.Vec3{10, 5, 0}},
		{30, mgl32.Vec3{10, 10, 0}},
	}
	for _, tt := range tests {
		pos, rot := p.Sample(tt.frame)
		if !pos.ApproxEqual(tt.want) {
			t.Errorf("Sample(%d) = %v, want %v", tt.frame, pos, tt.want)
		}
		if rot != (mgl32.Vec3{}) {
			t.Errorf("empty rotation track sampled %v", rot)
		}
	}
}

func TestSequencerRunsToEnd(t *testing.T) {
	rig := &Rig{}
	s := NewSequencer(rig)
	path := DefaultPath()
	s.Play(path)

	start, _ := path.Sample(0)
	if rig.Position != start {
		t.Fatalf("rig = %v, want first key %v", rig.Position, start)
	}

	step := time.Second / 60
	for i := 0; i < 659; i++ {
		s.Update(step)
	}
	select {
	case <-s.Done():
		t.Fatal("resolved before the last frame")
	default:
	}

	s.Update(step)
	s.Update(step)
	if err := s.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	final, finalRot := path.Final()
	if rig.Position != final || rig.Rotation != finalRot {
		t.Errorf("rig = %v %v, want final %v %v", rig.Position, rig.Rotation, final, finalRot)
	}
	if s.Skipped() || s.Playing() {
		t.Error("natural end should not be skipped or playing")
	}
}

func TestSkipResolvesImmediately(t *testing.T) {
	rig := &Rig{}
	s := NewSequencer(rig)
	path := DefaultPath()
	s.Play(path)

	for i := 0; i < 120; i++ {
		s.Update(time.Second / 60)
	}
	if !s.Skip() {
		t.Fatal("skip while playing should succeed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("wait after skip: %v", err)
	}
	final, finalRot := path.Final()
	if rig.Position != final || rig.Rotation != finalRot {
		t.Errorf("rig = %v %v, want final keyframe", rig.Position, rig.Rotation)
	}
	if s.Skip() {
		t.Error("second skip should report nothing playing")
	}

	// Updates after resolution leave the rig alone
	s.Update(time.Second)
	if rig.Position != final {
		t.Error("rig moved after skip")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	s := NewSequencer(&Rig{})
	s.Play(DefaultPath())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Wait(ctx); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPlayRestartsSequence(t *testing.T) {
	s := NewSequencer(&Rig{})
	s.Play(DefaultPath())
	first := s.Done()
	s.Play(DefaultPath())

	select {
	case <-first:
	default:
		t.Error("replacing a sequence should resolve the previous one")
	}
	if !s.Playing() {
		t.Error("new sequence should be playing")
	}
}
