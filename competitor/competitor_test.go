package competitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/ringside/parameter"
	"github.com/lixenwraith/ringside/physics"
	"github.com/lixenwraith/ringside/scene"
)

type fakeClock struct{ now time.Duration }

func (f *fakeClock) Elapsed() time.Duration { return f.now }

// scripted returns fixed inputs
type scripted struct{ left, right bool }

func (s scripted) Sample(time.Duration) (bool, bool) { return s.left, s.right }

func arena() *scene.Scene {
	sc := scene.New()
	sc.AddSurface("floor", cube.Box(-20, -1, -40, 20, 0, 20))
	return sc
}

func importAsset(t *testing.T, clips ...string) *scene.Asset {
	t.Helper()
	cat := scene.NewCatalog()
	cat.Register("boxer.glb", clips...)
	a, err := cat.Import(context.Background(), "boxer.glb")
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func newController(t *testing.T, sc *scene.Scene, intents Intents, clock Clock, speed physics.SpeedProfile) *Controller {
	t.Helper()
	c, err := New(sc, Config{
		Name:    "p1",
		Kind:    KindPlayer,
		Slot:    Slot{Start: mgl32.Vec3{0, 0, 0}, End: mgl32.Vec3{0, 0, -10}},
		Asset:   importAsset(t, "Anim|boxIdle", "Anim|runBoxe"),
		Speed:   speed,
		Intents: intents,
	}, clock)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestClipResolution(t *testing.T) {
	tests := []struct {
		name     string
		clips    []string
		wantIdle string
		wantRun  string
		wantErr  bool
	}{
		{"first variant", []string{"Anim|idleBoxe", "Anim|boxIdle"}, "Anim|idleBoxe", "Anim|idleBoxe", false},
		{"second variant", []string{"Anim|boxIdle", "Anim|boxRun"}, "Anim|boxIdle", "Anim|boxRun", false},
		{"missing", []string{"Anim|walk"}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idle, run, err := resolveClips(importAsset(t, tt.clips...), parameter.IdleClipVariants, parameter.RunClipVariants)
			if tt.wantErr {
				if !errors.Is(err, ErrClipMissing) {
					t.Fatalf("err = %v, want ErrClipMissing", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if idle.Name != tt.wantIdle || run.Name != tt.wantRun {
				t.Errorf("got idle=%s run=%s, want %s %s", idle.Name, run.Name, tt.wantIdle, tt.wantRun)
			}
		})
	}
}

func TestNewFailsFastWithoutIdleClip(t *testing.T) {
	sc := arena()
	_, err := New(sc, Config{Name: "x", Asset: importAsset(t, "Anim|walk")}, &fakeClock{})
	if !errors.Is(err, ErrClipMissing) {
		t.Fatalf("err = %v, want ErrClipMissing", err)
	}
	if sc.ColliderCount() != 0 {
		t.Error("failed construction must not leave a collider")
	}
}

func TestGravityOncePerFrameUntilGrounded(t *testing.T) {
	sc := arena()
	c := newController(t, sc, scripted{}, &fakeClock{}, physics.SpeedProfile{})

	if y := c.State().Position.Y(); y != parameter.SpawnLift {
		t.Fatalf("spawn y = %v, want %v", y, parameter.SpawnLift)
	}

	c.Settle()
	if y := c.State().Position.Y(); mgl32.Abs(y-(parameter.SpawnLift+parameter.Gravity)) > 1e-5 {
		t.Errorf("after one frame y = %v, want %v", y, parameter.SpawnLift+parameter.Gravity)
	}
	if c.State().Grounded {
		t.Error("should be airborne at spawn")
	}

	for i := 0; i < 10; i++ {
		c.Settle()
	}
	if y := c.State().Position.Y(); mgl32.Abs(y) > 1e-4 {
		t.Errorf("settled y = %v, want 0", y)
	}
	if !c.State().Grounded {
		t.Error("should be grounded once settled")
	}
}

func TestUpdateMovesAlongFacing(t *testing.T) {
	sc := arena()
	p := physics.DefaultSpeedProfile
	c := newController(t, sc, scripted{}, &fakeClock{}, p)
	for i := 0; i < 10; i++ {
		c.Settle()
	}

	if f := c.Facing(); f != (mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("facing = %v", f)
	}
	before := c.State().Position
	c.Update(16 * time.Millisecond)
	after := c.State().Position

	want := p.Base - p.Decel
	if got := before.Z() - after.Z(); mgl32.Abs(got-want) > 1e-5 {
		t.Errorf("moved %v, want %v", got, want)
	}
	if after.X() != before.X() {
		t.Errorf("x drifted: %v -> %v", before.X(), after.X())
	}
}

func TestRunClipFollowsSpeed(t *testing.T) {
	sc := arena()
	keys := &HeldKeys{}
	p := physics.DefaultSpeedProfile
	c := newController(t, sc, keys, &fakeClock{}, p)

	if !c.IdleClip().Playing() {
		t.Fatal("idle should play after construction")
	}

	step := parameter.MinSwitchDelay
	for i := 0; i < 4; i++ {
		keys.SetLeft(i%2 == 0)
		keys.SetRight(i%2 == 1)
		c.Update(step)
	}
	if !c.RunClip().Playing() || c.IdleClip().Playing() {
		t.Errorf("run=%v idle=%v at speed %v", c.RunClip().Playing(), c.IdleClip().Playing(), c.State().Speed)
	}
}

func TestDetectorFiresOnceWithElapsed(t *testing.T) {
	sc := arena()
	clock := &fakeClock{}
	p := physics.DefaultSpeedProfile
	p.Base = 1
	p.Decel = 0
	c := newController(t, sc, scripted{}, clock, p)

	calls := 0
	c.OnFinish(func(*Controller) { calls++ })

	for i := 1; i <= 20 && !c.Finished(); i++ {
		clock.now = time.Duration(i) * time.Second
		c.Update(time.Second)
	}
	if !c.Finished() || calls != 1 {
		t.Fatalf("finished=%v calls=%d", c.Finished(), calls)
	}
	ft := c.State().FinishTime
	if ft == 0 {
		t.Fatal("finish time not recorded")
	}
	if !c.IdleClip().Playing() {
		t.Error("finish should return to idle")
	}

	// Later overlaps are no-ops
	clock.now += time.Minute
	c.Detector().Trigger()
	c.Detector().Trigger()
	if calls != 1 || c.State().FinishTime != ft {
		t.Errorf("repeat overlap changed state: calls=%d finish=%v", calls, c.State().FinishTime)
	}
	if got, ok := c.Detector().FinishTime(); !ok || got != ft {
		t.Errorf("detector finish = %v %v, want %v", got, ok, ft)
	}

	// Finished competitors stop advancing
	pos := c.State().Position
	c.Update(time.Second)
	if c.State().Position.Z() != pos.Z() {
		t.Error("finished competitor moved")
	}
}

func TestDestroy(t *testing.T) {
	sc := arena()
	c := newController(t, sc, scripted{}, &fakeClock{}, physics.DefaultSpeedProfile)
	c.Destroy()
	c.Destroy()

	if sc.ColliderCount() != 0 || sc.TriggerCount() != 0 {
		t.Errorf("colliders=%d triggers=%d after destroy", sc.ColliderCount(), sc.TriggerCount())
	}

	defer func() {
		if recover() == nil {
			t.Error("update on destroyed competitor should panic")
		}
	}()
	c.Update(time.Millisecond)
}

func TestBotDriverCadence(t *testing.T) {
	tests := []struct {
		name      string
		baseSpeed float32
		want      time.Duration
	}{
		{"reference", parameter.BotReferenceSpeed, parameter.MinSwitchDelay},
		{"half", parameter.BotReferenceSpeed / 2, 2 * parameter.MinSwitchDelay},
		{"faster clamps", parameter.BotReferenceSpeed * 4, parameter.MinSwitchDelay},
		{"stopped", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewBotDriver(tt.baseSpeed).Interval(); got != tt.want {
				t.Errorf("interval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBotDriverAlternates(t *testing.T) {
	b := NewBotDriver(parameter.BotReferenceSpeed)
	m := physics.NewSpeedModel(physics.DefaultSpeedProfile)

	for now := time.Duration(0); now <= 4*parameter.MinSwitchDelay; now += 16 * time.Millisecond {
		l, r := b.Sample(now)
		if l == r {
			t.Fatalf("bot must hold exactly one side, got %v %v", l, r)
		}
		m.Update(now, l, r)
	}
	if m.Speed() <= physics.DefaultSpeedProfile.Base {
		t.Errorf("bot speed %v did not grow", m.Speed())
	}
}
