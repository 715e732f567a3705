package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/ringside/camera"
	"github.com/lixenwraith/ringside/competitor"
	"github.com/lixenwraith/ringside/config"
	"github.com/lixenwraith/ringside/engine/fsm"
	"github.com/lixenwraith/ringside/event"
	"github.com/lixenwraith/ringside/parameter"
	"github.com/lixenwraith/ringside/physics"
	"github.com/lixenwraith/ringside/scene"
	"github.com/lixenwraith/ringside/scoreboard"
	"github.com/lixenwraith/ringside/status"
)

// Deps are the collaborators a match talks to
// Settings, UI, Sink, Source, Environment, Importer, Profile and Pipeline are required
type Deps struct {
	Settings    *config.Settings
	UI          UI
	Sink        StateSink
	Source      StateSource
	Environment Environment
	Importer    scene.Importer
	Profile     scoreboard.KV
	Pipeline    Finalizer
	Intents     competitor.Intents
	Cues        Cues
	Status      *status.Registry
	Logger      logrus.FieldLogger
	// Camera overrides the intro path, nil plays camera.DefaultPath
	Camera *camera.Path
}

// Options are fixed for the lifetime of a match and carried across replays
type Options struct {
	Tier        config.Tier
	Multiplayer bool
}

// Orchestrator is the solo match Mode
// All state is owned by the goroutine calling Update; UI clicks arrive through the event queue
type Orchestrator struct {
	id    uuid.UUID
	deps  Deps
	opts  Options
	tier  config.TierSettings
	log   logrus.FieldLogger
	cues  Cues
	stats metrics

	machine *fsm.Machine[*Orchestrator]
	queue   *event.Queue
	timers  *event.Timers

	scene *scene.Scene
	rig   *camera.Rig
	seq   *camera.Sequencer
	path  camera.Path
	slots []competitor.Slot

	player      *competitor.Controller
	competitors []*competitor.Controller
	playerName  string

	board  *scoreboard.Board
	result scoreboard.Result
	score  int

	ctx              context.Context
	matchStart       time.Duration
	matchStarted     bool
	matchEnd         time.Duration
	matchEnded       bool
	readyShown       bool
	countdownStarted bool
	countdownPrev    int
	revealTimer      event.TimerID
	revealed         bool
	resultsShown     bool
	finishedCount    int
	endReason        event.EventType
	outcome          Outcome
	entered          bool
	exited           bool
	frames           int64
	dt               time.Duration
	pending          []event.GameEvent
}

// NewSolo validates deps and pushes the tier timeout to the presentation timer
func NewSolo(deps Deps, opts Options) (*Orchestrator, error) {
	switch {
	case deps.Settings == nil:
		return nil, errors.New("match: settings required")
	case deps.UI == nil || deps.Sink == nil || deps.Source == nil:
		return nil, errors.New("match: presentation ports required")
	case deps.Environment == nil || deps.Importer == nil:
		return nil, errors.New("match: environment and importer required")
	case deps.Profile == nil || deps.Pipeline == nil:
		return nil, errors.New("match: profile and pipeline required")
	}
	tier, ok := deps.Settings.Tier(opts.Tier)
	if !ok {
		return nil, fmt.Errorf("match: tier %s not configured", opts.Tier)
	}

	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	cues := deps.Cues
	if cues == nil {
		cues = nopCues{}
	}
	if deps.Intents == nil {
		deps.Intents = &competitor.HeldKeys{}
	}
	if deps.Status == nil {
		deps.Status = status.NewRegistry()
	}
	path := camera.DefaultPath()
	if deps.Camera != nil {
		path = *deps.Camera
	}

	id := uuid.New()
	o := &Orchestrator{
		id:            id,
		deps:          deps,
		opts:          opts,
		tier:          tier,
		cues:          cues,
		stats:         newMetrics(deps.Status),
		log:           log.WithFields(logrus.Fields{"match": id.String(), "tier": opts.Tier.String()}),
		queue:         event.NewQueue(),
		timers:        event.NewTimers(),
		scene:         scene.New(),
		rig:           &camera.Rig{},
		path:          path,
		board:         scoreboard.NewBoard(tier.Scoring),
		countdownPrev: -1,
	}
	o.seq = camera.NewSequencer(o.rig)
	o.machine = buildMachine()
	o.machine.OnTransition = o.onTransition

	deps.Sink.TimeoutChanged(tier.Timeout())
	return o, nil
}

// Enter runs setup and placement; on error nothing was left in the scene
func (o *Orchestrator) Enter(ctx context.Context) error {
	if o.entered {
		return errors.New("match: already entered")
	}
	o.entered = true
	o.ctx = ctx

	if err := o.machine.Init(o, StateSetup); err != nil {
		return &SetupError{Phase: "setup", Err: err}
	}
	if err := o.setup(ctx); err != nil {
		o.abort()
		return &SetupError{Phase: "setup", Err: err}
	}
	o.machine.HandleEvent(o, event.EventEnvironmentReady)

	if err := o.place(ctx); err != nil {
		o.abort()
		return &SetupError{Phase: "placing", Err: err}
	}
	if !o.machine.HandleEvent(o, event.EventCompetitorsPlaced) {
		o.abort()
		return &SetupError{Phase: "placing", Err: ErrEmptyRoster}
	}

	o.bindControls()
	return nil
}

// setup loads the arena, creates the light and resolves placement slots
func (o *Orchestrator) setup(ctx context.Context) error {
	if err := o.deps.Environment.Load(ctx, o.scene); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}
	o.scene.AddLight("light", mgl32.Vec3{0, 2, 1}, parameter.LightIntensity)

	slots := make([]competitor.Slot, 0, len(o.deps.Settings.Placement))
	for _, line := range o.deps.Settings.Placement {
		start, ok := o.scene.Marker(line.Start)
		if !ok {
			return fmt.Errorf("%w: %s", scene.ErrMarkerNotFound, line.Start)
		}
		end, ok := o.scene.Marker(line.End)
		if !ok {
			return fmt.Errorf("%w: %s", scene.ErrMarkerNotFound, line.End)
		}
		start.Visible = false
		end.Visible = false
		slots = append(slots, competitor.Slot{Start: start.Position, End: end.Position})
	}
	o.slots = slots
	return nil
}

type entrant struct {
	name  string
	kind  competitor.Kind
	path  string
	speed physics.SpeedProfile
	input competitor.Intents
}

// place imports every asset concurrently, then constructs controllers slot by slot
func (o *Orchestrator) place(ctx context.Context) error {
	o.playerName = o.profileValue(ctx, parameter.ProfileKeyUsername, parameter.DefaultPlayerName)
	character := o.profileValue(ctx, parameter.ProfileKeyCharacter, o.deps.Settings.DefaultCharacter)

	entrants := []entrant{{
		name:  o.playerName,
		kind:  competitor.KindPlayer,
		path:  parameter.CharacterAssetDir + character,
		speed: physics.DefaultSpeedProfile,
		input: o.deps.Intents,
	}}
	for _, e := range o.tier.Roster {
		profile := physics.DefaultSpeedProfile
		profile.Base = e.BaseSpeed
		entrants = append(entrants, entrant{
			name:  e.Name,
			kind:  competitor.KindBot,
			path:  e.Asset,
			speed: profile,
			input: competitor.NewBotDriver(e.BaseSpeed),
		})
	}
	if len(entrants) > len(o.slots) {
		return fmt.Errorf("%w: %d competitors, %d slots", ErrNoSlot, len(entrants), len(o.slots))
	}

	assets := make([]*scene.Asset, len(entrants))
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range entrants {
		g.Go(func() error {
			a, err := o.deps.Importer.Import(gctx, e.path)
			if err != nil {
				return fmt.Errorf("import %s: %w", e.name, err)
			}
			assets[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, e := range entrants {
		c, err := competitor.New(o.scene, competitor.Config{
			Name:    e.name,
			Kind:    e.kind,
			Slot:    o.slots[i],
			Asset:   assets[i],
			Speed:   e.speed,
			Intents: e.input,
			Logger:  o.log,
		}, o)
		if err != nil {
			return err
		}
		c.OnFinish(o.onCompetitorFinish)
		o.competitors = append(o.competitors, c)
		if e.kind == competitor.KindPlayer {
			o.player = c
		}
	}
	// Consumed slots are no longer available
	o.slots = o.slots[len(entrants):]

	if o.tier.Scoring == config.ScoringPoints {
		o.board.Set(o.playerName, 0)
		o.deps.Sink.ResultsChanged(o.board.Result())
	}
	o.log.WithField("competitors", len(o.competitors)).Info("competitors placed")
	return nil
}

func (o *Orchestrator) profileValue(ctx context.Context, key, fallback string) string {
	v, ok, err := o.deps.Profile.Get(ctx, key)
	if err != nil {
		o.log.WithError(err).WithField("key", key).Warn("profile read failed")
		return fallback
	}
	if !ok || v == "" {
		return fallback
	}
	return v
}

// bindControls routes clicks into the event queue
func (o *Orchestrator) bindControls() {
	bind := func(id ControlID, et event.EventType) {
		o.deps.UI.OnClick(id, func() { o.queue.Emit(et) })
	}
	bind(ControlReady, event.EventReadyClicked)
	bind(ControlSkip, event.EventSkipClicked)
	bind(ControlCloseHelp, event.EventHelpClosed)
	bind(ControlReplay, event.EventReplayClicked)
	bind(ControlContinue, event.EventContinueClicked)
}

// abort releases everything a failed Enter created
func (o *Orchestrator) abort() {
	o.destroyCompetitors()
	o.machine.Stop(o)
	o.deps.UI.HidePanel(PanelLoading)
}

// Update advances timers, dispatches queued events and runs the current phase
func (o *Orchestrator) Update(dt time.Duration) {
	if !o.entered || o.exited {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if dt > parameter.FrameDeltaCap {
		dt = parameter.FrameDeltaCap
	}

	o.dt = dt

	for _, ev := range o.timers.Advance(dt) {
		o.queue.Push(ev)
	}
	o.pending = o.queue.Drain(o.pending)
	for _, ev := range o.pending {
		o.dispatch(ev)
	}
	o.machine.Update(o, dt)

	o.frames++
	o.stats.publish(o)
}

// Exit resets the presentation state and destroys every competitor; safe to call twice
func (o *Orchestrator) Exit() {
	if o.exited {
		return
	}
	o.exited = true

	for _, p := range []PanelID{PanelScore, PanelResults, PanelActions, PanelGame, PanelFinish, PanelHelp, PanelSkip, PanelReady} {
		o.deps.UI.HidePanel(p)
	}
	o.deps.Sink.ScoreChanged(0)
	o.deps.Sink.TimerReset()
	o.deps.Sink.PlayableChanged(false)
	o.deps.Sink.ResultsChanged(nil)

	o.seq.Skip()
	o.destroyCompetitors()
	o.machine.Stop(o)
	o.log.WithField("outcome", o.outcome.String()).Info("match exited")
}

func (o *Orchestrator) destroyCompetitors() {
	for _, c := range o.competitors {
		c.Destroy()
	}
	o.competitors = nil
	o.player = nil
}

// Elapsed is match time since the last countdown step, zero before it and frozen once Active closes
func (o *Orchestrator) Elapsed() time.Duration {
	if !o.matchStarted {
		return 0
	}
	if o.matchEnded {
		return o.matchEnd - o.matchStart
	}
	return o.timers.Now() - o.matchStart
}

// Outcome reports how the scoreboard was left
func (o *Orchestrator) Outcome() Outcome { return o.outcome }

// Phase returns the current phase
func (o *Orchestrator) Phase() fsm.StateID { return o.machine.Current() }

// PhaseName returns the current phase name
func (o *Orchestrator) PhaseName() string { return o.machine.CurrentName() }

// Result returns the snapshot taken on entering Ending
func (o *Orchestrator) Result() scoreboard.Result { return o.result }

// Competitors returns the live controllers, player first
func (o *Orchestrator) Competitors() []*competitor.Controller { return o.competitors }

// Scene exposes the match scene
func (o *Orchestrator) Scene() *scene.Scene { return o.scene }

// Rig exposes the camera rig
func (o *Orchestrator) Rig() *camera.Rig { return o.rig }

// ID identifies this match instance
func (o *Orchestrator) ID() uuid.UUID { return o.id }

// Options returns the options the match was built with
func (o *Orchestrator) Options() Options { return o.opts }

// End guards record which condition closed Active
func (o *Orchestrator) allFinished() bool {
	done := len(o.competitors) > 0 && lo.EveryBy(o.competitors, func(c *competitor.Controller) bool {
		return c.Finished()
	})
	return o.endWhen(done, event.EventAllFinished)
}

func (o *Orchestrator) timedOut() bool {
	return o.endWhen(o.matchStarted && o.Elapsed() >= o.tier.Timeout(), event.EventTimeout)
}

func (o *Orchestrator) playableLost() bool {
	return o.endWhen(o.revealed && !o.deps.Source.Playable(), event.EventPlayableLost)
}

func (o *Orchestrator) endWhen(cond bool, reason event.EventType) bool {
	if cond {
		o.endReason = reason
	}
	return cond
}

// EndReason is EventAllFinished, EventTimeout or EventPlayableLost once Active closed
func (o *Orchestrator) EndReason() event.EventType { return o.endReason }

func (o *Orchestrator) onTransition(from, to fsm.StateID) {
	o.log.WithFields(logrus.Fields{
		"from":  o.machine.Name(from),
		"phase": o.machine.Name(to),
	}).Debug("phase transition")
}
