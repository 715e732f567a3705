package match

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/ringside/competitor"
	"github.com/lixenwraith/ringside/config"
	"github.com/lixenwraith/ringside/engine/fsm"
	"github.com/lixenwraith/ringside/event"
	"github.com/lixenwraith/ringside/parameter"
	"github.com/lixenwraith/ringside/scoreboard"
)

// Match phases; one is active at a time and they only move forward
const (
	StateSetup fsm.StateID = iota + 1
	StatePlacing
	StateAwaitingReady
	StateCountdown
	StateActive
	StateEnding
	StateScoreboardShown
	StateReplayed
	StateContinued
)

func buildMachine() *fsm.Machine[*Orchestrator] {
	m := fsm.NewMachine[*Orchestrator]()

	setup := m.AddState(StateSetup, "Setup", fsm.StateNone)
	setup.OnEnter = append(setup.OnEnter, (*Orchestrator).enterSetup)
	m.AddState(StatePlacing, "Placing", fsm.StateNone)

	awaiting := m.AddState(StateAwaitingReady, "AwaitingReady", fsm.StateNone)
	awaiting.OnEnter = append(awaiting.OnEnter, (*Orchestrator).enterAwaitingReady)
	awaiting.OnUpdate = append(awaiting.OnUpdate, (*Orchestrator).updateAwaitingReady)

	countdown := m.AddState(StateCountdown, "Countdown", fsm.StateNone)
	countdown.OnEnter = append(countdown.OnEnter, (*Orchestrator).enterCountdown)
	countdown.OnUpdate = append(countdown.OnUpdate, (*Orchestrator).settleCompetitors)

	active := m.AddState(StateActive, "Active", fsm.StateNone)
	active.OnUpdate = append(active.OnUpdate, (*Orchestrator).updateActive)

	ending := m.AddState(StateEnding, "Ending", fsm.StateNone)
	ending.OnEnter = append(ending.OnEnter, (*Orchestrator).enterEnding)

	board := m.AddState(StateScoreboardShown, "ScoreboardShown", fsm.StateNone)
	board.OnEnter = append(board.OnEnter, (*Orchestrator).enterScoreboard)

	replayed := m.AddState(StateReplayed, "Replayed", fsm.StateNone)
	replayed.OnEnter = append(replayed.OnEnter, func(o *Orchestrator) { o.outcome = OutcomeReplay })
	continued := m.AddState(StateContinued, "Continued", fsm.StateNone)
	continued.OnEnter = append(continued.OnEnter, func(o *Orchestrator) { o.outcome = OutcomeContinue })

	hasRoster := func(o *Orchestrator) bool { return len(o.competitors) > 0 && o.player != nil }

	m.On(StateSetup, event.EventEnvironmentReady, StatePlacing, nil)
	m.On(StatePlacing, event.EventCompetitorsPlaced, StateAwaitingReady, hasRoster)
	m.On(StateAwaitingReady, event.EventReadyClicked, StateCountdown, func(o *Orchestrator) bool { return o.readyShown })
	m.On(StateAwaitingReady, event.EventSkipClicked, StateCountdown, nil)
	m.On(StateCountdown, event.EventCountdownDone, StateActive, hasRoster)

	// Tick transitions out of Active, in priority order
	m.AddTransition(StateActive, fsm.Transition[*Orchestrator]{TargetID: StateEnding, Guard: (*Orchestrator).allFinished})
	m.AddTransition(StateActive, fsm.Transition[*Orchestrator]{TargetID: StateEnding, Guard: (*Orchestrator).timedOut})
	m.AddTransition(StateActive, fsm.Transition[*Orchestrator]{TargetID: StateEnding, Guard: (*Orchestrator).playableLost})

	m.On(StateEnding, event.EventShowScoreboard, StateScoreboardShown, nil)
	m.On(StateScoreboardShown, event.EventReplayClicked, StateReplayed, func(o *Orchestrator) bool { return o.resultsShown })
	m.On(StateScoreboardShown, event.EventContinueClicked, StateContinued, func(o *Orchestrator) bool { return o.resultsShown })

	return m
}

// dispatch handles queued events; anything not handled here is offered to the machine
func (o *Orchestrator) dispatch(ev event.GameEvent) {
	switch ev.Type {
	case event.EventHelpClosed:
		o.deps.UI.HidePanel(PanelHelp)

	case event.EventCountdownStep:
		step, _ := ev.Payload.(int)
		o.countdownStep(step, ev.At)

	case event.EventCountdownHide:
		step, _ := ev.Payload.(int)
		o.deps.UI.HidePanel(CountdownPanel(step))

	case event.EventReveal:
		o.reveal()

	case event.EventShowResults:
		if o.machine.IsIn(StateScoreboardShown) && !o.resultsShown {
			o.resultsShown = true
			o.deps.UI.HidePanel(PanelFinish)
			o.deps.UI.ShowPanel(PanelResults)
		}

	default:
		if !o.machine.HandleEvent(o, ev.Type) {
			o.log.WithFields(logrus.Fields{"event": ev.Type.String(), "phase": o.machine.CurrentName()}).Debug("event ignored")
		}
	}
}

func (o *Orchestrator) enterSetup() {
	o.deps.UI.ShowPanel(PanelLoading)
}

func (o *Orchestrator) enterAwaitingReady() {
	o.deps.UI.HidePanel(PanelLoading)
	o.deps.UI.ShowPanel(PanelHelp)
	o.deps.UI.ShowPanel(PanelActions)
	o.deps.UI.ShowPanel(PanelSkip)
	o.seq.Play(o.path)
}

func (o *Orchestrator) updateAwaitingReady() {
	o.seq.Update(o.dt)
	o.settleCompetitors()

	if o.readyShown {
		return
	}
	select {
	case <-o.seq.Done():
		o.readyShown = true
		o.deps.UI.HidePanel(PanelHelp)
		o.deps.UI.HidePanel(PanelSkip)
		o.deps.UI.ShowPanel(PanelReady)
	default:
	}
}

func (o *Orchestrator) settleCompetitors() {
	for _, c := range o.competitors {
		c.Settle()
	}
}

// enterCountdown starts the countdown exactly once per match
func (o *Orchestrator) enterCountdown() {
	if o.countdownStarted {
		panic("match: countdown re-entered")
	}
	o.countdownStarted = true

	o.deps.UI.HidePanel(PanelHelp)
	o.deps.UI.HidePanel(PanelSkip)
	o.deps.UI.HidePanel(PanelReady)
	if o.seq.Skip() {
		o.log.Debug("camera sequence skipped")
	}
	pos, rot := o.path.Final()
	o.rig.Position, o.rig.Rotation = pos, rot
	if o.player != nil {
		o.rig.Target = o.player.Name()
	}
	o.deps.UI.ShowPanel(PanelScore)

	o.timers.Every(parameter.CountdownInterval, parameter.CountdownSteps, event.EventCountdownStep)
	o.revealTimer = o.timers.After(parameter.RevealDelay, event.GameEvent{Type: event.EventReveal})
}

func (o *Orchestrator) countdownStep(step int, at time.Duration) {
	if !o.machine.IsIn(StateCountdown) {
		return
	}
	if o.countdownPrev >= 0 {
		o.deps.UI.HidePanel(CountdownPanel(o.countdownPrev))
	}
	o.deps.UI.ShowPanel(CountdownPanel(step))
	o.countdownPrev = step
	o.cues.Countdown(step)

	if step < parameter.CountdownSteps-1 {
		return
	}
	o.timers.After(parameter.CountdownLastStepHide, event.GameEvent{Type: event.EventCountdownHide, Payload: step})
	o.matchStart = at
	o.matchStarted = true
	o.log.Info("match started")
	o.machine.HandleEvent(o, event.EventCountdownDone)
}

func (o *Orchestrator) reveal() {
	if !o.machine.IsIn(StateActive) || o.revealed {
		return
	}
	o.revealed = true
	o.deps.UI.ShowPanel(PanelGame)
	o.deps.Sink.PlayableChanged(true)
	o.cues.Fight()
}

func (o *Orchestrator) updateActive() {
	for _, c := range o.competitors {
		c.Update(o.dt)
	}
}

func (o *Orchestrator) onCompetitorFinish(c *competitor.Controller) {
	o.finishedCount++
	o.cues.Finish()
	if o.tier.Scoring == config.ScoringTime {
		o.board.Set(c.Name(), c.State().FinishTime.Seconds())
	}
}

// enterEnding snapshots the result
func (o *Orchestrator) enterEnding() {
	o.matchEnd = o.timers.Now()
	o.matchEnded = true
	o.timers.Cancel(o.revealTimer)
	if o.revealed && o.deps.Source.Playable() {
		o.deps.Sink.PlayableChanged(false)
	}

	o.score = o.deps.Source.Score()
	if o.tier.Scoring == config.ScoringPoints {
		o.board.Set(o.playerName, float64(o.score))
	}
	o.result = o.board.Result()
	o.deps.Sink.ResultsChanged(o.result)

	o.log.WithFields(logrus.Fields{
		"reason":   o.endReason.String(),
		"elapsed":  o.Elapsed(),
		"finished": o.finishedCount,
		"score":    o.score,
	}).Info("match ended")
	o.timers.After(parameter.ScoreboardDelay, event.GameEvent{Type: event.EventShowScoreboard})
}

func (o *Orchestrator) enterScoreboard() {
	o.deps.UI.HidePanel(PanelGame)
	o.deps.UI.ShowPanel(PanelFinish)

	best, err := o.deps.Pipeline.PersonalBest(o.ctx, o.playerName, o.score)
	switch {
	case errors.Is(err, scoreboard.ErrNoRecords):
	case err != nil:
		o.log.WithError(err).Warn("personal best unavailable")
	default:
		o.deps.Sink.PersonalBestChanged(best)
		if best.New {
			o.log.WithField("score", best.Score).Info("new personal best")
		}
	}

	tier, err := o.deps.Pipeline.Finalize(o.ctx, scoreboard.Summary{
		Result:     o.result,
		PlayerName: o.playerName,
		Tier:       o.opts.Tier,
		Score:      o.score,
	})
	if err != nil {
		o.log.WithError(err).Warn("finalize failed")
	} else {
		o.log.WithField("unlocked", tier.String()).Debug("progression checked")
	}

	o.timers.After(parameter.ResultsRevealDelay, event.GameEvent{Type: event.EventShowResults})
}

var _ competitor.Clock = (*Orchestrator)(nil)
