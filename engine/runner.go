// Package engine drives a match Mode on a fixed frame interval.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/ringside/match"
	"github.com/lixenwraith/ringside/parameter"
	"github.com/lixenwraith/ringside/status"
)

// ErrNotStarted is returned by Step before Start succeeded
var ErrNotStarted = errors.New("engine: runner not started")

// Factory builds a fresh Mode for every match instance
type Factory func(opts match.Options) (match.Mode, error)

// RunnerConfig wires a Runner
type RunnerConfig struct {
	Factory  Factory
	Options  match.Options
	Interval time.Duration
	Clock    Clock
	// BeforeFrame runs on the frame goroutine ahead of the mode update
	BeforeFrame func(dt time.Duration)
	// AfterFrame runs once the mode has updated, typically a redraw
	AfterFrame func()
	Status     *status.Registry
	Logger     logrus.FieldLogger
}

// Runner owns the current Mode and the frame clock
// A Replay outcome rebuilds the mode with the same options, Continue ends the run
type Runner struct {
	cfg  RunnerConfig
	log  logrus.FieldLogger
	mode match.Mode
	ctx  context.Context

	lastFrame time.Time
	matches   int

	stop     chan struct{}
	stopOnce sync.Once

	statFrames  *atomic.Int64
	statMatches *atomic.Int64
}

// NewRunner validates cfg and applies defaults
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Factory == nil {
		return nil, errors.New("engine: factory required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = parameter.FrameUpdateInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Runner{
		cfg:         cfg,
		log:         log.WithField("component", "runner"),
		stop:        make(chan struct{}),
		statFrames:  cfg.Status.Ints.Get("engine.frames"),
		statMatches: cfg.Status.Ints.Get("engine.matches"),
	}, nil
}

// Start builds and enters the first mode
func (r *Runner) Start(ctx context.Context) error {
	r.ctx = ctx
	return r.begin()
}

func (r *Runner) begin() error {
	mode, err := r.cfg.Factory(r.cfg.Options)
	if err != nil {
		return fmt.Errorf("build mode: %w", err)
	}
	if err := mode.Enter(r.ctx); err != nil {
		mode.Exit()
		return err
	}
	r.mode = mode
	r.matches++
	r.statMatches.Store(int64(r.matches))
	r.lastFrame = r.cfg.Clock.Now()
	r.log.WithField("match", r.matches).Info("match entered")
	return nil
}

// Step advances one frame by dt and reports whether the run is over
func (r *Runner) Step(dt time.Duration) (bool, error) {
	if r.mode == nil {
		return true, ErrNotStarted
	}
	if r.cfg.BeforeFrame != nil {
		r.cfg.BeforeFrame(dt)
	}
	r.mode.Update(dt)
	r.statFrames.Add(1)
	if r.cfg.AfterFrame != nil {
		r.cfg.AfterFrame()
	}

	switch r.mode.Outcome() {
	case match.OutcomeReplay:
		r.mode.Exit()
		r.mode = nil
		r.log.Info("replay requested")
		if err := r.begin(); err != nil {
			return true, err
		}
		return false, nil
	case match.OutcomeContinue:
		r.finish()
		return true, nil
	}
	return false, nil
}

// Run drives frames on a ticker until the mode continues, ctx ends or Stop is called
func (r *Runner) Run(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	defer r.finish()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.stop:
			return nil
		case <-ticker.C:
			now := r.cfg.Clock.Now()
			dt := now.Sub(r.lastFrame)
			r.lastFrame = now

			done, err := r.Step(dt)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// Stop ends Run from any goroutine; safe to call more than once
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Runner) finish() {
	if r.mode == nil {
		return
	}
	r.mode.Exit()
	r.mode = nil
	r.log.WithField("matches", r.matches).Info("run finished")
}

// Matches returns how many match instances were entered
func (r *Runner) Matches() int { return r.matches }

// Mode returns the live mode, nil once finished
func (r *Runner) Mode() match.Mode { return r.mode }
