package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/ringside/config"
	"github.com/lixenwraith/ringside/parameter"
)

var ErrNoRecords = errors.New("scoreboard: no record service")

// RecordService accepts finished match scores and reports a player's best
type RecordService interface {
	Submit(ctx context.Context, mode string, score int, playerName string) error
	Best(ctx context.Context, mode, playerName string) (int, bool, error)
}

// Best compares a finished score with the player's stored record
type Best struct {
	Score    int  // Higher of the stored record and the new score
	Previous int  // Stored record before this match
	Known    bool // A record existed before this match
	New      bool // The new score beats the stored record, or there was none
}

// Summary is what a finished match hands to the pipeline
type Summary struct {
	Result     Result
	PlayerName string
	Tier       config.Tier
	Score      int
}

// Pipeline persists results and advances progression
type Pipeline struct {
	records     RecordService
	progression *Progression
	settings    *config.Settings
	log         logrus.FieldLogger
	timeout     time.Duration

	wg sync.WaitGroup
}

func NewPipeline(records RecordService, progression *Progression, settings *config.Settings, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		records:     records,
		progression: progression,
		settings:    settings,
		log:         log,
		timeout:     parameter.PersistTimeout,
	}
}

// InitProgression seeds the starting tier for a profile that has none
func (p *Pipeline) InitProgression(ctx context.Context) error {
	return p.progression.Init(ctx)
}

// Finalize starts the record write in the background and updates progression locally
// A failed record write is logged and reported, never returned
func (p *Pipeline) Finalize(ctx context.Context, s Summary) (config.Tier, error) {
	log := p.log.WithFields(logrus.Fields{
		"tier":   s.Tier.String(),
		"player": s.PlayerName,
		"score":  s.Score,
	})

	p.submit(ctx, s, log)

	ts, ok := p.settings.Tier(s.Tier)
	if !ok {
		return s.Tier, fmt.Errorf("finalize: tier %s not configured", s.Tier)
	}
	tier, advanced, err := p.progression.Advance(ctx, s.Tier, s.Score, ts.PointsToSucceed)
	if err != nil {
		log.WithError(err).Error("progression update failed")
		return tier, err
	}
	if advanced {
		log.WithField("unlocked", tier.String()).Info("tier unlocked")
	}
	return tier, nil
}

// PersonalBest reads the stored record for playerName and ranks score against it
// Call before Finalize: the record written by Finalize would otherwise count
func (p *Pipeline) PersonalBest(ctx context.Context, playerName string, score int) (Best, error) {
	if p.records == nil {
		return Best{}, ErrNoRecords
	}
	readCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prev, known, err := p.records.Best(readCtx, p.settings.Mode, playerName)
	if err != nil {
		return Best{}, fmt.Errorf("read best: %w", err)
	}
	b := Best{Score: score, Previous: prev, Known: known, New: !known || score > prev}
	if known && prev > score {
		b.Score = prev
	}
	return b, nil
}

func (p *Pipeline) submit(ctx context.Context, s Summary, log logrus.FieldLogger) {
	if p.records == nil {
		return
	}
	mode := p.settings.Mode
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		defer sentry.Recover()

		if err := p.records.Submit(writeCtx, mode, s.Score, s.PlayerName); err != nil {
			log.WithError(err).Warn("record submit failed")
			sentry.CaptureException(err)
			return
		}
		log.Debug("record submitted")
	}()
}

// Flush waits for background writes
func (p *Pipeline) Flush() {
	p.wg.Wait()
}
