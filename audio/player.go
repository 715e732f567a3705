package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/ringside/parameter"
)

// Player mixes match cues onto the speaker
// A player whose speaker failed to open stays silent instead of failing the match
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	volume  float64
	log     logrus.FieldLogger
	started bool

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewPlayer creates a stopped player; volume is linear in [0, 1]
func NewPlayer(volume float64, log logrus.FieldLogger) *Player {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Player{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		mixer:  &beep.Mixer{},
		volume: max(0, min(1, volume)),
		log:    log.WithField("component", "audio"),
	}
}

// Start opens the speaker and attaches the mixer
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		p.log.WithError(err).Warn("speaker unavailable, cues muted")
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close clears pending cues and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}

func (p *Player) Countdown(step int) { p.play(CountdownCue(step, p.rate, p.volume)) }
func (p *Player) Fight()             { p.play(FightCue(p.rate, p.volume)) }
func (p *Player) Finish()            { p.play(FinishCue(p.rate, p.volume)) }

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.dropped.Add(1)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played.Add(1)
}

// Stats returns played and dropped cue counts
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

// Nop is a silent cue sink
type Nop struct{}

func (Nop) Countdown(int) {}
func (Nop) Fight()        {}
func (Nop) Finish()       {}
