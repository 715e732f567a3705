// Package terminal presents a match on a tcell screen.
// Presenter implements the match UI, state sink and state source ports and feeds
// the player's two intents from the keyboard.
package terminal

import (
	"maps"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ringside/competitor"
	"github.com/lixenwraith/ringside/match"
	"github.com/lixenwraith/ringside/parameter"
	"github.com/lixenwraith/ringside/scoreboard"
)

type side uint8

const (
	sideNone side = iota
	sideLeft
	sideRight
)

// Presenter is safe for use from the input goroutine and the frame goroutine
type Presenter struct {
	mu       sync.Mutex
	panels   map[match.PanelID]bool
	handlers map[match.ControlID]func()

	score     int
	playable  bool
	results   scoreboard.Result
	best      *scoreboard.Best
	timeout   time.Duration
	remaining time.Duration

	keys      *competitor.HeldKeys
	held      side
	scored    side
	sinceKey  time.Duration
	keyEvents int
}

// NewPresenter creates a presenter with no visible panels
func NewPresenter() *Presenter {
	return &Presenter{
		panels:   make(map[match.PanelID]bool),
		handlers: make(map[match.ControlID]func()),
		keys:     &competitor.HeldKeys{},
	}
}

// Intents is the player's keyboard-driven input for the match
func (p *Presenter) Intents() competitor.Intents { return p.keys }

func (p *Presenter) ShowPanel(id match.PanelID) {
	p.mu.Lock()
	p.panels[id] = true
	p.mu.Unlock()
}

func (p *Presenter) HidePanel(id match.PanelID) {
	p.mu.Lock()
	delete(p.panels, id)
	p.mu.Unlock()
}

func (p *Presenter) OnClick(id match.ControlID, handler func()) {
	p.mu.Lock()
	p.handlers[id] = handler
	p.mu.Unlock()
}

func (p *Presenter) ScoreChanged(score int) {
	p.mu.Lock()
	p.score = score
	p.scored = sideNone
	p.mu.Unlock()
}

func (p *Presenter) PlayableChanged(playable bool) {
	p.mu.Lock()
	p.playable = playable
	p.mu.Unlock()
}

func (p *Presenter) ResultsChanged(result scoreboard.Result) {
	p.mu.Lock()
	p.results = result
	p.mu.Unlock()
}

// PersonalBestChanged keeps the player's record for the results panel
func (p *Presenter) PersonalBestChanged(best scoreboard.Best) {
	p.mu.Lock()
	p.best = &best
	p.mu.Unlock()
}

func (p *Presenter) TimerReset() {
	p.mu.Lock()
	p.remaining = p.timeout
	p.mu.Unlock()
}

func (p *Presenter) TimeoutChanged(timeout time.Duration) {
	p.mu.Lock()
	p.timeout = timeout
	p.remaining = timeout
	p.mu.Unlock()
}

func (p *Presenter) Score() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.score
}

func (p *Presenter) Playable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playable
}

// Tick runs the presentation timer and releases sides whose key repeats stopped
// The timer only runs while playable and drops playable when it reaches zero
func (p *Presenter) Tick(dt time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playable && p.remaining > 0 {
		p.remaining -= dt
		if p.remaining <= 0 {
			p.remaining = 0
			p.playable = false
		}
	}

	if p.held != sideNone {
		p.sinceKey += dt
		if p.sinceKey > parameter.KeyHoldWindow {
			p.held = sideNone
			p.keys.Release()
		}
	}
}

// HandleKey applies a key press; returns false when the user asked to quit
func (p *Presenter) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		p.click(match.ControlReady)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'f', 'F':
		p.press(sideLeft)
	case 'j', 'J':
		p.press(sideRight)
	case 's':
		p.click(match.ControlSkip)
	case 'h':
		p.click(match.ControlCloseHelp)
	case 'r':
		p.click(match.ControlReplay)
	case 'c':
		p.click(match.ControlContinue)
	}
	return true
}

// press holds one side exclusively; a side change while playable scores a point
func (p *Presenter) press(s side) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keyEvents++
	p.sinceKey = 0
	p.held = s
	p.keys.SetLeft(s == sideLeft)
	p.keys.SetRight(s == sideRight)

	if p.playable && s != p.scored {
		p.scored = s
		p.score++
	}
}

func (p *Presenter) click(id match.ControlID) {
	p.mu.Lock()
	h := p.handlers[id]
	p.mu.Unlock()
	if h != nil {
		h()
	}
}

// View is a consistent copy of what the renderer draws
type View struct {
	Panels    map[match.PanelID]bool
	Score     int
	Playable  bool
	Results   scoreboard.Result
	Best      *scoreboard.Best // nil until a record was read
	Timeout   time.Duration
	Remaining time.Duration
	Keys      int
}

// View snapshots the presenter
func (p *Presenter) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	var best *scoreboard.Best
	if p.best != nil {
		b := *p.best
		best = &b
	}
	return View{
		Panels:    maps.Clone(p.panels),
		Score:     p.score,
		Playable:  p.playable,
		Results:   append(scoreboard.Result(nil), p.results...),
		Best:      best,
		Timeout:   p.timeout,
		Remaining: p.remaining,
		Keys:      p.keyEvents,
	}
}

var (
	_ match.UI          = (*Presenter)(nil)
	_ match.StateSink   = (*Presenter)(nil)
	_ match.StateSource = (*Presenter)(nil)
)
