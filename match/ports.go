package match

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/ringside/config"
	"github.com/lixenwraith/ringside/scene"
	"github.com/lixenwraith/ringside/scoreboard"
)

// PanelID names a presentation panel
type PanelID string

const (
	PanelLoading PanelID = "loading"
	PanelHelp    PanelID = "help"
	PanelActions PanelID = "actions"
	PanelSkip    PanelID = "skip"
	PanelReady   PanelID = "ready"
	PanelScore   PanelID = "score"
	PanelGame    PanelID = "game"
	PanelFinish  PanelID = "finish"
	PanelResults PanelID = "results"
)

// CountdownPanel names the panel for a zero-based countdown step
func CountdownPanel(step int) PanelID {
	return PanelID(fmt.Sprintf("countdown-%d", step+1))
}

// ControlID names a clickable control
type ControlID string

const (
	ControlReady     ControlID = "ready"
	ControlSkip      ControlID = "skip"
	ControlCloseHelp ControlID = "close-help"
	ControlReplay    ControlID = "replay"
	ControlContinue  ControlID = "continue"
)

// UI shows and hides panels and reports clicks
// Click handlers may run on any goroutine
type UI interface {
	ShowPanel(id PanelID)
	HidePanel(id PanelID)
	OnClick(id ControlID, handler func())
}

// StateSink receives discrete state changes for the presentation layer
type StateSink interface {
	ScoreChanged(score int)
	PlayableChanged(playable bool)
	ResultsChanged(result scoreboard.Result)
	TimerReset()
	TimeoutChanged(timeout time.Duration)
	PersonalBestChanged(best scoreboard.Best)
}

// StateSource is read back at phase boundaries and once per Active frame
type StateSource interface {
	Score() int
	Playable() bool
}

// Environment loads level geometry into a scene
type Environment interface {
	Load(ctx context.Context, sc *scene.Scene) error
}

// Cues plays match audio cues
type Cues interface {
	Countdown(step int)
	Fight()
	Finish()
}

// Finalizer persists a finished match and returns the progression tier afterwards
// PersonalBest must be read before Finalize writes the new record
type Finalizer interface {
	PersonalBest(ctx context.Context, playerName string, score int) (scoreboard.Best, error)
	Finalize(ctx context.Context, s scoreboard.Summary) (config.Tier, error)
}

type nopCues struct{}

func (nopCues) Countdown(int) {}
func (nopCues) Fight()        {}
func (nopCues) Finish()       {}
