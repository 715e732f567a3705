package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ringside/match"
	"github.com/lixenwraith/ringside/parameter"
)

var (
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	stylePanel   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleControl = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTimer   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// panelText is the static copy of each panel, drawn top to bottom in this order
var panelText = []struct {
	id    match.PanelID
	text  string
	style tcell.Style
}{
	{match.PanelLoading, "Loading arena...", stylePanel},
	{match.PanelHelp, "Alternate [f] and [j] as fast as you can to reach the far rope. [h] closes help", stylePanel},
	{match.PanelActions, "[f] left   [j] right   [q] quit", styleControl},
	{match.PanelSkip, "[s] skip intro", styleControl},
	{match.PanelReady, "[enter] ready", styleControl},
	{match.PanelGame, "> GO GO GO <", styleBanner},
	{match.PanelFinish, parameter.FinishBanner, styleBanner},
}

// countdownLabel is 3, 2, 1, FIGHT! for a four step countdown
func countdownLabel(step int) string {
	if step >= parameter.CountdownSteps-1 {
		return parameter.CountdownGo
	}
	return fmt.Sprintf("%d", parameter.CountdownSteps-1-step)
}

// Render draws a view and optional status lines onto screen
func Render(screen tcell.Screen, v View, status []string) {
	screen.Clear()
	width, height := screen.Size()

	drawText(screen, 0, 0, styleTitle, parameter.TitleText)
	y := parameter.TopMargin + 1

	line := func(style tcell.Style, s string) {
		if y < height {
			drawText(screen, parameter.LeftMargin, y, style, s)
		}
		y++
	}

	for _, p := range panelText {
		if v.Panels[p.id] {
			line(p.style, p.text)
		}
	}
	for step := 0; step < parameter.CountdownSteps; step++ {
		if v.Panels[match.CountdownPanel(step)] {
			line(styleBanner, countdownLabel(step))
		}
	}

	if v.Panels[match.PanelScore] {
		y++
		line(stylePanel, fmt.Sprintf("Score: %d   Time: %.1fs", v.Score, v.Remaining.Seconds()))
		line(styleTimer, timerBar(v, width-2*parameter.LeftMargin))
	}

	if v.Panels[match.PanelResults] {
		y++
		line(stylePanel, "RESULTS")
		if len(v.Results) == 0 {
			line(stylePanel, "  nobody finished")
		}
		for _, e := range v.Results {
			line(stylePanel, fmt.Sprintf("  %d. %-16s %s", e.Rank, e.Name, e.Value))
		}
		if b := v.Best; b != nil {
			line(stylePanel, fmt.Sprintf("  Personal best: %d", b.Score))
			if b.New {
				line(styleBanner, "  "+parameter.NewRecordBanner)
			}
		}
		line(styleControl, "[r] replay   [c] continue")
	}

	if n := min(len(status), parameter.StatusLines); n > 0 {
		for i, s := range status[:n] {
			drawText(screen, 0, height-n+i, styleStatus, s)
		}
	}

	screen.Show()
}

// timerBar is a remaining-time bar scaled to width cells
func timerBar(v View, width int) string {
	if width <= 0 || v.Timeout <= 0 {
		return ""
	}
	filled := int(float64(width) * v.Remaining.Seconds() / v.Timeout.Seconds())
	filled = max(0, min(width, filled))
	return strings.Repeat(string(parameter.CursorChar), filled)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
