package terminal

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/ringside/parameter"
)

// App owns the tcell screen and pumps its events into a Presenter
type App struct {
	screen    tcell.Screen
	presenter *Presenter
	log       logrus.FieldLogger
	status    func() []string
	closeOnce sync.Once
}

// NewScreen opens and initializes the terminal screen
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// NewApp binds an initialized screen to p; status may be nil
func NewApp(screen tcell.Screen, p *Presenter, status func() []string, log logrus.FieldLogger) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &App{screen: screen, presenter: p, status: status, log: log.WithField("component", "terminal")}
}

// Listen polls input until ctx ends or the user quits, then calls quit once
func (a *App) Listen(ctx context.Context, quit func()) {
	events := make(chan tcell.Event, parameter.InputEventBuffer)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !a.handle(ev) {
				a.log.Info("quit requested")
				quit()
				return
			}
		}
	}
}

func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.presenter.HandleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Draw renders the presenter's current view
func (a *App) Draw() {
	var lines []string
	if a.status != nil {
		lines = a.status()
	}
	Render(a.screen, a.presenter.View(), lines)
}

// Close restores the terminal; safe to call more than once
func (a *App) Close() {
	a.closeOnce.Do(a.screen.Fini)
}
