package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/ringside/audio"
	"github.com/lixenwraith/ringside/config"
	"github.com/lixenwraith/ringside/engine"
	"github.com/lixenwraith/ringside/match"
	"github.com/lixenwraith/ringside/parameter"
	"github.com/lixenwraith/ringside/scene"
	"github.com/lixenwraith/ringside/scoreboard"
	"github.com/lixenwraith/ringside/status"
	"github.com/lixenwraith/ringside/store"
	"github.com/lixenwraith/ringside/terminal"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		config.Exitf("ringside: %v", err)
	}

	if logFile := setupLogging(env.Debug, env.LogLevel); logFile != nil {
		defer logFile.Close()
	}
	log := logrus.WithField("app", "ringside")

	if env.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: env.SentryDSN}); err != nil {
			log.WithError(err).Warn("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if err := run(env, log); err != nil {
		log.WithError(err).Error("run failed")
		config.Exitf("ringside: %v", err)
	}
}

func run(env config.Env, log logrus.FieldLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := config.LoadSettings(env.SettingsFile)
	if err != nil {
		return err
	}
	kind, err := match.ParseKind(env.Mode)
	if err != nil {
		return err
	}

	db, err := store.Open(env.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	progression := scoreboard.NewProgression(db, settings.ProgressionKey)
	pipeline := scoreboard.NewPipeline(db, progression, settings, log)
	defer pipeline.Flush()
	if err := pipeline.InitProgression(ctx); err != nil {
		return err
	}
	tier, err := selectTier(ctx, env, progression)
	if err != nil {
		return err
	}

	catalog := demoCatalog(ctx, settings, db)

	cues := match.Cues(audio.Nop{})
	if env.Audio {
		player := audio.NewPlayer(1, log)
		if err := player.Start(); err == nil {
			defer player.Close()
			cues = player
		}
	}

	screen, err := terminal.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	reg := status.NewRegistry()
	presenter := terminal.NewPresenter()
	var statusLines func() []string
	if env.Debug {
		statusLines = reg.Lines
	}
	app := terminal.NewApp(screen, presenter, statusLines, log)
	defer app.Close()

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			app.Close()
			sentry.CurrentHub().Recover(r)
			fmt.Fprintf(os.Stderr, "\nRINGSIDE CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	deps := match.Deps{
		Settings:    settings,
		UI:          presenter,
		Sink:        presenter,
		Source:      presenter,
		Environment: match.ArenaEnvironment{Arena: settings.Arena},
		Importer:    catalog,
		Profile:     db,
		Pipeline:    pipeline,
		Intents:     presenter.Intents(),
		Cues:        cues,
		Status:      reg,
		Logger:      log,
	}

	runner, err := engine.NewRunner(engine.RunnerConfig{
		Factory: func(opts match.Options) (match.Mode, error) {
			return match.New(kind, deps, opts)
		},
		Options:     match.Options{Tier: tier, Multiplayer: env.Multiplayer},
		Interval:    time.Second / time.Duration(env.FPS),
		BeforeFrame: presenter.Tick,
		AfterFrame:  app.Draw,
		Status:      reg,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	go app.Listen(ctx, runner.Stop)

	log.WithFields(logrus.Fields{"tier": tier.String(), "mode": kind.String()}).Info("starting")
	return runner.Run(ctx)
}

// selectTier prefers an explicit RINGSIDE_TIER over stored progression
func selectTier(ctx context.Context, env config.Env, progression *scoreboard.Progression) (config.Tier, error) {
	if env.Tier != "" {
		return config.ParseTier(env.Tier)
	}
	return progression.Load(ctx)
}

// demoCatalog registers the bundled character models and every roster asset
func demoCatalog(ctx context.Context, settings *config.Settings, profile scoreboard.KV) *scene.Catalog {
	catalog := scene.NewCatalog()
	catalog.Register(parameter.CharacterAssetDir+settings.DefaultCharacter, "Anim|idleBoxe", "Anim|runBoxe")
	if character, ok, err := profile.Get(ctx, parameter.ProfileKeyCharacter); err == nil && ok && character != "" {
		catalog.Register(parameter.CharacterAssetDir+character, "Anim|idleBoxe", "Anim|runBoxe")
	}
	for _, ts := range settings.Tiers {
		for _, e := range ts.Roster {
			catalog.Register(e.Asset, "Anim|boxIdle", "Anim|boxRun")
		}
	}
	return catalog
}
