// Package desktop is the raylib host shell: it owns the window, turns mouse
// and keyboard input into game calls and draws the game's read-only views.
package desktop

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/audio"
	"github.com/akorn123w/FishingInTheVoid/config"
	"github.com/akorn123w/FishingInTheVoid/devtools"
	"github.com/akorn123w/FishingInTheVoid/game"
	"github.com/akorn123w/FishingInTheVoid/renderer"
	"github.com/akorn123w/FishingInTheVoid/systems"
	"github.com/akorn123w/FishingInTheVoid/ui"
	"github.com/akorn123w/FishingInTheVoid/version"
)

const (
	title         = "Fishing in the Void"
	publishEvery  = 250 * time.Millisecond
	squidSizePct  = 28
	storeWidth    = 280
	controlsWidth = 220
)

// Options configures the desktop shell. Everything is optional.
type Options struct {
	Dev       bool             // Enables keyboard dev shortcuts
	DevServer *devtools.Server // Commands are drained each frame
	Sounds    *audio.SoundManager
	Version   *version.Result // A blocking modal is shown when Outdated
	Logger    *slog.Logger
}

// App runs the window loop for one game.
type App struct {
	cfg  *config.Config
	game *game.Game
	log  *slog.Logger
	opts Options

	space     renderer.Space
	bg        *renderer.BackgroundRenderer
	ambient   *renderer.AmbientRenderer
	colony    *renderer.ColonyRenderer
	squid     *renderer.SquidRenderer
	food      *renderer.FoodRenderer
	particles *renderer.ParticleRenderer

	overlays *ui.OverlayRegistry
	hud      *ui.HUD
	store    *ui.StorePanel
	controls *ui.ControlsPanel
	perf     *ui.PerfPanel
	modal    *ui.OutdatedModal
	registry *systems.SystemRegistry

	rate        *clickRate
	start       time.Time
	lastPublish time.Time
	quit        bool
}

// New creates the shell. The window is opened by Run.
func New(cfg *config.Config, g *game.Game, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	a := &App{
		cfg:       cfg,
		game:      g,
		log:       logger,
		opts:      opts,
		space:     renderer.NewSpace(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),
		bg:        renderer.NewBackgroundRenderer(w, h, 6, 10, 22),
		ambient:   renderer.NewAmbientRenderer(),
		colony:    renderer.NewColonyRenderer(),
		squid:     renderer.NewSquidRenderer(),
		food:      renderer.NewFoodRenderer(),
		particles: renderer.NewParticleRenderer(),
		overlays:  ui.NewOverlayRegistry(),
		hud:       ui.NewHUD(),
		store:     ui.NewStorePanel(storeWidth),
		controls:  ui.NewControlsPanel(10, 0, controlsWidth),
		perf:      ui.NewPerfPanel(10, 0),
		registry:  systems.NewSystemRegistry(),
		rate:      newClickRate(time.Second),
	}
	a.controls.Dev = opts.Dev
	if opts.Version != nil && opts.Version.Outdated {
		a.modal = ui.NewOutdatedModal(*opts.Version)
	}
	return a
}

// Run opens the window and loops until it is closed, Close is pressed on
// the version modal or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	var flags uint32 = rl.FlagMsaa4xHint | rl.FlagWindowResizable
	if a.cfg.Screen.Borderless {
		flags |= rl.FlagWindowUndecorated
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(a.cfg.Screen.Width), int32(a.cfg.Screen.Height), title)
	defer rl.CloseWindow()

	if a.cfg.Screen.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(int32(a.cfg.Screen.TargetFPS))
	// Esc must not bypass the version modal's Close
	rl.SetExitKey(0)

	a.bg.Init()
	defer a.bg.Unload()

	a.start = time.Now()
	a.log.Info("window opened",
		"width", a.cfg.Screen.Width,
		"height", a.cfg.Screen.Height,
		"borderless", a.cfg.Screen.Borderless,
		"blocked", a.modal != nil,
	)

	for !rl.WindowShouldClose() && !a.quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.frame(time.Now())
	}
	return nil
}

func (a *App) frame(now time.Time) {
	a.handleResize()

	if a.modal == nil {
		a.handleInput(now)
		if a.opts.DevServer != nil {
			a.opts.DevServer.Drain(a.game, now)
		}
		a.onEvents(a.game.Update(now))
		a.publish(now)
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	a.draw(now)
	rl.EndDrawing()

	a.game.Perf().RecordFrame()
}

func (a *App) handleResize() {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	if w == a.space.W && h == a.space.H {
		return
	}
	a.space = renderer.NewSpace(w, h)
	a.bg.Resize(int32(w), int32(h))
}

func (a *App) publish(now time.Time) {
	if a.opts.DevServer == nil || now.Sub(a.lastPublish) < publishEvery {
		return
	}
	a.lastPublish = now
	a.opts.DevServer.Publish(a.game.Snapshot(now))
}

func (a *App) onEvents(events []game.Event) {
	for _, ev := range events {
		if ev.Kind == game.EventClick {
			a.rate.Add(ev.At)
		}
		if a.opts.Sounds != nil {
			if name, ok := SoundFor(ev); ok {
				a.opts.Sounds.Play(name)
			}
		}
	}
}
