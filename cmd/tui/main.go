// Command tui plays the game in a terminal.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/akorn123w/FishingInTheVoid/config"
	"github.com/akorn123w/FishingInTheVoid/game"
	"github.com/akorn123w/FishingInTheVoid/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logFile := flag.String("log", "", "Write JSON logs to this file (the terminal is taken)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.DiscardHandler)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			slog.Error("failed to open log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewJSONHandler(f, nil)).With("session", telemetry.NewSessionID())
	}
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	g, err := game.NewGame(config.Cfg(), game.Options{Seed: rngSeed, Logger: logger})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init screen", "error", err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(screen, g)
}

// run owns g: key events arrive on a channel so only this goroutine
// touches the game.
func run(screen tcell.Screen, g *game.Game) {
	view := NewView(screen)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !apply(g, actionFor(ev), time.Now()) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			g.Update(now)
			view.Draw(g.Snapshot(now))
		}
	}
}
