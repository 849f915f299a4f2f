package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/akorn123w/FishingInTheVoid/audio"
	"github.com/akorn123w/FishingInTheVoid/config"
	"github.com/akorn123w/FishingInTheVoid/desktop"
	"github.com/akorn123w/FishingInTheVoid/devtools"
	"github.com/akorn123w/FishingInTheVoid/game"
	"github.com/akorn123w/FishingInTheVoid/telemetry"
	"github.com/akorn123w/FishingInTheVoid/version"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run the scripted player without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats windows via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxSeconds := flag.Float64("max-seconds", 1800, "Headless: stop after this much simulated time")
	cps := flag.Float64("cps", 8, "Headless: scripted clicks per second")
	dev := flag.Bool("dev", false, "Enable developer shortcuts")
	devAddr := flag.String("dev-addr", "", "Serve the dev endpoint on this address (empty = config)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	session := telemetry.NewSessionID()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("session", session)
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "dir", *outputDir, "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g, err := game.NewGame(cfg, game.Options{
		Seed:      rngSeed,
		Collector: telemetry.NewCollector(cfg.Derived.StatsWindow, session),
		Output:    output,
		LogStats:  *logStats,
		Logger:    logger,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	if *headless {
		runHeadless(g, rngSeed, *cps, time.Duration(*maxSeconds*float64(time.Second)))
	} else {
		runDesktop(cfg, g, *dev, *devAddr)
	}

	if err := output.WriteRecords(g.Records()); err != nil {
		slog.Error("failed to write records", "error", err)
	}
	if err := output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

func runHeadless(g *game.Game, seed int64, cps float64, limit time.Duration) {
	slog.Info("starting headless session", "seed", seed, "cps", cps, "limit", limit)

	res := game.Simulate(g, game.NewAutoplayer(cps, true), time.Now(), 50*time.Millisecond, limit)

	attrs := []any{
		"elapsed", res.Elapsed,
		"reached", res.Reached.String(),
		"clicks", res.Clicks,
		"purchases", res.Purchases,
		"food_eaten", res.FoodEaten,
	}
	for stage, at := range res.StageTimes {
		attrs = append(attrs, "at_"+stage.String(), at.Seconds())
	}
	slog.Info("headless session finished", attrs...)
}

func runDesktop(cfg *config.Config, g *game.Game, dev bool, devAddr string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := desktop.Options{Dev: dev || cfg.DevTools.Enabled}

	if cfg.Version.Enabled {
		checkCtx, cancel := context.WithTimeout(ctx, cfg.Derived.VersionTimeout)
		checker := &version.Checker{
			Local:   version.Current,
			Fetcher: version.NewHTTPFetcher(cfg.Version.URL, cfg.Version.AnonKey, cfg.Derived.VersionTimeout),
		}
		res := checker.Check(checkCtx)
		cancel()
		opts.Version = &res
	}

	if cfg.Audio.Enabled {
		sounds := audio.NewSoundManager(cfg.Audio)
		if err := sounds.Initialize(); err != nil {
			slog.Warn("audio disabled", "error", err)
		} else {
			sounds.LoadAll(cfg.Audio.Sounds)
			defer sounds.Cleanup()
			opts.Sounds = sounds
		}
	}

	addr := devAddr
	if addr == "" && cfg.DevTools.Enabled {
		addr = cfg.DevTools.Addr
	}
	if addr != "" {
		srv := devtools.NewServer(addr)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("dev server shutdown", "error", err)
			}
		}()
		opts.DevServer = srv
	}

	if err := desktop.New(cfg, g, opts).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("desktop shell stopped", "error", err)
	}
}
