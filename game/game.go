// Package game owns the session state and applies player input, purchases
// and timers to it. It has no rendering dependencies; shells read snapshots.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/akorn123w/FishingInTheVoid/config"
	"github.com/akorn123w/FishingInTheVoid/economy"
	"github.com/akorn123w/FishingInTheVoid/progression"
	"github.com/akorn123w/FishingInTheVoid/store"
	"github.com/akorn123w/FishingInTheVoid/systems"
	"github.com/akorn123w/FishingInTheVoid/telemetry"
)

var (
	ErrClickCooldown = errors.New("click cooldown")
	ErrPaused        = errors.New("game paused")
)

// DevMultiplier is the click multiplier toggled by the developer shortcut.
const DevMultiplier = 100

// State is the single aggregate of everything a session mutates.
type State struct {
	Economy       economy.Economy
	Purchased     store.Purchased
	Colony        *systems.Colony
	Food          *systems.FoodField
	Satiety       *systems.Satiety
	Paused        bool
	DevMultiplier int64
}

// Options configures a new game.
type Options struct {
	Seed    int64
	Catalog *store.Catalog // nil = catalog_path from config, else embedded

	// Telemetry, all optional
	Collector *telemetry.Collector
	Output    *telemetry.OutputManager
	LogStats  bool

	Logger *slog.Logger
}

// Game runs one play session. It is not safe for concurrent use; a single
// loop goroutine calls Click, Purchase and Update.
type Game struct {
	cfg *config.Config
	log *slog.Logger
	rng *rand.Rand

	State

	resolver   *store.Resolver
	tracker    *progression.Tracker
	thresholds progression.Thresholds

	feeder     *systems.Feeder
	expression *systems.ExpressionSystem
	ambient    *systems.AmbientSystem
	effects    *systems.EffectSystem
	autoClick  *systems.AutoClicker

	lastClick time.Time
	now       time.Time
	events    []Event

	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	output        *telemetry.OutputManager
	bookmarks     *telemetry.BookmarkDetector
	records       *telemetry.Records
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewGame creates a session in its initial state.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	catalog := opts.Catalog
	if catalog == nil {
		if cfg.Store.CatalogPath != "" {
			c, err := store.LoadFile(cfg.Store.CatalogPath)
			if err != nil {
				return nil, fmt.Errorf("loading catalog: %w", err)
			}
			catalog = c
		} else {
			catalog = store.Default()
		}
	}

	th := progression.FromConfig(cfg.Progression)
	if err := th.Validate(); err != nil {
		return nil, fmt.Errorf("progression thresholds: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := &Game{
		cfg: cfg,
		log: logger,
		rng: rng,
		State: State{
			Economy:       economy.New(),
			Purchased:     store.Purchased{},
			Colony:        systems.NewColony(cfg.Division, rng),
			Food:          systems.NewFoodField(cfg, rng),
			Satiety:       systems.NewSatiety(cfg.Satiety),
			DevMultiplier: 1,
		},
		resolver:   store.NewResolver(catalog, cfg.Derived.BoostWindow),
		tracker:    progression.NewTracker(th),
		thresholds: th,
		feeder:     systems.NewFeeder(cfg),
		expression: systems.NewExpressionSystem(cfg, rng),
		ambient:    systems.NewAmbientSystem(cfg, rng),
		effects:    systems.NewEffectSystem(rng),
		autoClick:  systems.NewAutoClicker(cfg.Derived.AutoClickInterval),
		perf:       telemetry.NewPerfCollector(60),
		collector:  opts.Collector,
		output:     opts.Output,
		logStats:   opts.LogStats,
	}
	if g.collector != nil {
		g.bookmarks = telemetry.NewBookmarkDetector(10)
		g.records = telemetry.NewRecords(10)
	}
	return g, nil
}

// Config returns the game's configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Catalog returns the store catalog.
func (g *Game) Catalog() *store.Catalog { return g.resolver.Catalog() }

// Thresholds returns the progression thresholds.
func (g *Game) Thresholds() progression.Thresholds { return g.thresholds }

// Stage returns the current stage.
func (g *Game) Stage() progression.Stage { return g.thresholds.StageFor(g.Economy.ClickCount) }

// Yield returns the clicks an accepted click currently earns.
func (g *Game) Yield() int64 {
	return economy.EffectiveClickYield(g.Economy) * max(g.DevMultiplier, 1)
}

// SetStatsCallback registers a function called with each flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) { g.statsCallback = fn }

// Perf returns the per-phase update timings.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// Records returns the session bests, or nil without a collector.
func (g *Game) Records() *telemetry.Records { return g.records }

func (g *Game) emit(ev Event) {
	g.events = append(g.events, ev)
	g.recordEvent(ev)
}

// Click handles a player click at (x, y) in percent space.
// Clicks inside the cooldown window are rejected without changing state.
func (g *Game) Click(x, y float32, now time.Time) (int64, error) {
	g.expireBoost(now)
	if g.Paused {
		return 0, ErrPaused
	}
	if !g.lastClick.IsZero() && now.Sub(g.lastClick) < g.cfg.Derived.ClickCooldown {
		g.emit(Event{Kind: EventClickRejected, At: now, X: x, Y: y})
		return 0, ErrClickCooldown
	}
	g.lastClick = now

	if g.Stage() == progression.SquidForm {
		g.spawnFood(x, y, now)
	}

	yield := g.Yield()
	g.emit(Event{Kind: EventClick, At: now, Amount: yield, X: x, Y: y})
	g.addClicks(yield, now)

	g.ambient.Push(x, y)
	g.effects.EmitFloater(x, y, yield)
	return yield, nil
}

func (g *Game) spawnFood(x, y float32, now time.Time) {
	p, ok := g.Food.Spawn(x, y, now)
	if !ok {
		g.emit(Event{Kind: EventFoodRefused, At: now, X: x, Y: y})
		return
	}
	g.emit(Event{Kind: EventFoodSpawned, At: now, Amount: 1, X: p.X, Y: p.Y})
}

// addClicks credits n clicks and applies any stage edges they cross.
func (g *Game) addClicks(n int64, now time.Time) {
	prev := g.Economy.ClickCount
	g.Economy.Add(n)
	g.observe(prev, now)
}

// observe applies the transition from prev to the current click total.
func (g *Game) observe(prev int64, now time.Time) {
	tr := g.tracker.Observe(prev, g.Economy.ClickCount)

	for i := 0; i < tr.Divisions; i++ {
		born := g.Colony.Divide()
		g.emit(Event{Kind: EventCellsDivided, At: now, Amount: int64(len(born))})
	}
	if tr.Divisions > 0 {
		g.effects.EmitBurst(50, 50, 12, systems.EffectSpark)
	}

	if !tr.Changed() {
		return
	}
	g.emit(Event{Kind: EventStageChanged, At: now, From: tr.From, To: tr.To})
	g.log.Info("stage changed", "from", tr.From.String(), "to", tr.To.String(), "clicks", g.Economy.ClickCount)

	if tr.To >= progression.Morphing && g.tracker.FirstEntry(progression.Morphing) {
		if g.ambient.SpawnBackground() {
			g.emit(Event{Kind: EventBackgroundSpawned, At: now})
		}
	}
}

// Purchase buys the next level of an item. Failures leave state untouched.
func (g *Game) Purchase(id string, now time.Time) (store.Receipt, error) {
	g.expireBoost(now)
	prev := g.Economy.ClickCount
	rc, err := g.resolver.Purchase(id, &g.Economy, g.Purchased, now)
	if err != nil {
		var pe *store.PurchaseError
		ev := Event{Kind: EventPurchaseFailed, At: now, ItemID: id, Err: err}
		if errors.As(err, &pe) {
			ev.Level = pe.Level
			ev.Amount = pe.Cost
		}
		g.emit(ev)
		g.log.Debug("purchase rejected", "item", id, "error", err)
		return rc, err
	}

	g.emit(Event{Kind: EventPurchase, At: now, ItemID: id, Level: rc.Level, Amount: rc.Cost})
	g.log.Info("purchase",
		"item", id,
		"level", rc.Level,
		"rarity", rc.Rarity.String(),
		"cost", rc.Cost,
		"balance", g.Economy.ClickCount,
	)
	g.writePurchase(rc, now)
	g.observe(prev, now)
	return rc, nil
}

// expireBoost closes the temporary multiplier window once now reaches it.
func (g *Game) expireBoost(now time.Time) {
	if g.Economy.ExpireBoost(now) {
		g.emit(Event{Kind: EventBoostExpired, At: now})
	}
}

// Update advances every timer to now and returns the events emitted since
// the previous Update, including those from Click and Purchase.
func (g *Game) Update(now time.Time) []Event {
	g.now = now
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseBoost)
	g.expireBoost(now)

	g.perf.StartPhase(telemetry.PhaseAutoClick)
	if g.Paused {
		// Time spent paused earns nothing.
		g.autoClick.Accrue(now, 0)
	} else if n := g.autoClick.Accrue(now, g.Economy.AutoClickers); n > 0 {
		g.emit(Event{Kind: EventAutoClick, At: now, Amount: n})
		g.addClicks(n, now)
	}

	if !g.Paused {
		g.stepSquid(now)

		g.perf.StartPhase(telemetry.PhaseAmbient)
		ticks := g.ambient.Update(now)

		g.perf.StartPhase(telemetry.PhaseEffects)
		for i := 0; i < ticks; i++ {
			g.effects.Update()
		}
	}
	g.perf.EndTick()

	g.flushTelemetry(now)

	out := g.events
	g.events = nil
	return out
}

func (g *Game) stepSquid(now time.Time) {
	squid := g.Stage() == progression.SquidForm

	g.perf.StartPhase(telemetry.PhaseFeeding)
	if squid {
		g.feeder.Swim(now, g.Food)
	}
	if squid || g.feeder.State == systems.FeedSucking {
		res := g.feeder.Update(now, g.Food, g.Satiety)
		if res.Started > 0 {
			g.emit(Event{Kind: EventConsumptionStarted, At: now, Amount: int64(res.Started)})
		}
		if res.Eaten > 0 {
			g.emit(Event{Kind: EventConsumptionFinished, At: now, Amount: int64(res.Eaten)})
			x, y := g.feeder.SquidPosition()
			g.effects.EmitBurst(x, y, res.Eaten, systems.EffectCrumb)
		}
		for i := 0; i < res.LevelUps; i++ {
			g.emit(Event{Kind: EventSatietyLevelUp, At: now, Level: g.Satiety.Level - res.LevelUps + i + 1})
		}
		if res.LevelUps > 0 {
			g.log.Info("satiety level up", "level", g.Satiety.Level, "max", g.Satiety.Max)
		}
	}

	g.perf.StartPhase(telemetry.PhaseFood)
	g.Food.Prune(now)

	g.perf.StartPhase(telemetry.PhaseExpression)
	if squid {
		g.expression.Update(now, g.feeder.State)
	}
}
