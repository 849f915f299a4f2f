package game

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akorn123w/FishingInTheVoid/config"
	"github.com/akorn123w/FishingInTheVoid/progression"
	"github.com/akorn123w/FishingInTheVoid/store"
	"github.com/akorn123w/FishingInTheVoid/telemetry"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(config.Default(), Options{Seed: 42})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func findKind(events []Event, kind EventKind) (Event, bool) {
	for _, ev := range events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

func TestFirstClick(t *testing.T) {
	g := newTestGame(t)

	yield, err := g.Click(50, 50, t0)
	if err != nil {
		t.Fatalf("Click: %v", err)
	}
	if yield != 1 || g.Economy.ClickCount != 1 || g.Economy.LifetimeClicks != 1 {
		t.Errorf("yield=%d count=%d lifetime=%d", yield, g.Economy.ClickCount, g.Economy.LifetimeClicks)
	}
	if g.Stage() != progression.Dormant {
		t.Errorf("stage = %v, want dormant", g.Stage())
	}

	g.Click(50, 50, t0.Add(50*time.Millisecond))
	if g.Stage() != progression.Growing {
		t.Errorf("stage after 2 clicks = %v, want growing", g.Stage())
	}
	events := g.Update(t0.Add(60 * time.Millisecond))
	ev, ok := findKind(events, EventStageChanged)
	if !ok || ev.From != progression.Dormant || ev.To != progression.Growing {
		t.Errorf("stage event = %+v, %v", ev, ok)
	}
}

func TestClickCooldown(t *testing.T) {
	g := newTestGame(t)

	g.Click(10, 10, t0)
	if _, err := g.Click(10, 10, t0.Add(10*time.Millisecond)); !errors.Is(err, ErrClickCooldown) {
		t.Fatalf("err = %v, want ErrClickCooldown", err)
	}
	if g.Economy.ClickCount != 1 {
		t.Errorf("rejected click changed count to %d", g.Economy.ClickCount)
	}
	if _, err := g.Click(10, 10, t0.Add(50*time.Millisecond)); err != nil {
		t.Errorf("click at cooldown boundary: %v", err)
	}

	events := g.Update(t0.Add(time.Second))
	if countKind(events, EventClickRejected) != 1 || countKind(events, EventClick) != 2 {
		t.Errorf("events = %v", events)
	}
}

func TestPurchaseClickPlus(t *testing.T) {
	g := newTestGame(t)
	g.Grant(50, t0)

	entries := g.StoreEntries()
	var found bool
	for _, e := range entries {
		if e.ID == "click_plus" {
			found = true
			if !e.Affordable || e.NextCost != 50 {
				t.Errorf("entry = %+v", e)
			}
		}
	}
	if !found {
		t.Fatal("click_plus not visible at 50 lifetime clicks")
	}

	rc, err := g.Purchase("click_plus", t0)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if rc.Level != 1 || rc.Cost != 50 {
		t.Errorf("receipt = %+v", rc)
	}
	if g.Economy.ClickCount != 0 || g.Economy.LifetimeClicks != 50 {
		t.Errorf("count=%d lifetime=%d", g.Economy.ClickCount, g.Economy.LifetimeClicks)
	}
	if g.Yield() != 2 {
		t.Errorf("yield = %d, want 2", g.Yield())
	}
	// Store visibility follows lifetime clicks, so it survives spending
	if len(g.StoreEntries()) != len(entries) {
		t.Error("store entries changed after spending")
	}

	if _, err := g.Purchase("click_plus", t0); !errors.Is(err, store.ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
	events := g.Update(t0)
	if countKind(events, EventPurchase) != 1 || countKind(events, EventPurchaseFailed) != 1 {
		t.Errorf("events = %v", events)
	}
}

func TestPurchaseRegressesStage(t *testing.T) {
	g := newTestGame(t)
	g.Grant(100, t0)
	g.Update(t0)

	g.Economy.ClickCount = 1
	g.observe(100, t0)
	events := g.Update(t0)
	ev, ok := findKind(events, EventStageChanged)
	if !ok || ev.To != progression.Dormant {
		t.Errorf("regression event = %+v, %v", ev, ok)
	}
}

func TestDivisionDoublesColony(t *testing.T) {
	g := newTestGame(t)

	g.Grant(10000, t0)
	if g.Colony.Len() != 2 {
		t.Fatalf("cells at 10000 = %d, want 2", g.Colony.Len())
	}
	g.Grant(50, t0)
	if g.Colony.Len() != 32 {
		t.Errorf("cells at 10050 = %d, want 32", g.Colony.Len())
	}
	// No more divisions past the division window
	g.Grant(1000, t0)
	if g.Colony.Len() != 32 {
		t.Errorf("cells after window = %d, want 32", g.Colony.Len())
	}
	events := g.Update(t0)
	if n := countKind(events, EventCellsDivided); n != 5 {
		t.Errorf("division events = %d, want 5", n)
	}
	if countKind(events, EventBackgroundSpawned) != 1 {
		t.Error("background should spawn on first morphing entry")
	}
}

func TestSquidFeeding(t *testing.T) {
	g := newTestGame(t)
	g.Grant(10100, t0)
	if g.Stage() != progression.SquidForm {
		t.Fatalf("stage = %v", g.Stage())
	}
	g.Update(t0)

	// Food only spawns once the squid is present
	now := t0
	for i := 0; i < 3; i++ {
		now = now.Add(50 * time.Millisecond)
		if _, err := g.Click(50, 50, now); err != nil {
			t.Fatal(err)
		}
	}
	if len(g.FoodParticles()) != 3 {
		t.Fatalf("food = %d, want 3", len(g.FoodParticles()))
	}

	events := g.Update(now)
	if ev, ok := findKind(events, EventConsumptionStarted); !ok || ev.Amount != 3 {
		t.Fatalf("consumption start = %+v, %v", ev, ok)
	}
	if g.FeedProgress(now) != 0 {
		t.Errorf("progress at start = %v", g.FeedProgress(now))
	}

	events = g.Update(now.Add(2 * time.Second))
	if ev, ok := findKind(events, EventConsumptionFinished); !ok || ev.Amount != 3 {
		t.Fatalf("consumption finish = %+v, %v", ev, ok)
	}
	if g.Satiety.Current != 3 || g.Satiety.Level != 0 {
		t.Errorf("satiety = %+v", *g.Satiety)
	}
	if len(g.FoodParticles()) != 0 {
		t.Errorf("eaten food not pruned: %d", len(g.FoodParticles()))
	}
}

func TestSquidSwimsToFood(t *testing.T) {
	g := newTestGame(t)
	g.Grant(10100, t0)
	g.Update(t0)

	if _, err := g.Click(80, 50, t0); err != nil {
		t.Fatal(err)
	}
	now := t0
	for i := 0; i < 30; i++ {
		now = now.Add(16 * time.Millisecond)
		g.Update(now)
	}
	x, y := g.SquidPosition()
	if x <= 50 || y != 50 {
		t.Errorf("squid at (%v, %v), want moving right toward the food", x, y)
	}
}

func TestNoFoodBeforeSquid(t *testing.T) {
	g := newTestGame(t)
	g.Click(50, 50, t0)
	if len(g.FoodParticles()) != 0 {
		t.Error("food spawned before squid form")
	}
}

func TestAutoClickAccrual(t *testing.T) {
	g := newTestGame(t)
	g.Economy.AutoClickers = 2

	g.Update(t0)
	events := g.Update(t0.Add(2500 * time.Millisecond))
	if ev, ok := findKind(events, EventAutoClick); !ok || ev.Amount != 4 {
		t.Errorf("auto click = %+v, %v", ev, ok)
	}
	g.Update(t0.Add(3 * time.Second))
	if g.Economy.ClickCount != 6 {
		t.Errorf("count = %d, want 6", g.Economy.ClickCount)
	}
}

func TestPausedEarnsNothing(t *testing.T) {
	g := newTestGame(t)
	g.Economy.AutoClickers = 1
	g.Update(t0)

	g.SetPaused(true, t0)
	if _, err := g.Click(1, 1, t0); !errors.Is(err, ErrPaused) {
		t.Errorf("err = %v, want ErrPaused", err)
	}
	g.Update(t0.Add(5 * time.Second))
	if g.Economy.ClickCount != 0 {
		t.Errorf("earned %d while paused", g.Economy.ClickCount)
	}

	if g.TogglePause(t0.Add(5 * time.Second)) {
		t.Fatal("toggle should resume")
	}
	g.Update(t0.Add(6 * time.Second))
	if g.Economy.ClickCount != 1 {
		t.Errorf("count after resume = %d, want 1", g.Economy.ClickCount)
	}
}

func TestBoostExpires(t *testing.T) {
	g := newTestGame(t)
	g.Grant(100, t0)

	if _, err := g.Purchase("temporary_boost", t0); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if g.Yield() != 2 {
		t.Errorf("boosted yield = %d, want 2", g.Yield())
	}
	g.Update(t0.Add(29 * time.Second))
	if g.Yield() != 2 {
		t.Error("boost expired early")
	}
	events := g.Update(t0.Add(30 * time.Second))
	if countKind(events, EventBoostExpired) != 1 {
		t.Errorf("events = %v", events)
	}
	if g.Yield() != 1 {
		t.Errorf("yield after expiry = %d, want 1", g.Yield())
	}
}

func TestBoostExpiresBeforeClick(t *testing.T) {
	g := newTestGame(t)
	g.Grant(100, t0)
	if _, err := g.Purchase("temporary_boost", t0); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	g.Update(t0)

	// No Update between purchase and click
	before := g.Economy.ClickCount
	gained, err := g.Click(50, 50, t0.Add(31*time.Second))
	if err != nil {
		t.Fatalf("Click: %v", err)
	}
	if gained != 1 || g.Economy.ClickCount-before != 1 {
		t.Errorf("gained = %d, want 1 after the window closed", gained)
	}
	if g.Economy.TemporaryMultiplier != 1 {
		t.Errorf("temporary multiplier = %v, want 1", g.Economy.TemporaryMultiplier)
	}
	if countKind(g.Update(t0.Add(31*time.Second)), EventBoostExpired) != 1 {
		t.Error("expected one boost_expired event")
	}
}

func TestBoostExpiresAtWindowEdgeInSimulateOrder(t *testing.T) {
	g := newTestGame(t)
	g.Grant(100, t0)
	if _, err := g.Purchase("temporary_boost", t0); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	g.Update(t0)

	// Player acts before the tick, as Simulate does
	edge := t0.Add(30 * time.Second)
	gained, err := g.Click(50, 50, edge)
	if err != nil {
		t.Fatalf("Click: %v", err)
	}
	g.Update(edge)
	if gained != 1 {
		t.Errorf("gained at window edge = %d, want 1", gained)
	}
}

func TestPurchaseAfterBoostWindowSeesBaseYield(t *testing.T) {
	g := newTestGame(t)
	g.Grant(1000, t0)
	if _, err := g.Purchase("temporary_boost", t0); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	g.Update(t0)

	rc, err := g.Purchase("click_plus", t0.Add(40*time.Second))
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if rc.ItemID != "click_plus" {
		t.Errorf("receipt = %+v", rc)
	}
	if g.Economy.TemporaryMultiplier != 1 || g.Yield() != 2 {
		t.Errorf("temp=%v yield=%d, want 1 and 2", g.Economy.TemporaryMultiplier, g.Yield())
	}
}

func TestDevCommands(t *testing.T) {
	g := newTestGame(t)

	if g.ToggleDevMultiplier() != DevMultiplier {
		t.Fatal("expected dev multiplier on")
	}
	yield, _ := g.Click(0, 0, t0)
	if yield != 100 {
		t.Errorf("dev yield = %d, want 100", yield)
	}
	g.ToggleDevMultiplier()
	if g.Yield() != 1 {
		t.Errorf("yield after toggle off = %d", g.Yield())
	}

	g.ResetClicks(t0)
	if g.Economy.ClickCount != 0 || g.Economy.LifetimeClicks != 100 {
		t.Errorf("after reset count=%d lifetime=%d", g.Economy.ClickCount, g.Economy.LifetimeClicks)
	}
	events := g.Update(t0)
	if countKind(events, EventReset) != 1 {
		t.Errorf("events = %v", events)
	}

	g.Grant(-5, t0)
	if g.Economy.ClickCount != 0 {
		t.Error("negative grant changed balance")
	}
}

func TestSnapshotJSON(t *testing.T) {
	g := newTestGame(t)
	g.Grant(60, t0)

	data, err := json.Marshal(g.Snapshot(t0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["stage"] != "growing" || got["click_count"] != float64(60) {
		t.Errorf("snapshot = %s", data)
	}
	if _, ok := got["satiety"].(map[string]any); !ok {
		t.Errorf("satiety missing: %s", data)
	}
}

func TestTelemetryOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGame(config.Default(), Options{
		Seed:      1,
		Collector: telemetry.NewCollector(10*time.Second, "test"),
		Output:    out,
	})
	if err != nil {
		t.Fatal(err)
	}

	var windows int
	g.SetStatsCallback(func(telemetry.WindowStats) { windows++ })

	now := t0
	g.Update(now)
	for i := 0; i < 100; i++ {
		now = now.Add(100 * time.Millisecond)
		g.Click(50, 50, now)
		g.Update(now)
	}
	g.Purchase("click_plus", now)
	g.Update(now.Add(10 * time.Second))
	if err := out.WriteRecords(g.Records()); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	if windows != 2 {
		t.Errorf("flushed windows = %d, want 2", windows)
	}
	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 3 {
		t.Errorf("telemetry.csv lines = %d, want 3", len(lines))
	}
	data, err = os.ReadFile(filepath.Join(dir, "purchases.csv"))
	if err != nil || !strings.Contains(string(data), "click_plus") {
		t.Errorf("purchases.csv = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "records.json")); err != nil {
		t.Error(err)
	}
	snaps, _ := filepath.Glob(filepath.Join(dir, "snapshots", "*.json"))
	if len(snaps) == 0 {
		t.Error("expected stage bookmark snapshots")
	}
}

func TestSimulateReachesSquid(t *testing.T) {
	g := newTestGame(t)
	res := Simulate(g, NewAutoplayer(10, true), t0, 100*time.Millisecond, 2*time.Hour)

	if res.Reached != progression.SquidForm {
		t.Fatalf("reached %v after %v", res.Reached, res.Elapsed)
	}
	if res.Purchases == 0 {
		t.Error("greedy player bought nothing")
	}
	prev := time.Duration(-1)
	for s := progression.Dormant; s <= progression.SquidForm; s++ {
		at, ok := res.StageTimes[s]
		if !ok {
			continue
		}
		if at < prev {
			t.Errorf("stage %v reached at %v, before previous stage at %v", s, at, prev)
		}
		prev = at
	}
}

func TestAutoplayerRespectsCooldown(t *testing.T) {
	g := newTestGame(t)
	// Faster than the 50ms cooldown allows
	p := NewAutoplayer(40, false)
	p.Step(g, t0)
	p.Step(g, t0.Add(time.Second))
	if g.Economy.ClickCount > 21 {
		t.Errorf("count = %d, cooldown should cap a second at 21 clicks", g.Economy.ClickCount)
	}
}
