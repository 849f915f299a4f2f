package game

import (
	"time"

	"github.com/akorn123w/FishingInTheVoid/progression"
)

// Autoplayer is a scripted player for headless runs. It clicks at a fixed
// rate at the squid position and greedily buys the cheapest affordable item.
type Autoplayer struct {
	CPS float64 // Manual clicks per second; 0 disables clicking
	Buy bool

	interval  time.Duration
	nextClick time.Time
}

// NewAutoplayer creates a player clicking cps times per second.
func NewAutoplayer(cps float64, buy bool) *Autoplayer {
	a := &Autoplayer{CPS: cps, Buy: buy}
	if cps > 0 {
		a.interval = time.Duration(float64(time.Second) / cps)
	}
	return a
}

// Step issues every click due up to now, then makes at most one purchase.
func (a *Autoplayer) Step(g *Game, now time.Time) {
	if a.interval > 0 {
		if a.nextClick.IsZero() {
			a.nextClick = now
		}
		x, y := g.SquidPosition()
		for !a.nextClick.After(now) {
			g.Click(x, y, a.nextClick)
			a.nextClick = a.nextClick.Add(a.interval)
		}
	}
	if a.Buy {
		a.buyCheapest(g, now)
	}
}

func (a *Autoplayer) buyCheapest(g *Game, now time.Time) {
	best := -1
	entries := g.StoreEntries()
	for i, e := range entries {
		if e.Maxed || !e.Affordable {
			continue
		}
		// A boost is only worth buying when none is running
		if e.Kind == "boost" && g.Economy.BoostActive(now) {
			continue
		}
		if best < 0 || e.NextCost < entries[best].NextCost {
			best = i
		}
	}
	if best >= 0 {
		g.Purchase(entries[best].ID, now)
	}
}

// RunResult summarizes a simulated session.
type RunResult struct {
	Elapsed    time.Duration
	Reached    progression.Stage
	StageTimes map[progression.Stage]time.Duration
	Clicks     int64 // Lifetime clicks earned
	Purchases  int
	FoodEaten  int
}

// Simulate drives g with player from start in steps of dt until the squid
// appears or limit elapses. Events are consumed.
func Simulate(g *Game, player *Autoplayer, start time.Time, dt, limit time.Duration) RunResult {
	res := RunResult{StageTimes: map[progression.Stage]time.Duration{g.Stage(): 0}}
	now := start
	for elapsed := time.Duration(0); elapsed <= limit; elapsed += dt {
		now = start.Add(elapsed)
		player.Step(g, now)
		for _, ev := range g.Update(now) {
			switch ev.Kind {
			case EventStageChanged:
				if _, seen := res.StageTimes[ev.To]; !seen {
					res.StageTimes[ev.To] = elapsed
				}
			case EventPurchase:
				res.Purchases++
			case EventConsumptionFinished:
				res.FoodEaten += int(ev.Amount)
			}
		}
		res.Elapsed = elapsed
		if g.Stage() == progression.SquidForm {
			break
		}
	}
	res.Reached = g.Stage()
	res.Clicks = g.Economy.LifetimeClicks
	return res
}
