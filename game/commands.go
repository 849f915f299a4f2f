package game

import "time"

// Developer operations. They go through the same stage tracking as play.

// Grant credits n clicks as if earned.
func (g *Game) Grant(n int64, now time.Time) {
	if n <= 0 {
		return
	}
	g.addClicks(n, now)
	g.log.Info("dev grant", "clicks", n, "balance", g.Economy.ClickCount)
}

// ResetClicks sets the balance to zero. Purchases and colony are kept.
func (g *Game) ResetClicks(now time.Time) {
	prev := g.Economy.ClickCount
	g.Economy.Reset()
	g.emit(Event{Kind: EventReset, At: now, Amount: prev})
	g.observe(prev, now)
	g.log.Info("dev reset", "previous", prev)
}

// ToggleDevMultiplier switches the click multiplier between 1 and DevMultiplier.
// Returns the new value.
func (g *Game) ToggleDevMultiplier() int64 {
	if g.DevMultiplier == 1 {
		g.DevMultiplier = DevMultiplier
	} else {
		g.DevMultiplier = 1
	}
	g.log.Info("dev multiplier", "value", g.DevMultiplier)
	return g.DevMultiplier
}

// SetPaused pauses or resumes the session.
func (g *Game) SetPaused(paused bool, now time.Time) {
	if g.Paused == paused {
		return
	}
	g.Paused = paused
	if paused {
		g.emit(Event{Kind: EventPaused, At: now})
	} else {
		g.emit(Event{Kind: EventResumed, At: now})
	}
}

// TogglePause flips the paused state and returns it.
func (g *Game) TogglePause(now time.Time) bool {
	g.SetPaused(!g.Paused, now)
	return g.Paused
}
