// Package telemetry collects session statistics, detects notable moments
// and writes them out as CSV.
package telemetry

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Purchase failure reasons.
const (
	FailureInsufficientFunds = "insufficient_funds"
	FailureMaxLevel          = "max_level"
	FailureUnknownItem       = "unknown_item"
)

// GameState is the end-of-window state sampled by the game.
type GameState struct {
	ClickCount     int64
	LifetimeClicks int64
	Yield          int64
	AutoClickers   int64
	Stage          string
	Cells          int
	Food           int
	SatietyLevel   int
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	window  time.Duration
	session string

	sessionStart time.Time
	windowStart  time.Time
	started      bool

	// Event counters for current window
	clicks          int
	rejectedClicks  int
	clickEarnings   int64
	autoEarnings    int64
	purchases       int
	spent           int64
	failedFunds     int
	failedMax       int
	failedUnknown   int
	divisions       int
	foodSpawned     int
	foodRefused     int
	foodEaten       int
	satietyLevelUps int
	stageChanges    int

	// Accepted clicks per whole second of the window
	secondStart  time.Time
	secondClicks int
	perSecond    []float64
}

// NewCollector creates a collector with the given window length.
// session tags every row written for this collector.
func NewCollector(window time.Duration, session string) *Collector {
	if window <= 0 {
		window = 10 * time.Second
	}
	return &Collector{
		window:    window,
		session:   session,
		perSecond: make([]float64, 0, int(window/time.Second)+1),
	}
}

// Session returns the session id. Safe on a nil collector.
func (c *Collector) Session() string {
	if c == nil {
		return ""
	}
	return c.session
}

// Start anchors the session and first window at now. Called implicitly by
// the first recorded event or ShouldFlush.
func (c *Collector) Start(now time.Time) {
	if c.started {
		return
	}
	c.started = true
	c.sessionStart = now
	c.windowStart = now
	c.secondStart = now
}

// Elapsed returns time since the session started. Safe on a nil collector.
func (c *Collector) Elapsed(now time.Time) time.Duration {
	if c == nil || !c.started {
		return 0
	}
	return now.Sub(c.sessionStart)
}

// advanceSeconds closes every whole second bucket that ended before now.
func (c *Collector) advanceSeconds(now time.Time) {
	for now.Sub(c.secondStart) >= time.Second {
		c.perSecond = append(c.perSecond, float64(c.secondClicks))
		c.secondClicks = 0
		c.secondStart = c.secondStart.Add(time.Second)
	}
}

// RecordClick records an accepted manual click.
func (c *Collector) RecordClick(now time.Time, yield int64) {
	c.Start(now)
	c.advanceSeconds(now)
	c.clicks++
	c.secondClicks++
	c.clickEarnings += yield
}

// RecordRejectedClick records a click dropped by the cooldown.
func (c *Collector) RecordRejectedClick() {
	c.rejectedClicks++
}

// RecordAutoClick records auto-clicker earnings.
func (c *Collector) RecordAutoClick(amount int64) {
	c.autoEarnings += amount
}

// RecordPurchase records a successful purchase.
func (c *Collector) RecordPurchase(cost int64) {
	c.purchases++
	c.spent += cost
}

// RecordPurchaseFailed records a rejected purchase by reason.
func (c *Collector) RecordPurchaseFailed(reason string) {
	switch reason {
	case FailureInsufficientFunds:
		c.failedFunds++
	case FailureMaxLevel:
		c.failedMax++
	default:
		c.failedUnknown++
	}
}

// RecordDivision records one colony division.
func (c *Collector) RecordDivision() {
	c.divisions++
}

// RecordFoodSpawned records a spawned food particle.
func (c *Collector) RecordFoodSpawned() {
	c.foodSpawned++
}

// RecordFoodRefused records a spawn refused at capacity.
func (c *Collector) RecordFoodRefused() {
	c.foodRefused++
}

// RecordFoodEaten records n particles finishing consumption.
func (c *Collector) RecordFoodEaten(n int) {
	c.foodEaten += n
}

// RecordSatietyLevelUp records a satiety level gained.
func (c *Collector) RecordSatietyLevelUp() {
	c.satietyLevelUps++
}

// RecordStageChange records a stage edge.
func (c *Collector) RecordStageChange() {
	c.stageChanges++
}

// ShouldFlush returns true if the current window has elapsed.
func (c *Collector) ShouldFlush(now time.Time) bool {
	c.Start(now)
	return now.Sub(c.windowStart) >= c.window
}

// Flush produces WindowStats for the current window and resets counters.
func (c *Collector) Flush(now time.Time, st GameState) WindowStats {
	c.Start(now)
	c.advanceSeconds(now)

	dur := now.Sub(c.windowStart).Seconds()
	stats := WindowStats{
		Session:         c.session,
		WindowStartSec:  c.windowStart.Sub(c.sessionStart).Seconds(),
		WindowEndSec:    now.Sub(c.sessionStart).Seconds(),
		ClickCount:      st.ClickCount,
		LifetimeClicks:  st.LifetimeClicks,
		Yield:           st.Yield,
		AutoClickers:    st.AutoClickers,
		Stage:           st.Stage,
		Cells:           st.Cells,
		Food:            st.Food,
		SatietyLevel:    st.SatietyLevel,
		Clicks:          c.clicks,
		RejectedClicks:  c.rejectedClicks,
		ClickEarnings:   c.clickEarnings,
		AutoEarnings:    c.autoEarnings,
		Purchases:       c.purchases,
		Spent:           c.spent,
		FailedFunds:     c.failedFunds,
		FailedMaxLevel:  c.failedMax,
		FailedUnknown:   c.failedUnknown,
		Divisions:       c.divisions,
		FoodSpawned:     c.foodSpawned,
		FoodRefused:     c.foodRefused,
		FoodEaten:       c.foodEaten,
		SatietyLevelUps: c.satietyLevelUps,
		StageChanges:    c.stageChanges,
	}
	if dur > 0 {
		stats.EarnRate = float64(c.clickEarnings+c.autoEarnings) / dur
	}
	if len(c.perSecond) > 0 {
		stats.CPSMean, stats.CPSStd = stat.MeanStdDev(c.perSecond, nil)
		stats.CPSP90 = Quantile(c.perSecond, 0.9)
	}

	c.reset(now)
	return stats
}

func (c *Collector) reset(now time.Time) {
	*c = Collector{
		window:       c.window,
		session:      c.session,
		sessionStart: c.sessionStart,
		windowStart:  now,
		started:      true,
		secondStart:  c.secondStart,
		secondClicks: c.secondClicks,
		perSecond:    c.perSecond[:0],
	}
}

// Window returns the configured window length.
func (c *Collector) Window() time.Duration {
	return c.window
}
