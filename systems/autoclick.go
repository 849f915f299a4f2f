package systems

import "time"

// AutoClicker accrues clicks from purchased auto-clickers on a fixed interval.
type AutoClicker struct {
	interval time.Duration
	last     time.Time
	started  bool
}

// NewAutoClicker creates an accrual timer. The first Accrue call starts it.
func NewAutoClicker(interval time.Duration) *AutoClicker {
	return &AutoClicker{interval: interval}
}

// Accrue returns the clicks earned since the previous call: count per whole
// elapsed interval. Partial intervals carry over.
func (a *AutoClicker) Accrue(now time.Time, count int64) int64 {
	if !a.started {
		a.started = true
		a.last = now
		return 0
	}
	if a.interval <= 0 || now.Before(a.last) {
		return 0
	}
	ticks := int64(now.Sub(a.last) / a.interval)
	if ticks == 0 {
		return 0
	}
	a.last = a.last.Add(time.Duration(ticks) * a.interval)
	if count <= 0 {
		return 0
	}
	return ticks * count
}
