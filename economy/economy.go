// Package economy holds the click currency and the yield arithmetic.
package economy

import (
	"math"
	"time"
)

// Economy is the mutable currency state for one play session.
type Economy struct {
	ClickCount          int64     `json:"click_count"`
	LifetimeClicks      int64     `json:"lifetime_clicks"` // Total ever earned; never decreases
	ClickBonus          int64     `json:"click_bonus"`
	ClickMultiplier     float64   `json:"click_multiplier"`
	TemporaryMultiplier float64   `json:"temporary_multiplier"`
	BoostExpiresAt      time.Time `json:"boost_expires_at,omitzero"` // Zero when no boost is active
	AutoClickers        int64     `json:"auto_clickers"`
}

// New returns an economy with neutral multipliers.
func New() Economy {
	return Economy{
		ClickMultiplier:     1,
		TemporaryMultiplier: 1,
	}
}

// EffectiveClickYield returns the clicks granted per accepted click.
// The result is never below 1.
func EffectiveClickYield(e Economy) int64 {
	mult := e.ClickMultiplier
	if mult < 1 {
		mult = 1
	}
	temp := e.TemporaryMultiplier
	if temp < 1 {
		temp = 1
	}
	y := int64(math.Ceil(float64(1+e.ClickBonus) * mult * temp))
	if y < 1 {
		return 1
	}
	return y
}

// Add credits n clicks. Negative n is ignored.
func (e *Economy) Add(n int64) {
	if n <= 0 {
		return
	}
	e.ClickCount += n
	e.LifetimeClicks += n
}

// CanAfford reports whether cost can be spent without going negative.
func (e *Economy) CanAfford(cost int64) bool {
	return cost >= 0 && e.ClickCount >= cost
}

// Spend deducts cost and reports success. The balance is left untouched on failure.
func (e *Economy) Spend(cost int64) bool {
	if !e.CanAfford(cost) {
		return false
	}
	e.ClickCount -= cost
	return true
}

// Reset zeroes the balance. Lifetime totals, bonuses and multipliers are kept.
func (e *Economy) Reset() {
	e.ClickCount = 0
}

// ApplyBoost sets the temporary multiplier and schedules its expiry,
// replacing any expiry already scheduled.
func (e *Economy) ApplyBoost(value float64, now time.Time, window time.Duration) {
	if value < 1 {
		value = 1
	}
	e.TemporaryMultiplier = value
	e.BoostExpiresAt = now.Add(window)
}

// BoostActive reports whether a temporary multiplier is in effect at now.
func (e *Economy) BoostActive(now time.Time) bool {
	return !e.BoostExpiresAt.IsZero() && now.Before(e.BoostExpiresAt)
}

// ExpireBoost resets the temporary multiplier once its window has passed.
// Returns true if a boost expired on this call.
func (e *Economy) ExpireBoost(now time.Time) bool {
	if e.BoostExpiresAt.IsZero() || now.Before(e.BoostExpiresAt) {
		return false
	}
	e.TemporaryMultiplier = 1
	e.BoostExpiresAt = time.Time{}
	return true
}
