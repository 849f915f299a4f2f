package desktop

import (
	"time"

	"github.com/akorn123w/FishingInTheVoid/audio"
	"github.com/akorn123w/FishingInTheVoid/game"
)

// SoundFor returns the sound played for ev, if any.
func SoundFor(ev game.Event) (string, bool) {
	switch ev.Kind {
	case game.EventClick:
		return audio.SoundClick, true
	case game.EventPurchase:
		return audio.SoundPurchase, true
	case game.EventConsumptionFinished:
		return audio.SoundEat, true
	case game.EventStageChanged:
		if ev.To > ev.From {
			return audio.SoundStage, true
		}
	}
	return "", false
}

// clickRate counts accepted clicks over a sliding window.
type clickRate struct {
	window time.Duration
	times  []time.Time
}

func newClickRate(window time.Duration) *clickRate {
	return &clickRate{window: window}
}

// Add records a click at t. Times must be non-decreasing.
func (r *clickRate) Add(t time.Time) {
	r.times = append(r.times, t)
}

// Rate returns clicks per second over the window ending at now.
func (r *clickRate) Rate(now time.Time) float64 {
	cut := 0
	for cut < len(r.times) && now.Sub(r.times[cut]) > r.window {
		cut++
	}
	r.times = append(r.times[:0], r.times[cut:]...)
	return float64(len(r.times)) / r.window.Seconds()
}
