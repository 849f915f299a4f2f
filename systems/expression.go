package systems

import (
	"math/rand"
	"time"

	"github.com/akorn123w/FishingInTheVoid/config"
)

// Expression is the squid's face.
type Expression uint8

const (
	Content Expression = iota
	Sucking
	Blinking
)

func (e Expression) String() string {
	switch e {
	case Sucking:
		return "sucking"
	case Blinking:
		return "blinking"
	}
	return "content"
}

// MarshalText encodes the expression name.
func (e Expression) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// ExpressionSystem picks the squid's expression. Blinks are rolled at a fixed
// interval and only happen while the squid is otherwise content.
type ExpressionSystem struct {
	Current Expression

	blinkUntil time.Time
	nextCheck  time.Time

	chance   float64
	duration time.Duration
	interval time.Duration
	rng      *rand.Rand
}

// NewExpressionSystem creates a content squid.
func NewExpressionSystem(cfg *config.Config, rng *rand.Rand) *ExpressionSystem {
	return &ExpressionSystem{
		chance:   cfg.Expression.BlinkChance,
		duration: cfg.Derived.BlinkDuration,
		interval: cfg.Derived.BlinkCheckInterval,
		rng:      rng,
	}
}

// Update recomputes the expression for now.
func (s *ExpressionSystem) Update(now time.Time, feeding FeedState) Expression {
	if feeding == FeedSucking {
		s.blinkUntil = time.Time{}
		s.Current = Sucking
		return s.Current
	}

	if now.Before(s.blinkUntil) {
		s.Current = Blinking
		return s.Current
	}

	s.Current = Content
	if s.interval > 0 && !now.Before(s.nextCheck) {
		s.nextCheck = now.Add(s.interval)
		if s.rng.Float64() < s.chance {
			s.blinkUntil = now.Add(s.duration)
			s.Current = Blinking
		}
	}
	return s.Current
}
