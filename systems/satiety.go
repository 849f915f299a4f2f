package systems

import "github.com/akorn123w/FishingInTheVoid/config"

// Satiety is the squid's fullness meter. Current never exceeds Max after a gain.
type Satiety struct {
	Current float64 `json:"current"`
	Max     float64 `json:"max"`
	Level   int     `json:"level"`

	tiers []config.SatietyTier
}

// NewSatiety creates an empty meter at level 0.
func NewSatiety(cfg config.SatietyConfig) *Satiety {
	return &Satiety{
		Max:   cfg.InitialMax,
		tiers: cfg.Tiers,
	}
}

// tier returns the tier covering level. The last tier covers everything above the others.
func (s *Satiety) tier(level int) config.SatietyTier {
	last := len(s.tiers) - 1
	for i := 0; i < last; i++ {
		if level <= s.tiers[i].MaxLevel {
			return s.tiers[i]
		}
	}
	return s.tiers[last]
}

// GainPerParticle is what one eaten particle adds at the current level.
func (s *Satiety) GainPerParticle() float64 {
	return s.tier(s.Level).Gain
}

// Fraction returns Current/Max in [0, 1].
func (s *Satiety) Fraction() float64 {
	if s.Max <= 0 {
		return 0
	}
	return min(s.Current/s.Max, 1)
}

// Eat applies the gain for n particles, one at a time. Reaching Max resets
// Current to 0, discards the overflow and scales Max by the growth of the
// tier being left. Returns the total gain applied and the number of level ups.
func (s *Satiety) Eat(n int) (gained float64, ups int) {
	for i := 0; i < n; i++ {
		g := s.GainPerParticle()
		gained += g
		s.Current += g
		if s.Current >= s.Max {
			t := s.tier(s.Level)
			s.Current = 0
			s.Max *= t.Growth
			s.Level++
			ups++
		}
	}
	return gained, ups
}
