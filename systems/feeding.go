package systems

import (
	"time"

	"github.com/akorn123w/FishingInTheVoid/config"
)

// FeedState is the squid's consumption state.
type FeedState uint8

const (
	FeedIdle FeedState = iota
	FeedSucking
)

func (s FeedState) String() string {
	if s == FeedSucking {
		return "sucking"
	}
	return "idle"
}

// FeedResult reports what one feeder update did.
type FeedResult struct {
	Started  int // Particles marked as being eaten
	Eaten    int // Particles finished
	Gained   float64
	LevelUps int
}

// Feeder runs the consumption cycle: once enough uneaten food is within
// reach it marks it all as being eaten, then after a fixed duration marks it
// eaten and fills the satiety meter. Between cycles the squid swims after
// the oldest free particle and drifts home when the field is empty.
type Feeder struct {
	State     FeedState
	StartedAt time.Time

	minParticles int
	radius       float32
	duration     time.Duration

	squidX, squidY float32
	vx, vy         float32
	homeX, homeY   float32
	lastSwim       time.Time
	swimTick       time.Duration
	swimSpeed      float32
	idleSpeed      float32
	damping        float32
	influence      float32
	arrive         float32
}

// NewFeeder creates an idle feeder with the squid at its home position.
func NewFeeder(cfg *config.Config) *Feeder {
	fc := cfg.Feeding
	return &Feeder{
		minParticles: fc.MinParticlesForSuck,
		radius:       float32(fc.SuckRadius),
		duration:     cfg.Derived.EatingDuration,
		squidX:       float32(fc.SquidX),
		squidY:       float32(fc.SquidY),
		homeX:        float32(fc.SquidX),
		homeY:        float32(fc.SquidY),
		swimTick:     cfg.Derived.SwimTick,
		swimSpeed:    float32(fc.SwimSpeed),
		idleSpeed:    float32(fc.IdleSpeed),
		damping:      float32(fc.SwimDamping),
		influence:    float32(fc.SwimInfluence),
		arrive:       float32(fc.ArriveRadius),
	}
}

// SquidPosition returns where the squid sits in percent space.
func (f *Feeder) SquidPosition() (x, y float32) { return f.squidX, f.squidY }

// Swim advances the squid by the swim ticks elapsed since the last call.
// Returns the number of ticks simulated.
func (f *Feeder) Swim(now time.Time, food *FoodField) int {
	if f.lastSwim.IsZero() {
		f.lastSwim = now
		return 0
	}
	if f.swimTick <= 0 || now.Before(f.lastSwim) {
		return 0
	}
	ticks := int(now.Sub(f.lastSwim) / f.swimTick)
	if ticks == 0 {
		return 0
	}
	f.lastSwim = f.lastSwim.Add(time.Duration(ticks) * f.swimTick)
	ticks = min(ticks, maxCatchUp)
	for i := 0; i < ticks; i++ {
		f.swimStep(food)
	}
	return ticks
}

func (f *Feeder) swimStep(food *FoodField) {
	switch target := f.target(food); {
	case f.State == FeedSucking:
		// Hold still while pulling food in.
		f.coast()
	case target != nil:
		if distance(f.squidX, f.squidY, target.X, target.Y) < f.arrive {
			f.coast()
		} else {
			f.steer(target.X, target.Y, f.swimSpeed)
		}
	case distance(f.squidX, f.squidY, f.homeX, f.homeY) > 2*f.arrive:
		f.steer(f.homeX, f.homeY, f.idleSpeed)
	default:
		f.coast()
	}
	f.squidX = clamp(f.squidX+f.vx, 0, 100)
	f.squidY = clamp(f.squidY+f.vy, 0, 100)
}

// target returns the oldest particle not yet eaten or being eaten.
func (f *Feeder) target(food *FoodField) *FoodParticle {
	for i := range food.Particles {
		if p := &food.Particles[i]; !p.Eaten && !p.BeingEaten {
			return p
		}
	}
	return nil
}

func (f *Feeder) steer(tx, ty, speed float32) {
	d := distance(f.squidX, f.squidY, tx, ty)
	if d == 0 {
		f.coast()
		return
	}
	f.vx = f.vx*f.damping + (tx-f.squidX)/d*speed*f.influence
	f.vy = f.vy*f.damping + (ty-f.squidY)/d*speed*f.influence
}

func (f *Feeder) coast() {
	f.vx *= f.damping
	f.vy *= f.damping
}

// Eligible reports whether p can be pulled in at the squid's position.
func (f *Feeder) Eligible(p *FoodParticle) bool {
	if p.Eaten || p.BeingEaten {
		return false
	}
	return distance(p.X, p.Y, f.squidX, f.squidY) <= f.radius
}

// Update advances the cycle. Call only while the squid is present.
func (f *Feeder) Update(now time.Time, food *FoodField, sat *Satiety) FeedResult {
	var res FeedResult

	switch f.State {
	case FeedIdle:
		n := 0
		for i := range food.Particles {
			if f.Eligible(&food.Particles[i]) {
				n++
			}
		}
		if n < f.minParticles {
			return res
		}
		for i := range food.Particles {
			if f.Eligible(&food.Particles[i]) {
				food.Particles[i].BeingEaten = true
			}
		}
		f.State = FeedSucking
		f.StartedAt = now
		res.Started = n

	case FeedSucking:
		if now.Sub(f.StartedAt) < f.duration {
			return res
		}
		for i := range food.Particles {
			p := &food.Particles[i]
			if p.BeingEaten {
				p.BeingEaten = false
				p.Eaten = true
				res.Eaten++
			}
		}
		res.Gained, res.LevelUps = sat.Eat(res.Eaten)
		f.State = FeedIdle
		f.StartedAt = time.Time{}
	}
	return res
}

// Progress returns how far through the current consumption the feeder is, in [0, 1].
func (f *Feeder) Progress(now time.Time) float64 {
	if f.State != FeedSucking || f.duration <= 0 {
		return 0
	}
	return min(float64(now.Sub(f.StartedAt))/float64(f.duration), 1)
}
