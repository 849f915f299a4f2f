package systems

import (
	"math/rand"
	"time"

	"github.com/akorn123w/FishingInTheVoid/config"
)

// FoodParticle is a piece of food dropped by a click. Position is in percent space.
type FoodParticle struct {
	ID         uint32
	X, Y       float32
	Size       float32
	Type       uint8 // 1..Types
	Eaten      bool
	BeingEaten bool
	CreatedAt  time.Time
}

// FoodField holds the live food particles in creation order.
type FoodField struct {
	Particles []FoodParticle

	nextID      uint32
	cfg         config.FoodConfig
	fadeStart   time.Duration
	fadeDur     time.Duration
	removeAfter time.Duration
	rng         *rand.Rand
}

// NewFoodField creates an empty food field.
func NewFoodField(cfg *config.Config, rng *rand.Rand) *FoodField {
	return &FoodField{
		Particles:   make([]FoodParticle, 0, 64),
		nextID:      1,
		cfg:         cfg.Food,
		fadeStart:   cfg.Derived.FoodFadeStart,
		fadeDur:     cfg.Derived.FoodFadeDuration,
		removeAfter: cfg.Derived.FoodRemoveAfter,
		rng:         rng,
	}
}

// Spawn drops a particle at (x, y). At capacity the oldest eaten particle is
// evicted to make room; if none is eaten the spawn is refused.
func (f *FoodField) Spawn(x, y float32, now time.Time) (FoodParticle, bool) {
	if len(f.Particles) >= f.cfg.MaxParticles {
		if !f.evictOldestEaten() {
			return FoodParticle{}, false
		}
	}
	types := max(f.cfg.Types, 1)
	p := FoodParticle{
		ID:        f.nextID,
		X:         x,
		Y:         y,
		Size:      float32(f.cfg.MinSize + f.rng.Float64()*(f.cfg.MaxSize-f.cfg.MinSize)),
		Type:      uint8(f.rng.Intn(types) + 1),
		CreatedAt: now,
	}
	f.nextID++
	f.Particles = append(f.Particles, p)
	return p, true
}

func (f *FoodField) evictOldestEaten() bool {
	for i := range f.Particles {
		if f.Particles[i].Eaten {
			f.Particles = append(f.Particles[:i], f.Particles[i+1:]...)
			return true
		}
	}
	return false
}

// Prune removes eaten particles and uneaten ones past their lifetime.
// Particles being eaten are kept until the consumption finishes.
// Returns the number removed.
func (f *FoodField) Prune(now time.Time) int {
	alive := 0
	for i := range f.Particles {
		p := &f.Particles[i]
		if p.Eaten {
			continue
		}
		if !p.BeingEaten && now.Sub(p.CreatedAt) >= f.removeAfter {
			continue
		}
		f.Particles[alive] = f.Particles[i]
		alive++
	}
	removed := len(f.Particles) - alive
	f.Particles = f.Particles[:alive]
	return removed
}

// Opacity returns how visible p is at now. Eaten particles are invisible.
func (f *FoodField) Opacity(p FoodParticle, now time.Time) float32 {
	if p.Eaten {
		return 0
	}
	if p.BeingEaten {
		return 1
	}
	age := now.Sub(p.CreatedAt)
	if age < f.fadeStart {
		return 1
	}
	if f.fadeDur <= 0 {
		return 0
	}
	o := 1 - float32(age-f.fadeStart)/float32(f.fadeDur)
	return max(o, 0)
}

// Uneaten counts particles that are neither eaten nor being eaten.
func (f *FoodField) Uneaten() int {
	n := 0
	for i := range f.Particles {
		if !f.Particles[i].Eaten && !f.Particles[i].BeingEaten {
			n++
		}
	}
	return n
}

// Clear removes all particles.
func (f *FoodField) Clear() {
	f.Particles = f.Particles[:0]
}
