package systems

import (
	"math"
	"math/rand"
	"strconv"
)

// EffectType identifies the kind of effect particle.
type EffectType uint8

const (
	EffectFloater EffectType = iota // Rising "+N" after a click
	EffectSpark                     // Burst when cells divide
	EffectCrumb                     // Bits scattered when food is eaten
)

// EffectParticle is a short-lived visual feedback particle in percent space.
type EffectParticle struct {
	X, Y       float32
	VelX, VelY float32
	Life       int32
	MaxLife    int32
	Type       EffectType
	Size       float32
	Text       string // Floaters only
}

// Alpha returns remaining life as a fraction.
func (p *EffectParticle) Alpha() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float32(p.Life) / float32(p.MaxLife)
}

// EffectSystem manages effect particles for visual feedback.
type EffectSystem struct {
	Particles    []EffectParticle
	maxParticles int
	rng          *rand.Rand
}

// NewEffectSystem creates an empty effect system.
func NewEffectSystem(rng *rand.Rand) *EffectSystem {
	return &EffectSystem{
		Particles:    make([]EffectParticle, 0, 256),
		maxParticles: 256,
		rng:          rng,
	}
}

// Update advances every particle by one tick and drops expired ones.
func (s *EffectSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case EffectFloater:
			// Rise and slow down
			p.VelY *= 0.96
		case EffectSpark:
			p.VelX *= 0.9
			p.VelY *= 0.9
		case EffectCrumb:
			// Slight gravity
			p.VelY += 0.01
		}

		p.X += p.VelX
		p.Y += p.VelY

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// EmitFloater shows the yield of a click at (x, y).
func (s *EffectSystem) EmitFloater(x, y float32, amount int64) {
	if len(s.Particles) >= s.maxParticles {
		return
	}
	s.Particles = append(s.Particles, EffectParticle{
		X:       x + (s.rng.Float32()-0.5)*2,
		Y:       y,
		VelX:    (s.rng.Float32() - 0.5) * 0.1,
		VelY:    -0.6,
		Life:    20,
		MaxLife: 20,
		Type:    EffectFloater,
		Size:    3,
		Text:    "+" + strconv.FormatInt(amount, 10),
	})
}

// EmitBurst throws n particles of the given type outward from (x, y).
func (s *EffectSystem) EmitBurst(x, y float32, n int, t EffectType) {
	for i := 0; i < n && len(s.Particles) < s.maxParticles; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := 0.3 + s.rng.Float32()*0.5
		sin, cos := math.Sincos(angle)
		life := int32(12 + s.rng.Intn(12))
		s.Particles = append(s.Particles, EffectParticle{
			X:       x,
			Y:       y,
			VelX:    float32(cos) * speed,
			VelY:    float32(sin) * speed,
			Life:    life,
			MaxLife: life,
			Type:    t,
			Size:    0.4 + s.rng.Float32()*0.4,
		})
	}
}

// Count returns the current number of active particles.
func (s *EffectSystem) Count() int {
	return len(s.Particles)
}
