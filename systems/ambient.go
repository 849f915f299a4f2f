package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/akorn123w/FishingInTheVoid/components"
	"github.com/akorn123w/FishingInTheVoid/config"
)

const (
	worldSize   = 100 // Percent space wraps at this value
	pushEpsilon = 0.001
	maxCatchUp  = 5 // Ticks simulated per Update at most
	edgeSpread  = 0.5
)

// AmbientView is a render snapshot of one ambient entity.
type AmbientView struct {
	Kind    components.Kind
	X, Y    float32
	Size    float32
	Type    uint8
	Opacity float32
}

// AmbientSystem moves the cosmetic background: drifting particles that react
// to clicks, and background cells that fade in once the avatar morphs.
type AmbientSystem struct {
	world *ecs.World

	particleMapper *ecs.Map4[components.Position, components.Drift, components.Push, components.Body]
	particleFilter *ecs.Filter4[components.Position, components.Drift, components.Push, components.Body]
	cellMapper     *ecs.Map4[components.Position, components.Drift, components.Body, components.Fade]
	cellFilter     *ecs.Filter4[components.Position, components.Drift, components.Body, components.Fade]

	pcfg config.ParticlesConfig
	bcfg config.BackgroundConfig
	tick time.Duration
	rng  *rand.Rand

	lastTick          time.Time
	started           bool
	backgroundSpawned bool
	particleCount     int
	cellCount         int
}

// NewAmbientSystem creates the ambient world and seeds the initial particles.
func NewAmbientSystem(cfg *config.Config, rng *rand.Rand) *AmbientSystem {
	world := ecs.NewWorld()
	s := &AmbientSystem{
		world: world,
		particleMapper: ecs.NewMap4[
			components.Position, components.Drift, components.Push, components.Body,
		](world),
		particleFilter: ecs.NewFilter4[
			components.Position, components.Drift, components.Push, components.Body,
		](world),
		cellMapper: ecs.NewMap4[
			components.Position, components.Drift, components.Body, components.Fade,
		](world),
		cellFilter: ecs.NewFilter4[
			components.Position, components.Drift, components.Body, components.Fade,
		](world),
		pcfg: cfg.Particles,
		bcfg: cfg.Background,
		tick: cfg.Derived.ParticleTick,
		rng:  rng,
	}

	for i := 0; i < s.pcfg.InitialCount; i++ {
		pos := components.Position{X: s.rng.Float32() * worldSize, Y: s.rng.Float32() * worldSize}
		drift := components.Drift{
			Angle: s.rng.Float32() * 2 * math.Pi,
			Speed: s.between(s.pcfg.MinSpeed, s.pcfg.MaxSpeed),
		}
		body := components.Body{Kind: components.KindParticle, Size: s.between(s.pcfg.MinSize, s.pcfg.MaxSize), Type: 1}
		s.particleMapper.NewEntity(&pos, &drift, &components.Push{}, &body)
		s.particleCount++
	}
	return s
}

func (s *AmbientSystem) between(lo, hi float64) float32 {
	return float32(lo + s.rng.Float64()*(hi-lo))
}

// Counts returns the number of ambient particles and background cells.
func (s *AmbientSystem) Counts() (particles, cells int) {
	return s.particleCount, s.cellCount
}

// BackgroundSpawned reports whether the background cells exist.
func (s *AmbientSystem) BackgroundSpawned() bool { return s.backgroundSpawned }

// SpawnBackground adds the background cells, entering from random screen edges.
// It only has an effect the first time it is called.
func (s *AmbientSystem) SpawnBackground() bool {
	if s.backgroundSpawned {
		return false
	}
	s.backgroundSpawned = true

	types := max(s.bcfg.Types, 1)
	for i := 0; i < s.bcfg.CellCount; i++ {
		var pos components.Position
		var inward float32
		along := s.rng.Float32() * worldSize
		switch s.rng.Intn(4) {
		case 0: // top
			pos, inward = components.Position{X: along, Y: 0}, math.Pi/2
		case 1: // right
			pos, inward = components.Position{X: worldSize - 0.01, Y: along}, math.Pi
		case 2: // bottom
			pos, inward = components.Position{X: along, Y: worldSize - 0.01}, -math.Pi/2
		default: // left
			pos, inward = components.Position{X: 0, Y: along}, 0
		}
		drift := components.Drift{
			Angle: inward + (s.rng.Float32()-0.5)*edgeSpread*math.Pi,
			Speed: s.between(s.bcfg.MinSpeed, s.bcfg.MaxSpeed),
		}
		body := components.Body{
			Kind: components.KindBackgroundCell,
			Size: 1,
			Type: uint8(s.rng.Intn(types) + 1),
		}
		fade := components.Fade{Max: float32(s.bcfg.MaxOpacity), Step: float32(s.bcfg.OpacityStep)}
		s.cellMapper.NewEntity(&pos, &drift, &body, &fade)
		s.cellCount++
	}
	return true
}

// Push applies a radial impulse from (x, y) to nearby particles.
// Strength falls off linearly to zero at the push radius.
func (s *AmbientSystem) Push(x, y float32) {
	radius := float32(s.pcfg.PushRadius)
	strength := float32(s.pcfg.PushStrength)
	if radius <= 0 {
		return
	}
	query := s.particleFilter.Query()
	for query.Next() {
		pos, _, push, _ := query.Get()
		dx := pos.X - x
		dy := pos.Y - y
		d := distance(x, y, pos.X, pos.Y)
		if d >= radius || d == 0 {
			continue
		}
		f := strength * (1 - d/radius)
		push.VX += dx / d * f
		push.VY += dy / d * f
	}
}

// Update advances the ambient scene by the ticks elapsed since the last call.
// Returns the number of ticks simulated.
func (s *AmbientSystem) Update(now time.Time) int {
	if !s.started {
		s.started = true
		s.lastTick = now
		return 0
	}
	if s.tick <= 0 || now.Before(s.lastTick) {
		return 0
	}
	ticks := int(now.Sub(s.lastTick) / s.tick)
	if ticks == 0 {
		return 0
	}
	s.lastTick = s.lastTick.Add(time.Duration(ticks) * s.tick)
	ticks = min(ticks, maxCatchUp)
	for i := 0; i < ticks; i++ {
		s.Step()
	}
	return ticks
}

// Step advances the ambient scene by one tick.
func (s *AmbientSystem) Step() {
	jitter := float32(s.pcfg.AngleJitter)
	decay := float32(s.pcfg.PushDecay)

	pq := s.particleFilter.Query()
	for pq.Next() {
		pos, drift, push, _ := pq.Get()
		drift.Angle += (s.rng.Float32() - 0.5) * jitter
		sin, cos := math.Sincos(float64(drift.Angle))
		pos.X = wrap(pos.X + float32(cos)*drift.Speed + push.VX)
		pos.Y = wrap(pos.Y + float32(sin)*drift.Speed + push.VY)

		push.VX *= decay
		push.VY *= decay
		if abs32(push.VX) < pushEpsilon {
			push.VX = 0
		}
		if abs32(push.VY) < pushEpsilon {
			push.VY = 0
		}
	}

	cq := s.cellFilter.Query()
	for cq.Next() {
		pos, drift, _, fade := cq.Get()
		drift.Angle += (s.rng.Float32() - 0.5) * jitter
		sin, cos := math.Sincos(float64(drift.Angle))
		pos.X = wrap(pos.X + float32(cos)*drift.Speed)
		pos.Y = wrap(pos.Y + float32(sin)*drift.Speed)
		fade.Opacity = min(fade.Opacity+fade.Step, fade.Max)
	}
}

// AppendViews appends a snapshot of every ambient entity to dst.
func (s *AmbientSystem) AppendViews(dst []AmbientView) []AmbientView {
	pq := s.particleFilter.Query()
	for pq.Next() {
		pos, _, _, body := pq.Get()
		dst = append(dst, AmbientView{
			Kind: body.Kind, X: pos.X, Y: pos.Y, Size: body.Size, Type: body.Type, Opacity: 1,
		})
	}
	cq := s.cellFilter.Query()
	for cq.Next() {
		pos, _, body, fade := cq.Get()
		dst = append(dst, AmbientView{
			Kind: body.Kind, X: pos.X, Y: pos.Y, Size: body.Size, Type: body.Type, Opacity: fade.Opacity,
		})
	}
	return dst
}

// MaxPush returns the largest push magnitude currently applied to any particle.
func (s *AmbientSystem) MaxPush() float32 {
	var m float32
	query := s.particleFilter.Query()
	for query.Next() {
		_, _, push, _ := query.Get()
		m = max(m, abs32(push.VX), abs32(push.VY))
	}
	return m
}
