package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/systems"
)

// ParticleRenderer renders effect particles.
type ParticleRenderer struct {
	font rl.Font
}

// NewParticleRenderer creates a new particle renderer using the default font.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw(space Space, particles []systems.EffectParticle) {
	if r.font.Texture.ID == 0 {
		r.font = rl.GetFontDefault()
	}
	for i := range particles {
		p := &particles[i]
		lifeRatio := p.Alpha()
		pos := space.ToScreen(p.X, p.Y)

		switch p.Type {
		case systems.EffectFloater:
			size := p.Size * 6
			w := rl.MeasureTextEx(r.font, p.Text, size, 1).X
			rl.DrawTextEx(r.font, p.Text, rl.Vector2{X: pos.X - w/2, Y: pos.Y}, size, 1,
				rl.Color{R: 255, G: 235, B: 150, A: uint8(lifeRatio * 255)})
		case systems.EffectSpark:
			size := max(space.Len(p.Size)*lifeRatio, 0.5)
			rl.DrawCircleV(pos, size, rl.Color{R: 140, G: 230, B: 255, A: uint8(lifeRatio * 220)})
		case systems.EffectCrumb:
			size := max(space.Len(p.Size)*lifeRatio, 0.5)
			rl.DrawCircleV(pos, size, rl.Color{R: 210, G: 160, B: 90, A: uint8(lifeRatio * 200)})
		}
	}
}
