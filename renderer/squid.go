package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/systems"
)

// SquidView is the squid's state for one frame.
type SquidView struct {
	Pos        rl.Vector2
	Size       float32 // Mantle height in pixels
	Alpha      float32
	Expression systems.Expression
	Time       float32 // Seconds, drives the tentacle sway
}

const tentacles = 6

// SquidRenderer draws the squid avatar.
type SquidRenderer struct{}

// NewSquidRenderer creates a new squid renderer.
func NewSquidRenderer() *SquidRenderer {
	return &SquidRenderer{}
}

// Draw renders the squid.
func (r *SquidRenderer) Draw(v SquidView) {
	if v.Alpha <= 0 {
		return
	}
	body := fade(squidTint, v.Alpha)
	dark := fade(rl.Color{R: 110, G: 50, B: 140, A: 255}, v.Alpha)

	h := v.Size
	w := h * 0.6
	top := v.Pos.Y - h*0.55

	// Tentacles hang below the mantle
	for i := 0; i < tentacles; i++ {
		x0 := v.Pos.X - w*0.4 + w*0.8*float32(i)/float32(tentacles-1)
		y0 := v.Pos.Y + h*0.3
		sway := float32(math.Sin(float64(v.Time*2+float32(i)*0.9))) * w * 0.12
		mid := rl.Vector2{X: x0 - sway, Y: y0 + h*0.25}
		end := rl.Vector2{X: x0 + sway, Y: y0 + h*0.5}
		rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, mid, w*0.08, body)
		rl.DrawLineEx(mid, end, w*0.06, body)
	}

	rl.DrawEllipse(int32(v.Pos.X), int32(v.Pos.Y), w/2, h*0.45, body)
	rl.DrawTriangle(
		rl.Vector2{X: v.Pos.X, Y: top - h*0.15},
		rl.Vector2{X: v.Pos.X - w/2, Y: top + h*0.2},
		rl.Vector2{X: v.Pos.X + w/2, Y: top + h*0.2},
		body,
	)

	r.drawFace(v, w, h, dark)
}

func (r *SquidRenderer) drawFace(v SquidView, w, h float32, ink rl.Color) {
	eyeY := v.Pos.Y + h*0.05
	eyeDX := w * 0.2
	eyeR := w * 0.09
	white := fade(rl.RayWhite, v.Alpha)

	for _, dx := range []float32{-eyeDX, eyeDX} {
		eye := rl.Vector2{X: v.Pos.X + dx, Y: eyeY}
		switch v.Expression {
		case systems.Blinking:
			rl.DrawLineEx(rl.Vector2{X: eye.X - eyeR, Y: eye.Y}, rl.Vector2{X: eye.X + eyeR, Y: eye.Y}, 2, ink)
		default:
			rl.DrawCircleV(eye, eyeR, white)
			rl.DrawCircleV(eye, eyeR*0.5, ink)
		}
	}

	mouth := rl.Vector2{X: v.Pos.X, Y: eyeY + h*0.15}
	if v.Expression == systems.Sucking {
		rl.DrawCircleV(mouth, w*0.07, ink)
		return
	}
	rl.DrawLineEx(rl.Vector2{X: mouth.X - w*0.06, Y: mouth.Y}, rl.Vector2{X: mouth.X + w*0.06, Y: mouth.Y}, 2, ink)
}

// Food tints, indexed by type.
var foodColors = []rl.Color{
	{R: 230, G: 200, B: 110, A: 255},
	{R: 200, G: 140, B: 90, A: 255},
	{R: 150, G: 210, B: 120, A: 255},
	{R: 230, G: 150, B: 170, A: 255},
}

// FoodRenderer draws food particles. Particles being eaten slide toward
// the squid as consumption progresses.
type FoodRenderer struct{}

// NewFoodRenderer creates a new food renderer.
func NewFoodRenderer() *FoodRenderer {
	return &FoodRenderer{}
}

// Draw renders food. opacity reports each particle's visibility.
func (r *FoodRenderer) Draw(space Space, food []systems.FoodParticle, opacity func(systems.FoodParticle) float32, squid rl.Vector2, progress float32) {
	for i := range food {
		p := food[i]
		a := opacity(p)
		if a <= 0 {
			continue
		}
		pos := space.ToScreen(p.X, p.Y)
		size := p.Size
		if p.BeingEaten {
			pos = rl.Vector2{X: lerp(pos.X, squid.X, progress), Y: lerp(pos.Y, squid.Y, progress)}
			size *= 1 - progress*0.7
		}
		c := foodColors[int(max(p.Type, 1)-1)%len(foodColors)]
		rl.DrawCircleV(pos, size, fade(c, a))
	}
}
