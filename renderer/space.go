package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Space maps the percent coordinates used by the game onto the screen.
type Space struct {
	W, H float32
}

// NewSpace creates a mapping for a w by h pixel screen.
func NewSpace(w, h float32) Space {
	return Space{W: w, H: h}
}

// ToScreen converts a percent position to pixels.
func (s Space) ToScreen(x, y float32) rl.Vector2 {
	return rl.Vector2{X: x * s.W / 100, Y: y * s.H / 100}
}

// ToPercent converts a pixel position to percent space, clamped to [0, 100].
func (s Space) ToPercent(px, py float32) (x, y float32) {
	if s.W <= 0 || s.H <= 0 {
		return 0, 0
	}
	return clampPct(px / s.W * 100), clampPct(py / s.H * 100)
}

// Len converts a percent length to pixels against the shorter screen side.
func (s Space) Len(pct float32) float32 {
	return pct * min(s.W, s.H) / 100
}

func clampPct(v float32) float32 {
	return min(max(v, 0), 100)
}

// fade scales the alpha channel of c by a in [0, 1].
func fade(c rl.Color, a float32) rl.Color {
	a = min(max(a, 0), 1)
	c.A = uint8(float32(c.A) * a)
	return c
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	t = min(max(t, 0), 1)
	return rl.Color{
		R: uint8(lerp(float32(a.R), float32(b.R), t)),
		G: uint8(lerp(float32(a.G), float32(b.G), t)),
		B: uint8(lerp(float32(a.B), float32(b.B), t)),
		A: uint8(lerp(float32(a.A), float32(b.A), t)),
	}
}
