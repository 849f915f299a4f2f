package renderer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestSpaceRoundTrip(t *testing.T) {
	s := NewSpace(1200, 800)

	v := s.ToScreen(50, 25)
	if v.X != 600 || v.Y != 200 {
		t.Fatalf("ToScreen(50, 25) = %v", v)
	}
	x, y := s.ToPercent(v.X, v.Y)
	if x != 50 || y != 25 {
		t.Errorf("ToPercent = (%v, %v), want (50, 25)", x, y)
	}
}

func TestSpaceToPercentClamps(t *testing.T) {
	s := NewSpace(100, 100)
	x, y := s.ToPercent(-10, 250)
	if x != 0 || y != 100 {
		t.Errorf("got (%v, %v), want (0, 100)", x, y)
	}

	var zero Space
	if x, y := zero.ToPercent(5, 5); x != 0 || y != 0 {
		t.Errorf("zero space = (%v, %v)", x, y)
	}
}

func TestSpaceLen(t *testing.T) {
	s := NewSpace(1200, 800)
	if got := s.Len(10); got != 80 {
		t.Errorf("Len(10) = %v, want 80", got)
	}
}

func TestFadeAndLerp(t *testing.T) {
	c := fade(rl.Color{R: 10, G: 20, B: 30, A: 200}, 0.5)
	if c.A != 100 || c.R != 10 {
		t.Errorf("fade = %v", c)
	}
	if fade(c, 2).A != c.A {
		t.Error("alpha above 1 should clamp")
	}

	mid := lerpColor(rl.Color{A: 0}, rl.Color{R: 200, A: 255}, 0.5)
	if mid.R != 100 || mid.A != 127 {
		t.Errorf("lerpColor = %v", mid)
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		extent, limit, want float32
	}{
		{100, 400, 1},
		{800, 400, 0.5},
		{0, 400, 1},
	}
	for _, tt := range tests {
		if got := FitScale(tt.extent, tt.limit); got != tt.want {
			t.Errorf("FitScale(%v, %v) = %v, want %v", tt.extent, tt.limit, got, tt.want)
		}
	}
}
