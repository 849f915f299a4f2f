package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/systems"
)

// ColonyView is everything needed to draw the cell avatar for one frame.
type ColonyView struct {
	Cells    []systems.Cell
	Center   rl.Vector2 // Screen position of the colony centre
	Diameter float32    // Full-grown cell diameter in pixels

	Growth    float32 // Dormant size fraction
	Organelle float32 // Interior opacity
	Morph     float32 // 0 = colony, 1 = fully resolved into the squid
}

var (
	membraneColor  = rl.Color{R: 120, G: 220, B: 200, A: 255}
	cytoplasmColor = rl.Color{R: 60, G: 150, B: 140, A: 140}
	nucleusColor   = rl.Color{R: 200, G: 120, B: 200, A: 255}
	squidTint      = rl.Color{R: 170, G: 90, B: 200, A: 255}
)

// minCellFraction is the dormant cell size before any growth.
const minCellFraction = 0.35

// ColonyRenderer draws the dividing cell colony.
type ColonyRenderer struct {
	// MaxExtent is the largest share of the shorter screen side the colony may cover.
	MaxExtent float32
}

// NewColonyRenderer creates a renderer that keeps the colony within 60% of the screen.
func NewColonyRenderer() *ColonyRenderer {
	return &ColonyRenderer{MaxExtent: 0.6}
}

// FitScale returns the zoom that keeps a colony spanning extent pixels
// within limit pixels. It never enlarges.
func FitScale(extent, limit float32) float32 {
	if extent <= limit || extent <= 0 {
		return 1
	}
	return limit / extent
}

// Draw renders v. Nothing is drawn once the morph completes.
func (r *ColonyRenderer) Draw(space Space, v ColonyView) {
	if v.Morph >= 1 || len(v.Cells) == 0 {
		return
	}

	radius := v.Diameter / 2
	if len(v.Cells) == 1 {
		radius *= lerp(minCellFraction, 1, v.Growth)
	}

	var cx, cy float32
	for _, c := range v.Cells {
		cx += c.X
		cy += c.Y
	}
	cx /= float32(len(v.Cells))
	cy /= float32(len(v.Cells))

	minX, minY, maxX, maxY := float32(0), float32(0), float32(0), float32(0)
	for i, c := range v.Cells {
		rr := radius * c.Scale
		if i == 0 {
			minX, minY, maxX, maxY = c.X-rr, c.Y-rr, c.X+rr, c.Y+rr
			continue
		}
		minX, minY = min(minX, c.X-rr), min(minY, c.Y-rr)
		maxX, maxY = max(maxX, c.X+rr), max(maxY, c.Y+rr)
	}
	zoom := FitScale(max(maxX-minX, maxY-minY), min(space.W, space.H)*r.MaxExtent)

	alpha := 1 - v.Morph
	tint := v.Morph
	for _, c := range v.Cells {
		// Cells collapse toward the colony centre as the squid takes shape
		ox := lerp(c.X-cx, 0, v.Morph) * zoom
		oy := lerp(c.Y-cy, 0, v.Morph) * zoom
		pos := rl.Vector2{X: v.Center.X + ox, Y: v.Center.Y + oy}
		rr := radius * c.Scale * zoom

		rl.DrawCircleV(pos, rr, fade(lerpColor(cytoplasmColor, squidTint, tint), alpha))
		rl.DrawCircleLines(int32(pos.X), int32(pos.Y), rr, fade(lerpColor(membraneColor, squidTint, tint), alpha))

		if v.Organelle > 0 {
			oa := alpha * v.Organelle
			rl.DrawCircleV(pos, rr*0.3, fade(nucleusColor, oa))
			rl.DrawCircleV(rl.Vector2{X: pos.X - rr*0.45, Y: pos.Y + rr*0.2}, rr*0.1, fade(membraneColor, oa))
			rl.DrawCircleV(rl.Vector2{X: pos.X + rr*0.4, Y: pos.Y - rr*0.35}, rr*0.08, fade(membraneColor, oa))
		}
	}
}
