package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/game"
)

// StorePanel lists the unlocked store items as buy buttons down the right edge.
type StorePanel struct {
	renderer *Renderer
	width    int32
}

// NewStorePanel creates a store panel of the given width.
func NewStorePanel(width int32) *StorePanel {
	return &StorePanel{renderer: NewRenderer(), width: width}
}

// Width returns the panel width in pixels.
func (s *StorePanel) Width() int32 { return s.width }

// ButtonLabel is the text shown on an entry's buy button.
func ButtonLabel(e game.StoreEntry) string {
	if e.Maxed {
		return fmt.Sprintf("%s  MAX", e.Name)
	}
	return fmt.Sprintf("%s  %d/%d  %s", e.Name, e.Level, e.MaxLevel, FormatCount(e.NextCost))
}

// Layout returns the button rectangles for n entries in a panel whose
// top-left corner is (x, y).
func (s *StorePanel) Layout(n int, x, y int32) []rl.Rectangle {
	t := s.renderer.Theme
	out := make([]rl.Rectangle, n)
	top := y + t.Padding + t.LineHeight + 4
	for i := range out {
		out[i] = rl.Rectangle{
			X:      float32(x + t.Padding),
			Y:      float32(top + int32(i)*(t.ButtonHeight+6)),
			Width:  float32(s.width - t.Padding*2),
			Height: float32(t.ButtonHeight),
		}
	}
	return out
}

// Contains reports whether a screen point lies over the panel.
func (s *StorePanel) Contains(px, py float32, screenW int32) bool {
	return px >= float32(screenW-s.width)
}

// Draw renders the panel and returns the id of the item whose button was
// pressed this frame.
func (s *StorePanel) Draw(entries []game.StoreEntry, screenW, screenH int32) (string, bool) {
	r := s.renderer
	t := r.Theme
	x := screenW - s.width
	r.DrawPanel(x, 0, s.width, screenH)
	r.DrawSectionHeader(x+t.Padding, t.Padding, "Store")

	if len(entries) == 0 {
		rl.DrawText("Keep clicking...", x+t.Padding, t.Padding+t.LineHeight+4, t.FontSize, t.MutedColor)
		return "", false
	}

	mouse := rl.GetMousePosition()
	var bought string
	var hovered *game.StoreEntry
	for i, rect := range s.Layout(len(entries), x, 0) {
		e := &entries[i]

		// Rarity stripe
		rl.DrawRectangle(int32(rect.X)-4, int32(rect.Y), 3, int32(rect.Height), t.RarityColor(e.Rarity))

		disabled := e.Maxed || !e.Affordable
		if disabled {
			gui.Disable()
		}
		if gui.Button(rect, ButtonLabel(*e)) && !disabled {
			bought = e.ID
		}
		if disabled {
			gui.Enable()
		}
		if rl.CheckCollisionPointRec(mouse, rect) {
			hovered = e
		}
	}
	if hovered != nil {
		s.drawTooltip(*hovered, mouse, screenW)
	}
	return bought, bought != ""
}

func (s *StorePanel) drawTooltip(e game.StoreEntry, mouse rl.Vector2, screenW int32) {
	r := s.renderer
	t := r.Theme
	lines := []string{e.Kind + " / " + e.Rarity}
	if e.Desc != "" {
		lines = append(lines, e.Desc)
	}

	w := int32(0)
	for _, l := range lines {
		w = max(w, rl.MeasureText(l, t.FontSize))
	}
	w += t.Padding * 2
	h := int32(len(lines))*t.LineHeight + t.Padding*2
	x := min(int32(mouse.X)-w-8, screenW-s.width-w-4)
	y := int32(mouse.Y)

	r.DrawPanel(x, y, w, h)
	for i, l := range lines {
		c := t.LabelColor
		if i == 0 {
			c = t.RarityColor(e.Rarity)
		}
		rl.DrawText(l, x+t.Padding, y+t.Padding+int32(i)*t.LineHeight, t.FontSize, c)
	}
}
