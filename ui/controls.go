package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DevShortcuts is the legend for the developer key bindings.
var DevShortcuts = []struct{ Keys, Action string }{
	{"Ctrl+C", "add 1000 clicks"},
	{"Ctrl+R", "reset clicks"},
	{"Ctrl+M", "toggle x100"},
	{"Space", "pause"},
}

// ControlsPanel renders the overlay toggles, the volume slider and, in dev
// mode, the shortcut legend.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	Dev      bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the volume after any slider change.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, volume float32) float32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	rows := 0
	for _, cat := range categories {
		rows += len(overlays.ByCategory(cat)) + 1
	}
	if c.Dev {
		rows += len(DevShortcuts) + 1
	}
	panelHeight := int32(rows)*lineHeight + padding*3 + lineHeight*3

	r.DrawPanel(c.x, c.y, c.width, panelHeight)
	y := c.y + padding

	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	if c.Dev {
		rl.DrawText("Dev", c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, s := range DevShortcuts {
			r.DrawLabelValue(c.x+padding, y, s.Keys, s.Action)
			y += lineHeight
		}
		y += 4
	}

	rl.DrawText("Volume", c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	return gui.SliderBar(
		rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: float32(c.width - padding*2 - 40), Height: 14},
		"", fmt.Sprintf("%.0f%%", volume*100),
		volume, 0, 1,
	)
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "panels":
		return "Panels"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
