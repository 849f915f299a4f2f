package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/version"
)

// OutdatedModal covers the whole screen when the version gate fails.
// Its only action is Close.
type OutdatedModal struct {
	renderer *Renderer
	result   version.Result
}

// NewOutdatedModal creates a modal for a failed version check.
func NewOutdatedModal(res version.Result) *OutdatedModal {
	return &OutdatedModal{renderer: NewRenderer(), result: res}
}

// Message returns the body text for the modal.
func (m *OutdatedModal) Message() string {
	if m.result.Err != nil {
		return "Could not verify the game version. Please check your connection."
	}
	return "A newer version (" + m.result.Latest + ") is available. You have " + m.result.Local + "."
}

// Draw renders the modal and reports whether Close was pressed.
func (m *OutdatedModal) Draw(screenW, screenH int32) bool {
	r := m.renderer
	t := r.Theme

	rl.DrawRectangle(0, 0, screenW, screenH, rl.Color{A: 200})

	const w, h = 420, 150
	x, y := AnchorCenter.Origin(w, h, screenW, screenH, 0)
	r.DrawPanel(x, y, w, h)
	r.DrawSectionHeader(x+t.Padding, y+t.Padding, "Update required")
	rl.DrawText(m.Message(), x+t.Padding, y+t.Padding+t.LineHeight*2, t.FontSize, t.LabelColor)

	btn := rl.Rectangle{
		X:      float32(x + w - 100 - t.Padding),
		Y:      float32(y + h - t.ButtonHeight - t.Padding),
		Width:  100,
		Height: float32(t.ButtonHeight),
	}
	return gui.Button(btn, "Close")
}
