package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/akorn123w/FishingInTheVoid/game"
	"github.com/akorn123w/FishingInTheVoid/progression"
	"github.com/akorn123w/FishingInTheVoid/systems"
)

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleValue  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMuted  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAvatar = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleSquid  = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleBarOn  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

var rarityColors = map[string]tcell.Color{
	"common":    tcell.ColorSilver,
	"uncommon":  tcell.ColorGreen,
	"rare":      tcell.ColorBlue,
	"epic":      tcell.ColorPurple,
	"legendary": tcell.ColorOrange,
}

// View draws snapshots onto a terminal screen.
type View struct {
	screen tcell.Screen
}

// NewView creates a view over screen.
func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

func (v *View) text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// avatar returns the glyph rows for the current stage.
func avatar(snap game.Snapshot) []string {
	switch snap.Stage {
	case progression.Dormant:
		return []string{"o"}
	case progression.Growing:
		return []string{" _ ", "(o)", " - "}
	case progression.PreEvolution:
		return []string{" _ ", "( )", " - "}
	case progression.Dividing:
		n := min(snap.Cells, 16)
		return []string{strings.Repeat("()", n)}
	case progression.Morphing:
		return []string{" ~~ ", "(  )", " ~~ "}
	}
	eyes := "o o"
	switch snap.Expression {
	case systems.Blinking:
		eyes = "- -"
	case systems.Sucking:
		eyes = "o.o"
	}
	return []string{"  /\\  ", " /  \\ ", "| " + eyes + "|", " \\__/ ", " ||||| "}
}

// Draw renders snap and shows the screen.
func (v *View) Draw(snap game.Snapshot) {
	v.screen.Clear()
	w, h := v.screen.Size()

	v.text(1, 0, "Fishing in the Void", styleTitle)
	x := v.text(1, 1, "Clicks: ", styleText)
	x = v.text(x, 1, fmt.Sprintf("%d", snap.ClickCount), styleValue)
	x = v.text(x+2, 1, "Per click: ", styleText)
	x = v.text(x, 1, fmt.Sprintf("%d", snap.Yield), styleValue)
	x = v.text(x+2, 1, "Stage: ", styleText)
	v.text(x, 1, snap.Stage.String(), styleValue)

	row := 2
	if snap.AutoClickers > 0 {
		v.text(1, row, fmt.Sprintf("Auto: %d/s", snap.AutoClickers), styleText)
		row++
	}
	if snap.BoostRemaining > 0 {
		v.text(1, row, fmt.Sprintf("Boost x%.1f (%.0fs)", snap.TempMultiplier, snap.BoostRemaining), styleText)
		row++
	}
	if snap.Paused {
		v.text(1, row, "PAUSED", styleTitle)
	}

	// Avatar in the middle of the play area left of the store
	style := styleAvatar
	if snap.Stage == progression.SquidForm {
		style = styleSquid
	}
	glyphs := avatar(snap)
	cx, cy := (w-30)/2, h/2-len(glyphs)/2
	for i, line := range glyphs {
		v.text(max(cx-len(line)/2, 0), cy+i, line, style)
	}

	if snap.Stage == progression.SquidForm {
		v.drawSatiety(1, h-3, 30, snap.Satiety)
		v.text(1, h-2, fmt.Sprintf("Food: %d", snap.Food), styleText)
	}

	v.drawStore(max(w-30, 0), 3, snap.Store)
	v.text(1, h-1, "[space] click  [1-9] buy  [q] quit", styleMuted)
	v.screen.Show()
}

func (v *View) drawSatiety(x, y, width int, s systems.Satiety) {
	x = v.text(x, y, fmt.Sprintf("Satiety L%d ", s.Level), styleText)
	bar := width - 12
	filled := int(s.Fraction() * float64(bar))
	for i := 0; i < bar; i++ {
		if i < filled {
			v.screen.SetContent(x+i, y, '#', nil, styleBarOn)
		} else {
			v.screen.SetContent(x+i, y, '.', nil, styleMuted)
		}
	}
}

func (v *View) drawStore(x, y int, entries []game.StoreEntry) {
	v.text(x, y, "Store", styleTitle)
	if len(entries) == 0 {
		v.text(x, y+1, "keep clicking...", styleMuted)
		return
	}
	for i, e := range entries {
		if i >= 9 {
			break
		}
		style := styleMuted
		if e.Affordable && !e.Maxed {
			style = tcell.StyleDefault.Foreground(rarityColors[e.Rarity])
		}
		cost := fmt.Sprintf("%d", e.NextCost)
		if e.Maxed {
			cost = "MAX"
		}
		v.text(x, y+1+i, fmt.Sprintf("%d %-16s %d/%d %s", i+1, e.Name, e.Level, e.MaxLevel, cost), style)
	}
}
