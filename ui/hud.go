package ui

import (
	"fmt"
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/game"
	"github.com/akorn123w/FishingInTheVoid/progression"
	"github.com/akorn123w/FishingInTheVoid/systems"
	"github.com/akorn123w/FishingInTheVoid/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Snap game.Snapshot
	CPS  float64 // Manual clicks over the last second
	FPS  int32
}

func hud(data any) *HUDData { return data.(*HUDData) }

// HUDSections describes the HUD layout.
func HUDSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "clicks",
			Title: "Clicks",
			Fields: []FieldDescriptor{
				{ID: "count", Label: "Count", TextGetter: func(d any) string { return FormatCount(hud(d).Snap.ClickCount) }},
				{ID: "yield", Label: "Per click", TextGetter: func(d any) string { return FormatCount(hud(d).Snap.Yield) }},
				{ID: "cps", Label: "CPS", Format: "%.1f", Getter: func(d any) float32 { return float32(hud(d).CPS) }},
				{
					ID: "auto", Label: "Auto", Format: "%.0f/s",
					Getter:  func(d any) float32 { return float32(hud(d).Snap.AutoClickers) },
					Visible: func(d any) bool { return hud(d).Snap.AutoClickers > 0 },
				},
				{
					ID: "boost", Label: "Boost",
					TextGetter: func(d any) string {
						s := hud(d).Snap
						return fmt.Sprintf("x%.1f %.0fs", s.TempMultiplier, s.BoostRemaining)
					},
					Visible: func(d any) bool { return hud(d).Snap.BoostRemaining > 0 },
				},
				{ID: "stage", Label: "Stage", TextGetter: func(d any) string { return hud(d).Snap.Stage.String() }},
			},
		},
		{
			ID:      "squid",
			Title:   "Squid",
			Visible: func(d any) bool { return hud(d).Snap.Stage == progression.SquidForm },
			Fields: []FieldDescriptor{
				{
					ID: "satiety", Label: "Satiety", Widget: WidgetBar,
					Getter: func(d any) float32 { return float32(hud(d).Snap.Satiety.Fraction()) },
				},
				{
					ID: "level", Label: "Level",
					TextGetter: func(d any) string {
						s := hud(d).Snap.Satiety
						return fmt.Sprintf("%d (%.1f / %.1f)", s.Level, s.Current, s.Max)
					},
				},
				{ID: "food", Label: "Food", Format: "%.0f", Getter: func(d any) float32 { return float32(hud(d).Snap.Food) }},
				{
					ID: "mood", Label: "Mood",
					TextGetter: func(d any) string {
						if hud(d).Snap.Feeding {
							return systems.Sucking.String()
						}
						return hud(d).Snap.Expression.String()
					},
				},
			},
		},
		{
			ID:      "dev",
			Title:   "Dev",
			Visible: func(d any) bool { s := hud(d).Snap; return s.Paused || s.DevMultiplier > 1 },
			Fields: []FieldDescriptor{
				{ID: "mult", Label: "Multiplier", Format: "x%.0f", Getter: func(d any) float32 { return float32(hud(d).Snap.DevMultiplier) }},
				{
					ID: "paused", Label: "State", TextGetter: func(any) string { return "PAUSED" },
					Visible: func(d any) bool { return hud(d).Snap.Paused },
				},
			},
		},
	}
}

// FormatCount abbreviates large counts: 1234 -> "1,234", 1.5M -> "1.50M".
func FormatCount(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	var s string
	switch {
	case n >= 1_000_000_000:
		s = fmt.Sprintf("%.2fB", float64(n)/1e9)
	case n >= 1_000_000:
		s = fmt.Sprintf("%.2fM", float64(n)/1e6)
	default:
		raw := strconv.FormatInt(n, 10)
		for i := len(raw) - 3; i > 0; i -= 3 {
			raw = raw[:i] + "," + raw[i:]
		}
		s = raw
	}
	if neg {
		return "-" + s
	}
	return s
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	sections []SectionDescriptor
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		sections: HUDSections(),
		width:    240,
	}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding

	height := pad * 2
	for _, sd := range h.sections {
		height += r.SectionHeight(sd, &data)
	}
	r.DrawPanel(pad, pad, h.width, height)

	y := pad * 2
	for _, sd := range h.sections {
		y = r.DrawSection(pad*2, y, sd, &data, h.width-pad*2)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Registry *systems.SystemRegistry
}

// PerfPanel renders the per-phase update timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Update Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s | FPS: %.0f", data.Stats.AvgTickDuration.Round(time.Microsecond), data.Stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range telemetry.Phases {
		avg := data.Stats.PhaseAvg[name]
		pct := data.Stats.PhasePct[name]

		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}

		displayName := name
		if data.Registry != nil {
			displayName = data.Registry.GetName(name)
		}

		rl.DrawText(
			fmt.Sprintf("%-16s %6s %5.1f%%", displayName, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
