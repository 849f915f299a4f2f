package desktop

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/game"
	"github.com/akorn123w/FishingInTheVoid/renderer"
	"github.com/akorn123w/FishingInTheVoid/systems"
	"github.com/akorn123w/FishingInTheVoid/ui"
)

func (a *App) draw(now time.Time) {
	snap := a.game.Snapshot(now)
	t := float32(now.Sub(a.start).Seconds())

	a.bg.Draw(t, float32(snap.BackgroundOpacity))
	a.ambient.Draw(a.space, a.game.AppendAmbient(a.ambient.Buffer()))

	sx, sy := a.game.SquidPosition()
	squid := a.space.ToScreen(sx, sy)

	a.colony.Draw(a.space, renderer.ColonyView{
		Cells:     a.game.Cells(),
		Center:    squid,
		Diameter:  float32(a.cfg.Division.CellDiameter),
		Growth:    float32(snap.GrowthScale),
		Organelle: float32(snap.OrganelleOpacity),
		Morph:     float32(snap.MorphProgress),
	})
	if snap.MorphProgress > 0 {
		a.squid.Draw(renderer.SquidView{
			Pos:        squid,
			Size:       a.space.Len(squidSizePct),
			Alpha:      float32(snap.MorphProgress),
			Expression: snap.Expression,
			Time:       t,
		})
	}

	a.food.Draw(a.space, a.game.FoodParticles(), func(p systems.FoodParticle) float32 {
		return a.game.FoodOpacity(p, now)
	}, squid, float32(a.game.FeedProgress(now)))

	if a.overlays.IsEnabled(ui.OverlayFoodRing) {
		rl.DrawCircleLines(int32(squid.X), int32(squid.Y), a.space.Len(float32(a.cfg.Feeding.SuckRadius)), rl.Color{R: 120, G: 200, B: 255, A: 120})
	}

	a.particles.Draw(a.space, a.game.Effects())
	a.drawUI(snap, now)
}

func (a *App) drawUI(snap game.Snapshot, now time.Time) {
	screenW, screenH := int32(a.space.W), int32(a.space.H)

	if a.modal != nil {
		if a.modal.Draw(screenW, screenH) {
			a.log.Info("closing after failed version gate")
			a.quit = true
		}
		return
	}

	if a.overlays.IsEnabled(ui.OverlayHUD) {
		a.hud.Draw(ui.HUDData{Snap: snap, CPS: a.rate.Rate(now), FPS: rl.GetFPS()})
	}
	if a.overlays.IsEnabled(ui.OverlayStore) {
		if id, ok := a.store.Draw(snap.Store, screenW, screenH); ok {
			// Rejections are reported through events
			_, _ = a.game.Purchase(id, now)
		}
	}
	if a.overlays.IsEnabled(ui.OverlayControls) {
		a.controls.SetPosition(10, screenH/2)
		vol := float32(1)
		if a.opts.Sounds != nil {
			vol = float32(a.opts.Sounds.Volume())
		}
		if nv := a.controls.Draw(a.overlays, vol); nv != vol && a.opts.Sounds != nil {
			a.opts.Sounds.SetVolume(float64(nv))
		}
	}
	if a.overlays.IsEnabled(ui.OverlayPerf) {
		a.perf.SetPosition(screenW-storeWidth-260, 10)
		a.perf.Draw(ui.PerfPanelData{Stats: a.game.Perf().Stats(), Registry: a.registry})
	}

	legend := "[H] HUD  [S] Store  [F1] Controls  [P] Perf"
	if snap.Paused {
		legend = "PAUSED  " + legend
	}
	a.hud.DrawControls(screenH, legend)
}
