package desktop

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/devtools"
	"github.com/akorn123w/FishingInTheVoid/ui"
)

// devShortcut maps a key press to a developer command.
func devShortcut(ctrl bool, key int32) (devtools.Command, bool) {
	if key == rl.KeySpace {
		return devtools.CommandTogglePause, true
	}
	if !ctrl {
		return "", false
	}
	switch key {
	case rl.KeyC:
		return devtools.CommandGrant, true
	case rl.KeyR:
		return devtools.CommandReset, true
	case rl.KeyM:
		return devtools.CommandMultiplier, true
	}
	return "", false
}

func (a *App) handleInput(now time.Time) {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if a.opts.Dev {
			if cmd, ok := devShortcut(ctrl, key); ok {
				msg, err := devtools.Apply(a.game, cmd, now)
				if err != nil {
					a.log.Warn("dev command failed", "command", cmd, "error", err)
				} else {
					a.log.Info("dev command", "command", cmd, "result", msg)
				}
				continue
			}
		}
		if ctrl {
			continue
		}
		if id, on, ok := a.overlays.HandleKeyPress(key); ok {
			a.log.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if a.overUI(mouse) {
		return
	}
	x, y := a.space.ToPercent(mouse.X, mouse.Y)
	// Cooldown and pause rejections are reported through events
	_, _ = a.game.Click(x, y, now)
}

// overUI reports whether the pointer is over a panel that takes its own clicks.
func (a *App) overUI(mouse rl.Vector2) bool {
	if a.overlays.IsEnabled(ui.OverlayStore) && a.store.Contains(mouse.X, mouse.Y, int32(a.space.W)) {
		return true
	}
	if a.overlays.IsEnabled(ui.OverlayControls) && mouse.X <= float32(10+controlsWidth) && mouse.Y >= a.space.H/2 {
		return true
	}
	return false
}
