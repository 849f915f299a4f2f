package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/akorn123w/FishingInTheVoid/game"
)

type actionKind uint8

const (
	actionNone actionKind = iota
	actionClick
	actionBuy
	actionQuit
)

type action struct {
	kind  actionKind
	index int // Store slot for actionBuy, 0-based
}

func actionFor(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return action{kind: actionQuit}
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == ' ':
			return action{kind: actionClick}
		case r == 'q':
			return action{kind: actionQuit}
		case r >= '1' && r <= '9':
			return action{kind: actionBuy, index: int(r - '1')}
		}
	}
	return action{}
}

// apply runs a against g and reports whether the loop should continue.
func apply(g *game.Game, a action, now time.Time) bool {
	switch a.kind {
	case actionQuit:
		return false
	case actionClick:
		x, y := g.SquidPosition()
		_, _ = g.Click(x, y, now)
	case actionBuy:
		entries := g.StoreEntries()
		if a.index < len(entries) {
			_, _ = g.Purchase(entries[a.index].ID, now)
		}
	}
	return true
}
