package game

import (
	"fmt"
	"time"

	"github.com/akorn123w/FishingInTheVoid/progression"
)

// EventKind identifies what happened in the game.
type EventKind uint8

const (
	EventClick EventKind = iota
	EventClickRejected
	EventAutoClick
	EventPurchase
	EventPurchaseFailed
	EventStageChanged
	EventCellsDivided
	EventBackgroundSpawned
	EventFoodSpawned
	EventFoodRefused
	EventConsumptionStarted
	EventConsumptionFinished
	EventSatietyLevelUp
	EventBoostExpired
	EventPaused
	EventResumed
	EventReset
)

var eventNames = [...]string{
	"click", "click_rejected", "auto_click", "purchase", "purchase_failed",
	"stage_changed", "cells_divided", "background_spawned", "food_spawned", "food_refused",
	"consumption_started", "consumption_finished", "satiety_level_up", "boost_expired",
	"paused", "resumed", "reset",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("event(%d)", k)
}

// MarshalText encodes the event name.
func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Event is emitted by the game for shells, sound and telemetry.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	At     time.Time
	Amount int64 // Clicks earned, cost paid, particles or cells involved
	ItemID string
	Level  int
	From   progression.Stage
	To     progression.Stage
	X, Y   float32
	Err    error
}
