package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable panel or debug layer.
type OverlayID string

const (
	OverlayHUD      OverlayID = "hud"
	OverlayStore    OverlayID = "store"
	OverlayControls OverlayID = "controls"
	OverlayPerf     OverlayID = "perf"
	OverlayFoodRing OverlayID = "food_ring"
)

// OverlayDescriptor binds an overlay to its hotkey.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no key
	KeyLabel    string // e.g. "H"
	Category    string // "panels" or "debug"
	Default     bool   // Enabled at startup
	Exclusive   []OverlayID
}

var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayHUD, Name: "HUD", Description: "Click count, yield and stage", Key: rl.KeyH, KeyLabel: "H", Category: "panels", Default: true},
	{ID: OverlayStore, Name: "Store", Description: "Unlocked upgrades", Key: rl.KeyS, KeyLabel: "S", Category: "panels", Default: true},
	{ID: OverlayControls, Name: "Controls", Description: "Overlay toggles and volume", Key: rl.KeyF1, KeyLabel: "F1", Category: "panels"},
	{ID: OverlayPerf, Name: "Performance", Description: "Per-phase update timings", Key: rl.KeyP, KeyLabel: "P", Category: "debug"},
	{ID: OverlayFoodRing, Name: "Suck Radius", Description: "Show the squid's feeding radius", Key: rl.KeyF, KeyLabel: "F", Category: "debug"},
}

// OverlayRegistry tracks which overlays are on. Iteration follows registration order.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	index       map[OverlayID]int
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry holding the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{
		index:   make(map[OverlayID]int),
		enabled: make(map[OverlayID]bool),
	}
	for _, desc := range defaultOverlays {
		r.Register(desc)
	}
	return r
}

// Register adds desc, replacing any overlay with the same ID.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i, ok := r.index[desc.ID]; ok {
		r.descriptors[i] = desc
	} else {
		r.index[desc.ID] = len(r.descriptors)
		r.descriptors = append(r.descriptors, desc)
	}
	r.enabled[desc.ID] = desc.Default
}

// Toggle flips id and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.index[id]; !ok {
		return false
	}
	on := !r.enabled[id]
	r.SetEnabled(id, on)
	return on
}

// SetEnabled sets id's state; turning it on switches off its exclusive peers.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	i, ok := r.index[id]
	if !ok {
		return
	}
	r.enabled[id] = on
	if !on {
		return
	}
	for _, other := range r.descriptors[i].Exclusive {
		r.enabled[other] = false
	}
}

func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns the overlays in category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			out = append(out, desc)
		}
	}
	return out
}

// Categories returns each category once, first-seen first.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, desc := range r.descriptors {
		if !slices.Contains(cats, desc.Category) {
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no overlay uses key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
