package game

import (
	"time"

	"github.com/akorn123w/FishingInTheVoid/progression"
	"github.com/akorn123w/FishingInTheVoid/systems"
)

// Snapshot is a read-only copy of the session for shells and the dev endpoint.
type Snapshot struct {
	At             time.Time          `json:"at"`
	ClickCount     int64              `json:"click_count"`
	LifetimeClicks int64              `json:"lifetime_clicks"`
	Yield          int64              `json:"yield"`
	ClickBonus     int64              `json:"click_bonus"`
	Multiplier     float64            `json:"click_multiplier"`
	TempMultiplier float64            `json:"temporary_multiplier"`
	BoostRemaining float64            `json:"boost_remaining_sec"`
	AutoClickers   int64              `json:"auto_clickers"`
	DevMultiplier  int64              `json:"dev_multiplier"`
	Paused         bool               `json:"paused"`
	Stage          progression.Stage  `json:"stage"`
	Cells          int                `json:"cells"`
	Food           int                `json:"food"`
	Satiety        systems.Satiety    `json:"satiety"`
	Expression     systems.Expression `json:"expression"`
	Feeding        bool               `json:"feeding"`
	Purchased      map[string]int     `json:"purchased"`
	Store          []StoreEntry       `json:"store"`

	GrowthScale       float64 `json:"growth_scale"`
	OrganelleOpacity  float64 `json:"organelle_opacity"`
	MorphProgress     float64 `json:"morph_progress"`
	BackgroundOpacity float64 `json:"background_opacity"`
}

// StoreEntry describes one visible store item.
type StoreEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Desc       string `json:"description,omitempty"`
	Kind       string `json:"kind"`
	Level      int    `json:"level"`
	MaxLevel   int    `json:"max_level"`
	NextCost   int64  `json:"next_cost"` // Zero at max level
	Rarity     string `json:"rarity"`    // Rarity of the next level
	Affordable bool   `json:"affordable"`
	Maxed      bool   `json:"maxed"`
}

// StoreEntries lists the items unlocked by lifetime clicks, in catalog order.
func (g *Game) StoreEntries() []StoreEntry {
	items := g.Catalog().Unlocked(g.Economy.LifetimeClicks)
	out := make([]StoreEntry, 0, len(items))
	for _, it := range items {
		owned := g.Purchased.Level(it.ID)
		e := StoreEntry{
			ID:       it.ID,
			Name:     it.Name,
			Desc:     it.Description,
			Kind:     it.Kind.String(),
			Level:    owned,
			MaxLevel: it.MaxLevel(),
		}
		if next, ok := it.Next(owned); ok {
			e.NextCost = next.Cost
			e.Rarity = next.Rarity.String()
			e.Affordable = g.Economy.CanAfford(next.Cost)
		} else {
			e.Maxed = true
			e.Rarity = it.Levels[len(it.Levels)-1].Rarity.String()
		}
		out = append(out, e)
	}
	return out
}

// Snapshot copies the current state.
func (g *Game) Snapshot(now time.Time) Snapshot {
	count := g.Economy.ClickCount
	purchased := make(map[string]int, len(g.Purchased))
	for id, lvl := range g.Purchased {
		purchased[id] = lvl
	}
	var boost float64
	if g.Economy.BoostActive(now) {
		boost = g.Economy.BoostExpiresAt.Sub(now).Seconds()
	}
	return Snapshot{
		At:                now,
		ClickCount:        count,
		LifetimeClicks:    g.Economy.LifetimeClicks,
		Yield:             g.Yield(),
		ClickBonus:        g.Economy.ClickBonus,
		Multiplier:        g.Economy.ClickMultiplier,
		TempMultiplier:    g.Economy.TemporaryMultiplier,
		BoostRemaining:    boost,
		AutoClickers:      g.Economy.AutoClickers,
		DevMultiplier:     g.DevMultiplier,
		Paused:            g.Paused,
		Stage:             g.Stage(),
		Cells:             g.Colony.Len(),
		Food:              len(g.Food.Particles),
		Satiety:           *g.Satiety,
		Expression:        g.expression.Current,
		Feeding:           g.feeder.State == systems.FeedSucking,
		Purchased:         purchased,
		Store:             g.StoreEntries(),
		GrowthScale:       g.thresholds.GrowthScale(count),
		OrganelleOpacity:  g.thresholds.OrganelleOpacity(count),
		MorphProgress:     g.thresholds.MorphProgress(count),
		BackgroundOpacity: g.thresholds.BackgroundOpacity(count),
	}
}

// Read-only views for renderers. Callers must not modify the returned slices.

// Cells returns the colony cells.
func (g *Game) Cells() []systems.Cell { return g.Colony.Cells }

// FoodParticles returns the live food particles.
func (g *Game) FoodParticles() []systems.FoodParticle { return g.Food.Particles }

// FoodOpacity returns how visible p is at now.
func (g *Game) FoodOpacity(p systems.FoodParticle, now time.Time) float32 {
	return g.Food.Opacity(p, now)
}

// AppendAmbient appends the ambient scene to dst.
func (g *Game) AppendAmbient(dst []systems.AmbientView) []systems.AmbientView {
	return g.ambient.AppendViews(dst)
}

// Effects returns the live effect particles.
func (g *Game) Effects() []systems.EffectParticle { return g.effects.Particles }

// Expression returns the squid's current face.
func (g *Game) Expression() systems.Expression { return g.expression.Current }

// FeedProgress returns consumption progress in [0, 1].
func (g *Game) FeedProgress(now time.Time) float64 { return g.feeder.Progress(now) }

// SquidPosition returns the squid's position in percent space.
func (g *Game) SquidPosition() (x, y float32) { return g.feeder.SquidPosition() }
