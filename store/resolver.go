package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/akorn123w/FishingInTheVoid/economy"
)

var (
	ErrUnknownItem       = errors.New("unknown item")
	ErrMaxLevelReached   = errors.New("max level reached")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNilPurchased      = errors.New("nil purchased levels")
)

// PurchaseError describes a rejected purchase. It unwraps to one of the sentinel errors.
type PurchaseError struct {
	ItemID string
	Level  int   // Level that was attempted (owned + 1)
	Cost   int64 // Zero when the level does not exist
	Have   int64
	Err    error
}

func (e *PurchaseError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientFunds):
		return fmt.Sprintf("purchase %s level %d: %v (cost %d, have %d)", e.ItemID, e.Level, e.Err, e.Cost, e.Have)
	default:
		return fmt.Sprintf("purchase %s level %d: %v", e.ItemID, e.Level, e.Err)
	}
}

func (e *PurchaseError) Unwrap() error { return e.Err }

// Receipt records what a successful purchase changed.
type Receipt struct {
	ItemID string
	Kind   ItemKind
	Level  int // New owned level
	Rarity Rarity
	Cost   int64
	Effect Effect
	// BoostExpiresAt is set for boost purchases.
	BoostExpiresAt time.Time
}

// Resolver applies catalog purchases to an economy.
type Resolver struct {
	catalog     *Catalog
	boostWindow time.Duration
}

// NewResolver creates a resolver. boostWindow is how long a temporary multiplier lasts.
func NewResolver(c *Catalog, boostWindow time.Duration) *Resolver {
	return &Resolver{catalog: c, boostWindow: boostWindow}
}

// Catalog returns the catalog the resolver sells from.
func (r *Resolver) Catalog() *Catalog { return r.catalog }

// Quote returns the next level for id without buying it.
func (r *Resolver) Quote(id string, owned Purchased) (Level, error) {
	it, ok := r.catalog.Get(id)
	if !ok {
		return Level{}, &PurchaseError{ItemID: id, Err: ErrUnknownItem}
	}
	cur := owned.Level(id)
	lvl, ok := it.Next(cur)
	if !ok {
		return Level{}, &PurchaseError{ItemID: id, Level: cur + 1, Err: ErrMaxLevelReached}
	}
	return lvl, nil
}

// Purchase buys the next level of id and records it in owned, which must be
// non-nil. On error neither e nor owned is modified.
func (r *Resolver) Purchase(id string, e *economy.Economy, owned Purchased, now time.Time) (Receipt, error) {
	lvl, err := r.Quote(id, owned)
	if err != nil {
		return Receipt{}, err
	}
	if owned == nil {
		return Receipt{}, &PurchaseError{ItemID: id, Level: lvl.Level, Cost: lvl.Cost, Err: ErrNilPurchased}
	}
	if !e.CanAfford(lvl.Cost) {
		return Receipt{}, &PurchaseError{
			ItemID: id,
			Level:  lvl.Level,
			Cost:   lvl.Cost,
			Have:   e.ClickCount,
			Err:    ErrInsufficientFunds,
		}
	}

	it, _ := r.catalog.Get(id)
	e.Spend(lvl.Cost)
	owned[id] = owned.Level(id) + 1

	rc := Receipt{
		ItemID: id,
		Kind:   it.Kind,
		Level:  owned[id],
		Rarity: lvl.Rarity,
		Cost:   lvl.Cost,
		Effect: lvl.Effect,
	}

	switch it.Kind {
	case KindAutoClicker:
		e.AutoClickers += int64(lvl.Effect.Value)
	case KindBoost:
		e.ApplyBoost(lvl.Effect.Value, now, r.boostWindow)
		rc.BoostExpiresAt = e.BoostExpiresAt
	default:
		switch lvl.Effect.Kind {
		case Additive:
			e.ClickBonus += int64(lvl.Effect.Value)
		case Multiplicative:
			e.ClickMultiplier *= lvl.Effect.Value
		}
	}
	return rc, nil
}
