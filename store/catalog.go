// Package store defines the upgrade catalog and resolves purchases against an economy.
package store

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Rarity grades an item level for display.
type Rarity uint8

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
)

var rarityNames = [...]string{"common", "uncommon", "rare", "epic", "legendary"}

func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return fmt.Sprintf("rarity(%d)", r)
}

// UnmarshalYAML decodes a rarity name.
func (r *Rarity) UnmarshalYAML(node *yaml.Node) error {
	i := slices.Index(rarityNames[:], node.Value)
	if i < 0 {
		return fmt.Errorf("line %d: unknown rarity %q", node.Line, node.Value)
	}
	*r = Rarity(i)
	return nil
}

// MarshalYAML encodes the rarity name.
func (r Rarity) MarshalYAML() (any, error) { return r.String(), nil }

// EffectKind selects how a level's value is applied.
type EffectKind uint8

const (
	Additive EffectKind = iota
	Multiplicative
)

func (k EffectKind) String() string {
	switch k {
	case Additive:
		return "additive"
	case Multiplicative:
		return "multiplicative"
	}
	return fmt.Sprintf("effect(%d)", k)
}

// UnmarshalYAML decodes an effect kind name.
func (k *EffectKind) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "additive":
		*k = Additive
	case "multiplicative":
		*k = Multiplicative
	default:
		return fmt.Errorf("line %d: unknown effect kind %q", node.Line, node.Value)
	}
	return nil
}

// MarshalYAML encodes the effect kind name.
func (k EffectKind) MarshalYAML() (any, error) { return k.String(), nil }

// ItemKind selects which part of the economy an item affects.
type ItemKind uint8

const (
	KindClick       ItemKind = iota // Bonus or multiplier on manual clicks
	KindAutoClicker                 // Adds auto-clickers
	KindBoost                       // Timed temporary multiplier
)

func (k ItemKind) String() string {
	switch k {
	case KindClick:
		return "click"
	case KindAutoClicker:
		return "auto_clicker"
	case KindBoost:
		return "boost"
	}
	return fmt.Sprintf("kind(%d)", k)
}

// UnmarshalYAML decodes an item kind name.
func (k *ItemKind) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "click", "":
		*k = KindClick
	case "auto_clicker":
		*k = KindAutoClicker
	case "boost":
		*k = KindBoost
	default:
		return fmt.Errorf("line %d: unknown item kind %q", node.Line, node.Value)
	}
	return nil
}

// MarshalYAML encodes the item kind name.
func (k ItemKind) MarshalYAML() (any, error) { return k.String(), nil }

// Effect is the change applied when a level is bought.
type Effect struct {
	Kind  EffectKind `yaml:"kind"`
	Value float64    `yaml:"value"`
}

// Level is one purchasable step of an item.
type Level struct {
	Level  int    `yaml:"level"`
	Rarity Rarity `yaml:"rarity"`
	Cost   int64  `yaml:"cost"`
	Effect Effect `yaml:"effect"`
}

// Item is an upgrade definition. Levels are ordered; index i is bought at owned level i.
type Item struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Kind           ItemKind `yaml:"kind"`
	UnlockAtClicks int64    `yaml:"unlock_at_clicks"`
	Levels         []Level  `yaml:"levels"`
}

// MaxLevel returns the number of purchasable levels.
func (it *Item) MaxLevel() int { return len(it.Levels) }

// Next returns the level bought at owned level, or false at max.
func (it *Item) Next(owned int) (Level, bool) {
	if owned < 0 || owned >= len(it.Levels) {
		return Level{}, false
	}
	return it.Levels[owned], true
}

// Catalog is the immutable set of store items.
type Catalog struct {
	items []Item
	index map[string]int
}

type catalogFile struct {
	Items []Item `yaml:"items"`
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	c := &Catalog{items: f.Items, index: make(map[string]int, len(f.Items))}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Load(data)
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Load(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("store: embedded catalog is invalid: %v", err))
	}
	return c
}

func (c *Catalog) validate() error {
	if len(c.items) == 0 {
		return fmt.Errorf("catalog has no items")
	}
	for i := range c.items {
		it := &c.items[i]
		if it.ID == "" {
			return fmt.Errorf("catalog item %d has no id", i)
		}
		if _, dup := c.index[it.ID]; dup {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		c.index[it.ID] = i
		if len(it.Levels) == 0 {
			return fmt.Errorf("item %q has no levels", it.ID)
		}
		for j, lvl := range it.Levels {
			if lvl.Level != j+1 {
				return fmt.Errorf("item %q: level %d at position %d", it.ID, lvl.Level, j+1)
			}
			if lvl.Cost < 0 {
				return fmt.Errorf("item %q level %d: negative cost", it.ID, lvl.Level)
			}
			if j > 0 && lvl.Cost < it.Levels[j-1].Cost {
				return fmt.Errorf("item %q level %d: cost %d below previous %d",
					it.ID, lvl.Level, lvl.Cost, it.Levels[j-1].Cost)
			}
			if lvl.Effect.Kind == Multiplicative && lvl.Effect.Value < 1 {
				return fmt.Errorf("item %q level %d: multiplier %v below 1", it.ID, lvl.Level, lvl.Effect.Value)
			}
			if it.Kind != KindClick && it.Kind != KindBoost && lvl.Effect.Kind != Additive {
				return fmt.Errorf("item %q level %d: %s items need additive effects", it.ID, lvl.Level, it.Kind)
			}
		}
	}
	return nil
}

// Items returns the items in catalog order. The slice must not be modified.
func (c *Catalog) Items() []Item { return c.items }

// Get looks up an item by id.
func (c *Catalog) Get(id string) (*Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.items[i], true
}

// Unlocked returns the items visible after earning lifetime clicks.
func (c *Catalog) Unlocked(lifetime int64) []*Item {
	var out []*Item
	for i := range c.items {
		if lifetime >= c.items[i].UnlockAtClicks {
			out = append(out, &c.items[i])
		}
	}
	return out
}

// Purchased maps item id to owned level. Absent ids are level 0.
type Purchased map[string]int

// Level returns the owned level for id.
func (p Purchased) Level(id string) int { return p[id] }
