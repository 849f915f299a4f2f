package systems

import (
	"math"
	"math/rand"

	"github.com/akorn123w/FishingInTheVoid/config"
)

// Cell is one member of the dividing colony. Offsets are in pixels from the colony centre.
type Cell struct {
	ID         uint32
	ParentID   uint32 // 0 for the root cell
	X, Y       float32
	Angle      float32
	Scale      float32
	Generation int
}

// HasParent reports whether the cell was produced by a division.
func (c Cell) HasParent() bool { return c.ParentID != 0 }

// Colony holds the cell tree. Cells are only ever added.
type Colony struct {
	Cells []Cell

	nextID   uint32
	distance float32 // Parent-to-child spacing
	jitter   float32
	rng      *rand.Rand
}

// NewColony creates a colony with a single root cell.
func NewColony(cfg config.DivisionConfig, rng *rand.Rand) *Colony {
	c := &Colony{
		Cells:    make([]Cell, 0, 64),
		nextID:   1,
		distance: float32(cfg.CellDiameter * (1 - cfg.Overlap)),
		jitter:   float32(cfg.ScaleJitter),
		rng:      rng,
	}
	c.Cells = append(c.Cells, Cell{ID: c.allocID(), Scale: 1})
	return c
}

func (c *Colony) allocID() uint32 {
	id := c.nextID
	c.nextID++
	return id
}

// Len returns the live cell count.
func (c *Colony) Len() int { return len(c.Cells) }

// Divide doubles the colony. Each existing cell gets one child placed
// around it at an evenly distributed angle. Returns the new cells.
func (c *Colony) Divide() []Cell {
	n := len(c.Cells)
	for i := 0; i < n; i++ {
		parent := c.Cells[i]
		angle := 2 * math.Pi * float64(i) / float64(n)
		sin, cos := math.Sincos(angle)
		c.Cells = append(c.Cells, Cell{
			ID:         c.allocID(),
			ParentID:   parent.ID,
			X:          parent.X + float32(cos)*c.distance,
			Y:          parent.Y + float32(sin)*c.distance,
			Angle:      float32(angle),
			Scale:      1 - c.jitter/2 + c.rng.Float32()*c.jitter,
			Generation: parent.Generation + 1,
		})
	}
	return c.Cells[n:]
}

// Bounds returns the colony's extent around its centre, including cell radius.
func (c *Colony) Bounds(radius float32) (minX, minY, maxX, maxY float32) {
	if len(c.Cells) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY = -minX, -minY
	for _, cell := range c.Cells {
		r := radius * cell.Scale
		minX = min(minX, cell.X-r)
		minY = min(minY, cell.Y-r)
		maxX = max(maxX, cell.X+r)
		maxY = max(maxY, cell.Y+r)
	}
	return minX, minY, maxX, maxY
}

// Centroid returns the mean cell offset.
func (c *Colony) Centroid() (x, y float32) {
	if len(c.Cells) == 0 {
		return 0, 0
	}
	for _, cell := range c.Cells {
		x += cell.X
		y += cell.Y
	}
	n := float32(len(c.Cells))
	return x / n, y / n
}
