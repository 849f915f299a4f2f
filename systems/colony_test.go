package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/akorn123w/FishingInTheVoid/config"
)

func TestColonyDivideDoubles(t *testing.T) {
	c := NewColony(config.Default().Division, rand.New(rand.NewSource(1)))
	if c.Len() != 1 {
		t.Fatalf("new colony has %d cells, want 1", c.Len())
	}

	for round := 0; round < 5; round++ {
		before := make(map[uint32]Cell, c.Len())
		for _, cell := range c.Cells {
			before[cell.ID] = cell
		}
		n := c.Len()

		children := c.Divide()

		if c.Len() != 2*n {
			t.Fatalf("round %d: %d cells after division, want %d", round, c.Len(), 2*n)
		}
		if len(children) != n {
			t.Fatalf("round %d: Divide returned %d cells, want %d", round, len(children), n)
		}
		for _, child := range children {
			parent, ok := before[child.ParentID]
			if !ok {
				t.Fatalf("round %d: cell %d has parent %d which did not exist", round, child.ID, child.ParentID)
			}
			if child.Generation != parent.Generation+1 {
				t.Errorf("cell %d generation %d, parent generation %d", child.ID, child.Generation, parent.Generation)
			}
			if _, dup := before[child.ID]; dup {
				t.Errorf("child reused id %d", child.ID)
			}
		}
	}
}

func TestColonyPlacement(t *testing.T) {
	cfg := config.Default().Division
	c := NewColony(cfg, rand.New(rand.NewSource(2)))
	c.Divide()
	c.Divide()

	want := cfg.CellDiameter * (1 - cfg.Overlap)
	byID := map[uint32]Cell{}
	for _, cell := range c.Cells {
		byID[cell.ID] = cell
	}
	for _, cell := range c.Cells {
		if !cell.HasParent() {
			continue
		}
		parent := byID[cell.ParentID]
		d := math.Hypot(float64(cell.X-parent.X), float64(cell.Y-parent.Y))
		if math.Abs(d-want) > 1e-3 {
			t.Errorf("cell %d is %.3f from parent, want %.3f", cell.ID, d, want)
		}
		lo := 1 - cfg.ScaleJitter/2
		hi := 1 + cfg.ScaleJitter/2
		if float64(cell.Scale) < lo-1e-6 || float64(cell.Scale) > hi+1e-6 {
			t.Errorf("cell %d scale %.3f outside [%.3f, %.3f]", cell.ID, cell.Scale, lo, hi)
		}
	}

	// Second division of two cells places children at 0 and pi.
	for i, cell := range c.Cells[2:] {
		wantAngle := 2 * math.Pi * float64(i) / 2
		if math.Abs(float64(cell.Angle)-wantAngle) > 1e-5 {
			t.Errorf("child %d angle %.4f, want %.4f", i, cell.Angle, wantAngle)
		}
	}
}

func TestColonyRootHasNoParent(t *testing.T) {
	c := NewColony(config.Default().Division, rand.New(rand.NewSource(3)))
	root := c.Cells[0]
	if root.HasParent() || root.Generation != 0 || root.ID == 0 {
		t.Errorf("root = %+v", root)
	}
	minX, minY, maxX, maxY := c.Bounds(10)
	if minX != -10 || minY != -10 || maxX != 10 || maxY != 10 {
		t.Errorf("Bounds = (%v,%v,%v,%v)", minX, minY, maxX, maxY)
	}
}
