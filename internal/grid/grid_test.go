package grid

import "testing"

func TestNewGridAllEmpty(t *testing.T) {
	g := New(12, 10)
	if len(g.Cells) != 120 {
		t.Fatalf("want 120 cells, got %d", len(g.Cells))
	}
	for i, c := range g.Cells {
		if !c.IsEmpty || c.IsPassable {
			t.Fatalf("cell %d not empty/impassable: %+v", i, c)
		}
		if c.CellType != "Default" {
			t.Fatalf("cell %d has cell type %q, want Default", i, c.CellType)
		}
	}
}

func TestSetEmptyForcesImpassable(t *testing.T) {
	c := NewEmptyCell()
	c.SetPassable(true)
	if c.IsEmpty || !c.IsPassable {
		t.Fatalf("expected passable non-empty cell, got %+v", c)
	}
	c.SetEmpty(true)
	if c.IsPassable {
		t.Fatalf("SetEmpty(true) must force IsPassable=false, got %+v", c)
	}
}

func TestDoorImpliesWall(t *testing.T) {
	c := NewEmptyCell()
	c.SetDoor(North, true)
	if !c.Wall(North) {
		t.Fatalf("SetDoor(true) must imply a wall on the same edge")
	}
}

func TestAtOutOfBoundsIsNil(t *testing.T) {
	g := New(10, 10)
	if g.At(-1, 0) != nil || g.At(0, -1) != nil || g.At(10, 0) != nil || g.At(0, 10) != nil {
		t.Fatalf("At() must return nil sentinel for out-of-range coordinates")
	}
}

func TestDirectionOppositeAndDelta(t *testing.T) {
	cases := []struct {
		d    Direction
		opp  Direction
		dx   int
		dy   int
	}{
		{North, South, 0, 1},
		{South, North, 0, -1},
		{East, West, 1, 0},
		{West, East, -1, 0},
	}
	for _, c := range cases {
		if got := c.d.Opposite(); got != c.opp {
			t.Errorf("%v.Opposite() = %v, want %v", c.d, got, c.opp)
		}
		dx, dy := c.d.Delta()
		if dx != c.dx || dy != c.dy {
			t.Errorf("%v.Delta() = (%d,%d), want (%d,%d)", c.d, dx, dy, c.dx, c.dy)
		}
	}
}

func TestNeighborEmptyOffGrid(t *testing.T) {
	g := New(10, 10)
	if !g.NeighborEmpty(0, 0, South) {
		t.Fatalf("off-grid neighbor must count as empty")
	}
	g.At(0, 0).SetPassable(true)
	g.At(0, 1).SetPassable(true)
	if g.NeighborEmpty(0, 0, North) {
		t.Fatalf("occupied neighbor must not count as empty")
	}
}
