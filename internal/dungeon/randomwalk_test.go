package dungeon

import (
	"testing"

	"dungeonforge/internal/grid"
)

func TestRandomWalkDeterministic(t *testing.T) {
	seed := int64(123)
	a, err := RandomWalkGenerator{}.Generate(Params{Width: 25, Height: 25, Seed: &seed})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := RandomWalkGenerator{}.Generate(Params{Width: 25, Height: 25, Seed: &seed})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	assertGridsEqual(t, a, b)
}

// TestRandomWalkAnchorRoom checks scenario S3: a 25x25 map centres its 3x3
// anchor room at (12,12), with all four initial doors opening into carved
// corridor cells.
func TestRandomWalkAnchorRoom(t *testing.T) {
	seed := int64(123)
	g, err := RandomWalkGenerator{}.Generate(Params{Width: 25, Height: 25, Seed: &seed})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	center := g.At(12, 12)
	if center.CellType != roomCellType || !center.IsPassable {
		t.Fatalf("expected anchor room centred at (12,12), got %+v", center)
	}
	for _, r := range []aabb{{X: 11, Y: 11, W: 3, H: 3}} {
		for y := r.Y; y <= r.y2(); y++ {
			for x := r.X; x <= r.x2(); x++ {
				c := g.At(x, y)
				if c.CellType != roomCellType || !c.IsPassable {
					t.Fatalf("cell (%d,%d) of anchor room not painted: %+v", x, y, c)
				}
			}
		}
	}

	doorSpecs := []struct {
		x, y int
		dir  grid.Direction
	}{
		{12, 12 + 1, grid.North},
		{12 + 1, 12, grid.East},
		{12, 12 - 1, grid.South},
		{12 - 1, 12, grid.West},
	}
	for _, d := range doorSpecs {
		c := g.At(d.x, d.y)
		if !c.Door(d.dir) {
			t.Fatalf("expected door %v at (%d,%d)", d.dir, d.x, d.y)
		}
		nx, ny := g.Neighbor(d.x, d.y, d.dir)
		outside := g.At(nx, ny)
		if outside.IsEmpty || !outside.IsPassable {
			t.Fatalf("door %v at (%d,%d) does not open into a carved cell", d.dir, d.x, d.y)
		}
	}
}

func TestRandomWalkDoorSpacing(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		g, err := RandomWalkGenerator{}.Generate(Params{Width: 30, Height: 30, Seed: &seed})
		if err != nil {
			t.Fatalf("seed %d: generate: %v", seed, err)
		}
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				c := g.At(x, y)
				for _, d := range grid.Directions {
					if !c.Door(d) {
						continue
					}
					if doorWithinSpan(g, x, y, d, MinDoorSpacing) {
						t.Fatalf("seed %d: door at (%d,%d) dir %v violates minimum spacing", seed, x, y, d)
					}
				}
			}
		}
	}
}

func TestRandomWalkInvariants(t *testing.T) {
	for seed := int64(0); seed < 15; seed++ {
		g, err := RandomWalkGenerator{}.Generate(Params{Width: 25, Height: 25, Seed: &seed})
		if err != nil {
			t.Fatalf("seed %d: generate: %v", seed, err)
		}
		checkStandardInvariants(t, g)
	}
}

func TestRandomWalkRejectsBadDimensions(t *testing.T) {
	if _, err := (RandomWalkGenerator{}).Generate(Params{Width: 5, Height: 25}); err != ErrInvalidDimensions {
		t.Fatalf("want ErrInvalidDimensions, got %v", err)
	}
}
