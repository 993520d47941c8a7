package dungeon

import (
	"testing"

	"dungeonforge/internal/grid"
)

// assertGridsEqual fails the test unless a and b are cell-for-cell
// identical, as two deterministic runs with the same seed must be.
func assertGridsEqual(t *testing.T, a, b *grid.Grid) {
	t.Helper()
	if a.Width != b.Width || a.Height != b.Height {
		t.Fatalf("dimension mismatch: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			ca, cb := a.At(x, y), b.At(x, y)
			if ca.IsEmpty != cb.IsEmpty || ca.IsPassable != cb.IsPassable || ca.CellType != cb.CellType {
				t.Fatalf("cell (%d,%d) diverged: %+v vs %+v", x, y, ca, cb)
			}
			for _, d := range grid.Directions {
				if ca.Wall(d) != cb.Wall(d) {
					t.Fatalf("cell (%d,%d) wall %v diverged", x, y, d)
				}
				if ca.Door(d) != cb.Door(d) {
					t.Fatalf("cell (%d,%d) door %v diverged", x, y, d)
				}
			}
		}
	}
}

// checkStandardInvariants verifies the invariants that apply to every
// generator's output: bilateral wall/door consistency, door implies wall,
// border walls, and passable implies non-empty.
func checkStandardInvariants(t *testing.T, g *grid.Grid) {
	t.Helper()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if c.IsPassable && c.IsEmpty {
				t.Fatalf("cell (%d,%d) is passable but empty", x, y)
			}
			if c.IsEmpty {
				continue
			}
			for _, d := range grid.Directions {
				if c.Door(d) && !c.Wall(d) {
					t.Fatalf("cell (%d,%d) has door %v without wall", x, y, d)
				}
				if g.NeighborEmpty(x, y, d) {
					if !c.Wall(d) {
						t.Fatalf("cell (%d,%d) borders emptiness on %v without a wall", x, y, d)
					}
					continue
				}
				nx, ny := g.Neighbor(x, y, d)
				n := g.At(nx, ny)
				opp := d.Opposite()
				if c.Wall(d) != n.Wall(opp) {
					t.Fatalf("wall mismatch between (%d,%d) and (%d,%d) on %v", x, y, nx, ny, d)
				}
				if c.Door(d) != n.Door(opp) {
					t.Fatalf("door mismatch between (%d,%d) and (%d,%d) on %v", x, y, nx, ny, d)
				}
			}
		}
	}
}

// roomAABBsFromGrid recovers each painted room's bounding box by
// flood-filling connected Room-tagged cells. Rooms are always separated by
// at least one empty cell (padding >= 1 for the room packer, buffer >= 2 for
// the passage connector), so a 4-connected flood fill never merges two
// distinct rooms.
func roomAABBsFromGrid(g *grid.Grid) []aabb {
	seen := make([]bool, g.Width*g.Height)
	var rooms []aabb

	var stack [][2]int
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := g.Index(x, y)
			if seen[idx] {
				continue
			}
			c := g.At(x, y)
			if c.CellType != roomCellType {
				seen[idx] = true
				continue
			}
			minX, minY, maxX, maxY := x, y, x, y
			stack = stack[:0]
			stack = append(stack, [2]int{x, y})
			seen[idx] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if p[0] < minX {
					minX = p[0]
				}
				if p[0] > maxX {
					maxX = p[0]
				}
				if p[1] < minY {
					minY = p[1]
				}
				if p[1] > maxY {
					maxY = p[1]
				}
				for _, d := range grid.Directions {
					nx, ny := g.Neighbor(p[0], p[1], d)
					if !g.InBounds(nx, ny) {
						continue
					}
					nidx := g.Index(nx, ny)
					if seen[nidx] {
						continue
					}
					if g.At(nx, ny).CellType != roomCellType {
						continue
					}
					seen[nidx] = true
					stack = append(stack, [2]int{nx, ny})
				}
			}
			rooms = append(rooms, aabb{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1})
		}
	}
	return rooms
}

// aabbHasDoor reports whether any perimeter cell of r carries a door.
func aabbHasDoor(g *grid.Grid, r aabb) bool {
	for x := r.X; x <= r.x2(); x++ {
		for _, y := range []int{r.Y, r.y2()} {
			c := g.At(x, y)
			for _, d := range grid.Directions {
				if c.Door(d) {
					return true
				}
			}
		}
	}
	for y := r.Y; y <= r.y2(); y++ {
		for _, x := range []int{r.X, r.x2()} {
			c := g.At(x, y)
			for _, d := range grid.Directions {
				if c.Door(d) {
					return true
				}
			}
		}
	}
	return false
}
