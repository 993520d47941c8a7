package dungeon

import "dungeonforge/internal/grid"

// applyBorderWalls implements the random-walk generator's border-wall pass,
// but is written generically so every generator can use it to guarantee
// that every non-empty cell bordering emptiness or the map edge carries a
// wall there.
func applyBorderWalls(g *grid.Grid) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if c.IsEmpty {
				continue
			}
			for _, d := range grid.Directions {
				if g.NeighborEmpty(x, y, d) {
					c.SetWall(d, true)
				}
			}
		}
	}
}

// normalizeAdjacentWalls resolves a wall-coherence gap: the passage
// connector sets a cell's walls from its own view of its neighbors at
// carve time, and never back-updates a neighbor discovered later. This
// pass walks every adjacent non-empty pair once and reconciles mismatches.
// A door on either side wins outright (doors imply walls on both sides).
// Otherwise, if either cell is a room-perimeter cell the wall is
// intentional and is forced onto both sides; if neither is, the corridors
// meet in open space and both walls are cleared.
//
// This pass always runs, rather than leaving the inconsistency for a
// downstream renderer to tolerate or not.
func normalizeAdjacentWalls(g *grid.Grid) {
	// Only need to walk North/East once per cell — South/West are covered
	// as the North/East side of some other cell.
	pairDirs := [2]grid.Direction{grid.North, grid.East}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			a := g.At(x, y)
			if a.IsEmpty {
				continue
			}
			for _, d := range pairDirs {
				nx, ny := g.Neighbor(x, y, d)
				b := g.At(nx, ny)
				if b == nil || b.IsEmpty {
					continue
				}
				opp := d.Opposite()

				if a.Door(d) || b.Door(opp) {
					a.SetDoor(d, true)
					b.SetDoor(opp, true)
					continue
				}

				aw, bw := a.Wall(d), b.Wall(opp)
				if aw == bw {
					continue
				}
				if a.CellType == roomCellType || b.CellType == roomCellType {
					a.SetWall(d, true)
					b.SetWall(opp, true)
				} else {
					a.SetWall(d, false)
					b.SetWall(opp, false)
				}
			}
		}
	}
}

// roomCellType marks a cell as belonging to a deliberately-walled room
// perimeter (as opposed to a corridor cell, whose walls are incidental).
const roomCellType = "Room"

// corridorCellType marks a cell carved by a passage or a random walk.
const corridorCellType = "Corridor"
