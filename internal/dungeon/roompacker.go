package dungeon

import (
	"math"

	"dungeonforge/internal/grid"
	"dungeonforge/internal/rng"
)

// Room-packer tuning constants.
const (
	roomPackerMinRoomW           = 4
	roomPackerMinRoomH           = 4
	roomPackerMaxRoomSize        = 10
	roomPackerMaxPlacementTries  = 100
	roomPackerAdditionalDoorProb = 0.3
	roomPackerPadding            = 1
)

// aabb is an axis-aligned rectangle in south-west/width-height form.
type aabb struct {
	X, Y, W, H int
}

func (r aabb) x2() int { return r.X + r.W - 1 }
func (r aabb) y2() int { return r.Y + r.H - 1 }

// inflate returns r expanded by n cells on every side.
func (r aabb) inflate(n int) aabb {
	return aabb{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// intersects reports whether two AABBs overlap, inclusive of shared edges.
func (r aabb) intersects(o aabb) bool {
	return r.X <= o.x2() && r.x2() >= o.X && r.Y <= o.y2() && r.y2() >= o.Y
}

// RoomGenerator packs non-overlapping rectangular rooms and cuts doors into
// them at random non-corner wall positions; no minimum spacing between
// doors is enforced. Doors opened by this generator do not lead anywhere —
// see the note on placeDoor.
type RoomGenerator struct{}

// Generate produces a map of packed rooms per params.
func (RoomGenerator) Generate(params Params) (*grid.Grid, error) {
	if err := Validate(params.Width, params.Height); err != nil {
		return nil, err
	}
	src, seed := seedSource(params.Seed)
	g := emptyGrid(params.Width, params.Height)

	target := (params.Width * params.Height) / (roomPackerMinRoomW * roomPackerMinRoomH * 3)
	var rooms []aabb
	attempts := 0
	for len(rooms) < target && attempts < roomPackerMaxPlacementTries {
		attempts++
		cand, ok := sampleRoom(g, src)
		if !ok {
			continue
		}
		inflated := cand.inflate(roomPackerPadding)
		overlap := false
		for _, r := range rooms {
			if inflated.intersects(r.inflate(roomPackerPadding)) {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		rooms = append(rooms, cand)
		paintRoom(g, cand)
	}

	for _, r := range rooms {
		addRoomDoors(g, r, src)
	}

	applyBorderWalls(g)
	exhausted := len(rooms) < target
	sealMetadata(g, "room", seed, len(rooms), exhausted)
	return g, nil
}

// sampleRoom draws one candidate rectangle: an orientation, a long side,
// a short side of at least roomPackerMinRoomW and at most the long side
// (exactly roomPackerMinRoomW when the long side is shorter than that), and
// a margin-1 position.
func sampleRoom(g *grid.Grid, src *rng.Source) (aabb, bool) {
	wide := src.Bool(0.5)
	long := src.IntRange(3, roomPackerMaxRoomSize+1)
	shortMax := roomPackerMaxRoomSize
	if long < shortMax {
		shortMax = long
	}
	if shortMax < roomPackerMinRoomW {
		shortMax = roomPackerMinRoomW
	}
	short := src.IntRange(roomPackerMinRoomW, shortMax+1)

	var w, h int
	if wide {
		w, h = long, short
	} else {
		w, h = short, long
	}

	maxX := g.Width - w - 1
	maxY := g.Height - h - 1
	if maxX < 1 || maxY < 1 {
		return aabb{}, false
	}
	x := src.IntRange(1, maxX+1)
	y := src.IntRange(1, maxY+1)
	return aabb{X: x, Y: y, W: w, H: h}, true
}

// paintRoom carves floor and marks perimeter walls for a placed room.
func paintRoom(g *grid.Grid, r aabb) {
	for y := r.Y; y <= r.y2(); y++ {
		for x := r.X; x <= r.x2(); x++ {
			c := g.At(x, y)
			c.SetPassable(true)
			c.CellType = roomCellType
			if x == r.X {
				c.SetWall(grid.West, true)
			}
			if x == r.x2() {
				c.SetWall(grid.East, true)
			}
			if y == r.Y {
				c.SetWall(grid.South, true)
			}
			if y == r.y2() {
				c.SetWall(grid.North, true)
			}
		}
	}
}

// wallCandidate is a non-corner perimeter cell eligible for a door.
type wallCandidate struct {
	X, Y int
	Dir  grid.Direction
}

// roomWallCandidates lists every non-corner perimeter position on r, keyed
// by which wall it belongs to.
func roomWallCandidates(r aabb) []wallCandidate {
	var out []wallCandidate
	if r.W > 2 {
		for x := r.X + 1; x < r.x2(); x++ {
			out = append(out, wallCandidate{X: x, Y: r.Y, Dir: grid.South})
			out = append(out, wallCandidate{X: x, Y: r.y2(), Dir: grid.North})
		}
	}
	if r.H > 2 {
		for y := r.Y + 1; y < r.y2(); y++ {
			out = append(out, wallCandidate{X: r.X, Y: y, Dir: grid.West})
			out = append(out, wallCandidate{X: r.x2(), Y: y, Dir: grid.East})
		}
	}
	return out
}

// addRoomDoors places at least one door on r, then keeps rolling for more
// with geometrically decaying probability.
func addRoomDoors(g *grid.Grid, r aabb, src *rng.Source) {
	candidates := roomWallCandidates(r)
	if len(candidates) == 0 {
		return
	}

	idx := src.Pick(len(candidates))
	placeDoor(g, candidates[idx])
	candidates = append(candidates[:idx], candidates[idx+1:]...)

	for k := 1; len(candidates) > 0; k++ {
		p := math.Pow(roomPackerAdditionalDoorProb, float64(k))
		if !src.Bool(p) {
			break
		}
		idx := src.Pick(len(candidates))
		placeDoor(g, candidates[idx])
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
}

// placeDoor cuts a door into the owning cell only. The room generator makes
// no attempt at door-side coherence — callers aware of this either accept
// it or use the passage generator instead. The far side, if any, is left
// untouched.
func placeDoor(g *grid.Grid, wc wallCandidate) {
	c := g.At(wc.X, wc.Y)
	if c == nil {
		return
	}
	c.SetDoor(wc.Dir, true)
}
