package dungeon

import (
	"math"

	"dungeonforge/internal/grid"
	"dungeonforge/internal/rng"
)

// Passage-connector tuning constants.
const (
	passageMaxPlacementTries = 100
	passageBuffer            = 2
	passageRectMinSide       = 3
	passageRectMaxSide       = 8
	passageCircleMinRadius   = 2
	passageCircleMaxRadius   = 4
	passageStubMinLen        = 3
	passageStubMaxLen        = 6
)

// roomShape distinguishes the two room silhouettes a passage generator can
// sample.
type roomShape uint8

const (
	shapeRect roomShape = iota
	shapeCircle
)

type sampledRoom struct {
	kind   roomShape
	rect   aabb // valid when kind == shapeRect
	cx, cy int  // circle center, valid when kind == shapeCircle
	radius int  // valid when kind == shapeCircle
}

func (s sampledRoom) bounds() aabb {
	if s.kind == shapeRect {
		return s.rect
	}
	return aabb{X: s.cx - s.radius, Y: s.cy - s.radius, W: 2*s.radius + 1, H: 2*s.radius + 1}
}

func (s sampledRoom) center() (int, int) {
	if s.kind == shapeRect {
		return s.rect.X + s.rect.W/2, s.rect.Y + s.rect.H/2
	}
	return s.cx, s.cy
}

// axis is one of the two carving directions a corridor stub can take.
type axis uint8

const (
	axisHorizontal axis = iota
	axisVertical
)

// PassageParams extends the common Params with the passage connector's
// room-count bounds.
type PassageParams struct {
	Params
	MinRooms int
	MaxRooms int
}

// PassageGenerator samples rooms and connects them with a spanning set of
// corridors plus extra loops.
type PassageGenerator struct{}

// Generate produces a map of connected rooms per params.
func (PassageGenerator) Generate(params PassageParams) (*grid.Grid, error) {
	if err := Validate(params.Width, params.Height); err != nil {
		return nil, err
	}
	if params.MinRooms < 1 || params.MaxRooms < params.MinRooms {
		return nil, ErrInvalidParameters
	}
	src, seed := seedSource(params.Seed)
	g := emptyGrid(params.Width, params.Height)

	target := src.IntRange(params.MinRooms, params.MaxRooms+1)
	var rooms []sampledRoom
	attempts := 0
	for len(rooms) < target && attempts < passageMaxPlacementTries {
		attempts++
		cand, ok := samplePassageRoom(g, src)
		if !ok {
			continue
		}
		inflated := cand.bounds().inflate(passageBuffer)
		overlap := false
		for _, r := range rooms {
			if inflated.intersects(r.bounds().inflate(passageBuffer)) {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		rooms = append(rooms, cand)
		paintPassageRoom(g, cand)
	}

	exhausted := len(rooms) < target
	if len(rooms) > 0 {
		edges := connectRooms(g, rooms, src)
		addExtraPassages(g, rooms, edges, src)
	}

	normalizeAdjacentWalls(g)
	applyBorderWalls(g)
	sealMetadata(g, "passage", seed, len(rooms), exhausted)
	return g, nil
}

// samplePassageRoom draws one rectangular or circular candidate room.
func samplePassageRoom(g *grid.Grid, src *rng.Source) (sampledRoom, bool) {
	if src.Bool(0.5) {
		maxSide := min(g.Width/3, g.Height/3, passageRectMaxSide)
		if maxSide < passageRectMinSide {
			return sampledRoom{}, false
		}
		w := src.IntRange(passageRectMinSide, maxSide+1)
		h := src.IntRange(passageRectMinSide, maxSide+1)
		maxX := g.Width - w - 1
		maxY := g.Height - h - 1
		if maxX < 1 || maxY < 1 {
			return sampledRoom{}, false
		}
		x := src.IntRange(1, maxX+1)
		y := src.IntRange(1, maxY+1)
		return sampledRoom{kind: shapeRect, rect: aabb{X: x, Y: y, W: w, H: h}}, true
	}

	maxR := min(passageCircleMaxRadius, min(g.Width, g.Height)/6)
	if maxR < passageCircleMinRadius {
		return sampledRoom{}, false
	}
	r := src.IntRange(passageCircleMinRadius, maxR+1)
	if g.Width-2*r-2 < 1 || g.Height-2*r-2 < 1 {
		return sampledRoom{}, false
	}
	cx := src.IntRange(1+r, g.Width-1-r+1)
	cy := src.IntRange(1+r, g.Height-1-r+1)
	return sampledRoom{kind: shapeCircle, cx: cx, cy: cy, radius: r}, true
}

// paintPassageRoom carves floor for a sampled room and marks its perimeter
// walls.
func paintPassageRoom(g *grid.Grid, s sampledRoom) {
	if s.kind == shapeRect {
		paintRoom(g, s.rect)
		return
	}
	paintCircleRoom(g, s.cx, s.cy, s.radius)
}

// paintCircleRoom carves a disc of floor and walls the boundary: edge cells
// receive walls on the sides lacking a same-room neighbour. Membership is a
// pure distance test, so wall computation doesn't depend on carving order.
func paintCircleRoom(g *grid.Grid, cx, cy, r int) {
	member := func(x, y int) bool {
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r*r
	}
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if !member(x, y) {
				continue
			}
			if c := g.At(x, y); c != nil {
				c.SetPassable(true)
				c.CellType = roomCellType
			}
		}
	}
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if !member(x, y) {
				continue
			}
			c := g.At(x, y)
			if c == nil {
				continue
			}
			for _, d := range grid.Directions {
				nx, ny := g.Neighbor(x, y, d)
				if !member(nx, ny) {
					c.SetWall(d, true)
				}
			}
		}
	}
}

type edgeKey struct{ a, b int }

func normEdge(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

func roomDistance(a, b sampledRoom) float64 {
	ax, ay := a.center()
	bx, by := b.center()
	return math.Hypot(float64(ax-bx), float64(ay-by))
}

// connectRooms implements the spanning-connection phase: grow a connected
// set one room at a time, always joining the nearest connected room to a
// randomly chosen outsider.
func connectRooms(g *grid.Grid, rooms []sampledRoom, src *rng.Source) map[edgeKey]bool {
	edges := make(map[edgeKey]bool)
	n := len(rooms)
	connected := make([]bool, n)
	connectedList := make([]int, 0, n)

	start := src.Pick(n)
	connected[start] = true
	connectedList = append(connectedList, start)

	for len(connectedList) < n {
		var outsiders []int
		for i := 0; i < n; i++ {
			if !connected[i] {
				outsiders = append(outsiders, i)
			}
		}
		pick := outsiders[src.Pick(len(outsiders))]

		best, bestDist := -1, math.MaxFloat64
		for _, c := range connectedList {
			if d := roomDistance(rooms[pick], rooms[c]); d < bestDist {
				bestDist, best = d, c
			}
		}

		carvePassageBetween(g, rooms[pick], rooms[best], src)
		edges[normEdge(pick, best)] = true
		connected[pick] = true
		connectedList = append(connectedList, pick)
	}
	return edges
}

// addExtraPassages adds extra loop-forming corridors once every room is
// already connected.
func addExtraPassages(g *grid.Grid, rooms []sampledRoom, edges map[edgeKey]bool, src *rng.Source) {
	n := len(rooms)
	if n < 2 {
		return
	}
	maxExtra := n / 2
	if maxExtra < 2 {
		maxExtra = 2
	}
	extra := src.IntRange(1, maxExtra+1)

	for i := 0; i < extra; i++ {
		a := src.Pick(n)
		best, bestDist := -1, math.MaxFloat64
		for b := 0; b < n; b++ {
			if b == a || edges[normEdge(a, b)] {
				continue
			}
			if d := roomDistance(rooms[a], rooms[b]); d < bestDist {
				bestDist, best = d, b
			}
		}
		if best == -1 {
			continue
		}
		carvePassageBetween(g, rooms[a], rooms[best], src)
		edges[normEdge(a, best)] = true
	}
}

// carvePassageBetween carves a straight/T/X shaped passage between two
// rooms' centers, the shape chosen uniformly.
func carvePassageBetween(g *grid.Grid, a, b sampledRoom, src *rng.Source) {
	x1, y1 := a.center()
	x2, y2 := b.center()
	carveStraight(g, x1, y1, x2, y2)

	switch src.Pick(3) {
	case 0: // straight
		return
	case 1: // T-shaped
		ax, ay, orth := stubAnchor(x1, y1, x2, y2)
		sign := 1
		if src.Bool(0.5) {
			sign = -1
		}
		carveStub(g, ax, ay, orth, sign, src)
	default: // X-shaped
		ax, ay, orth := stubAnchor(x1, y1, x2, y2)
		carveStub(g, ax, ay, orth, 1, src)
		carveStub(g, ax, ay, orth, -1, src)
	}
}

func carveStraight(g *grid.Grid, x1, y1, x2, y2 int) {
	carveH(g, x1, x2, y1)
	carveV(g, y1, y2, x2)
}

func carveH(g *grid.Grid, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		carvePassageCell(g, x, y)
	}
}

func carveV(g *grid.Grid, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		carvePassageCell(g, x, y)
	}
}

// stubAnchor finds the point on the L-shaped straight passage nearest the
// literal midpoint of the two room centers, and reports which axis is
// orthogonal to the corridor segment at that point — the axis a T/X stub
// grows along so it reads as a junction rather than a disconnected branch.
func stubAnchor(x1, y1, x2, y2 int) (ax, ay int, orthogonal axis) {
	mx, my := (x1+x2)/2, (y1+y2)/2

	loX, hiX := x1, x2
	if loX > hiX {
		loX, hiX = hiX, loX
	}
	loY, hiY := y1, y2
	if loY > hiY {
		loY, hiY = hiY, loY
	}

	hx := clampInt(mx, loX, hiX)
	hDist := absInt(hx-mx) + absInt(y1-my)

	vy := clampInt(my, loY, hiY)
	vDist := absInt(x2-mx) + absInt(vy-my)

	if hDist <= vDist {
		return hx, y1, axisVertical
	}
	return x2, vy, axisHorizontal
}

// carveStub extends a corridor stub from (x, y) along axis a in direction
// sign (+1 or -1), for a random length in [passageStubMinLen,
// passageStubMaxLen].
func carveStub(g *grid.Grid, x, y int, a axis, sign int, src *rng.Source) {
	length := src.IntRange(passageStubMinLen, passageStubMaxLen+1)
	for i := 1; i <= length; i++ {
		cx, cy := x, y
		if a == axisHorizontal {
			cx = x + sign*i
		} else {
			cy = y + sign*i
		}
		if !g.InBounds(cx, cy) {
			break
		}
		carvePassageCell(g, cx, cy)
	}
}

// carvePassageCell marks (x, y) as corridor floor, sets walls from its
// current view of its neighbors, and cuts a door where it meets a room wall
// facing it. Room cells themselves are never overwritten; the corridor
// simply meets them.
func carvePassageCell(g *grid.Grid, x, y int) {
	c := g.At(x, y)
	if c == nil || c.CellType == roomCellType {
		return
	}
	c.SetPassable(true)
	c.CellType = corridorCellType

	for _, d := range grid.Directions {
		c.SetWall(d, g.NeighborEmpty(x, y, d))
	}
	for _, d := range grid.Directions {
		n := g.NeighborCell(x, y, d)
		if n == nil || n.CellType != roomCellType {
			continue
		}
		opp := d.Opposite()
		if n.Wall(opp) {
			c.SetDoor(d, true)
			n.SetDoor(opp, true)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
