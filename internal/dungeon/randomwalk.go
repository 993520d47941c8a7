package dungeon

import (
	"dungeonforge/internal/grid"
	"dungeonforge/internal/rng"
)

// Random-walk tuning constants.
const (
	minWalkSteps          = 2
	maxWalkSteps          = 8
	maxPossibleSteps      = 16
	initialContinueChance = 0.75
	turnChance            = 0.5

	minEndRoomSize = 2
	maxEndRoomSize = 4

	additionalDoorChance    = 0.5
	edgeDoorReduction       = 0.15
	minWallDistanceFromEdge = 3
)

// turnSign records which way a walk last turned, so the next turn can
// alternate with it.
type turnSign uint8

const (
	turnNone turnSign = iota
	turnLeft
	turnRight
)

func turnRightOf(d grid.Direction) grid.Direction { return grid.Direction((int(d) + 1) % 4) }
func turnLeftOf(d grid.Direction) grid.Direction  { return grid.Direction((int(d) + 3) % 4) }

// turnPoint is a coordinate where a walk changed direction, recorded for
// deferred branch-launch processing once the walk terminates.
type turnPoint struct {
	x, y     int
	notTaken grid.Direction
}

// pendingWalk is one entry of the walk-launch work queue: either an
// unresolved door stub or a turn-point branch launch. When needsOriginCarve is set,
// the walk's starting cell is the (not yet carved) far side of a placed
// door and must be carved before stepping; otherwise the starting cell is
// an already-carved turn point.
type pendingWalk struct {
	x, y             int
	dir              grid.Direction
	needsOriginCarve bool
	originDoorX      int
	originDoorY      int
	originDoorDir    grid.Direction
}

// walkOutcome is the terminal state a single walk lands in.
type walkOutcome uint8

const (
	outcomeOutOfBounds walkOutcome = iota
	outcomeBlocked
	outcomeJoinedExisting
	outcomeChoseToStop
)

// RandomWalkGenerator grows corridors out of a central anchor room by
// repeated biased random walks, attaching end rooms and back-patching
// unresolved door stubs until none remain.
type RandomWalkGenerator struct{}

// Generate produces a map built by the random-walk algorithm.
func (RandomWalkGenerator) Generate(params Params) (*grid.Grid, error) {
	if err := Validate(params.Width, params.Height); err != nil {
		return nil, err
	}
	src, seed := seedSource(params.Seed)
	g := emptyGrid(params.Width, params.Height)

	cx, cy := params.Width/2, params.Height/2
	anchor := aabb{X: cx - 1, Y: cy - 1, W: 3, H: 3}
	paintRoom(g, anchor)

	roomsPlaced := 1
	var queue []pendingWalk
	for _, spec := range [4]struct {
		x, y int
		dir  grid.Direction
	}{
		{cx, cy + 1, grid.North},
		{cx + 1, cy, grid.East},
		{cx, cy - 1, grid.South},
		{cx - 1, cy, grid.West},
	} {
		g.At(spec.x, spec.y).SetDoor(spec.dir, true)
		queue = append(queue, pendingWalk{
			dir: spec.dir, needsOriginCarve: true,
			originDoorX: spec.x, originDoorY: spec.y, originDoorDir: spec.dir,
		})
	}

	for len(queue) > 0 {
		pw := queue[0]
		queue = queue[1:]
		runWalk(g, pw, src, &queue, &roomsPlaced)
	}

	normalizeAdjacentWalls(g)
	applyBorderWalls(g)
	sealMetadata(g, "walk", seed, roomsPlaced, false)
	return g, nil
}

// runWalk executes one walk from launch to termination, then processes its
// recorded turn points into further queued launches.
func runWalk(g *grid.Grid, pw pendingWalk, src *rng.Source, queue *[]pendingWalk, roomsPlaced *int) {
	x, y, dir := pw.x, pw.y, pw.dir
	if pw.needsOriginCarve {
		nx, ny := g.Neighbor(pw.originDoorX, pw.originDoorY, pw.originDoorDir)
		back := pw.originDoorDir.Opposite()
		c := g.At(nx, ny)
		// A stub whose far side is off the grid, or whose far-side door would
		// sit within MinDoorSpacing of another door on that wall, is withdrawn:
		// its door is cleared and no walk starts. A far side that another walk
		// already joined through this door is kept.
		if c == nil || (!c.Door(back) && doorWithinSpan(g, nx, ny, back, MinDoorSpacing)) {
			g.At(pw.originDoorX, pw.originDoorY).SetDoor(pw.originDoorDir, false)
			return
		}
		c.SetPassable(true)
		c.CellType = corridorCellType
		c.SetDoor(pw.originDoorDir.Opposite(), true)
		x, y = nx, ny
	}

	lastTurn := turnNone
	steps := 0
	var turnPoints []turnPoint
	outcome := outcomeOutOfBounds

stepLoop:
	for {
		nx, ny := g.Neighbor(x, y, dir)
		if nx < 1 || nx > g.Width-2 || ny < 1 || ny > g.Height-2 {
			outcome = outcomeOutOfBounds
			break stepLoop
		}

		n := g.At(nx, ny)
		if !n.IsEmpty {
			back := dir.Opposite()
			if n.Wall(back) && !doorWithinSpan(g, nx, ny, back, MinDoorSpacing) {
				g.At(x, y).SetDoor(dir, true)
				n.SetDoor(back, true)
				outcome = outcomeJoinedExisting
			} else {
				g.At(x, y).SetWall(dir, true)
				outcome = outcomeBlocked
			}
			break stepLoop
		}

		n.SetPassable(true)
		n.CellType = corridorCellType
		x, y = nx, ny
		steps++

		if steps < minWalkSteps {
			continue
		}
		if steps >= maxWalkSteps {
			outcome = outcomeChoseToStop
			break stepLoop
		}
		pContinue := initialContinueChance * (1 - float64(steps-minWalkSteps)/float64(maxPossibleSteps-minWalkSteps))
		if src.Float64() > pContinue {
			outcome = outcomeChoseToStop
			break stepLoop
		}
		if src.Bool(turnChance) {
			sign := turnLeft
			switch lastTurn {
			case turnLeft:
				sign = turnRight
			case turnRight:
				sign = turnLeft
			default:
				if src.Bool(0.5) {
					sign = turnRight
				}
			}
			var notTaken grid.Direction
			if sign == turnLeft {
				notTaken = turnRightOf(dir)
				dir = turnLeftOf(dir)
			} else {
				notTaken = turnLeftOf(dir)
				dir = turnRightOf(dir)
			}
			turnPoints = append(turnPoints, turnPoint{x: x, y: y, notTaken: notTaken})
			lastTurn = sign
		}
	}

	if outcome == outcomeChoseToStop {
		// The entry door must keep MinDoorSpacing on both faces of its wall;
		// otherwise the walk ends in a plain dead-end.
		ex, ey := g.Neighbor(x, y, dir)
		entryOK := !doorWithinSpan(g, x, y, dir, MinDoorSpacing) && !doorWithinSpan(g, ex, ey, dir.Opposite(), MinDoorSpacing)
		if entryOK && placeEndRoom(g, x, y, dir, src, queue) {
			*roomsPlaced++
		} else {
			g.At(x, y).SetWall(dir, true)
		}
	}

	for _, tp := range turnPoints {
		if src.Bool(0.5) {
			*queue = append(*queue, pendingWalk{x: tp.x, y: tp.y, dir: tp.notTaken})
		}
	}
}

// endRoomAABB positions a candidate end room so the face opposite dir abuts
// (wx, wy), centred on the perpendicular axis.
func endRoomAABB(wx, wy int, dir grid.Direction, w, h int) aabb {
	switch dir {
	case grid.North:
		return aabb{X: wx - (w-1)/2, Y: wy + 1, W: w, H: h}
	case grid.South:
		return aabb{X: wx - (w-1)/2, Y: wy - h, W: w, H: h}
	case grid.East:
		return aabb{X: wx + 1, Y: wy - (h-1)/2, W: w, H: h}
	default: // West
		return aabb{X: wx - w, Y: wy - (h-1)/2, W: w, H: h}
	}
}

// roomFits reports whether r lies entirely on the grid and over cells that
// are still empty.
func roomFits(g *grid.Grid, r aabb) bool {
	if r.X < 0 || r.Y < 0 || r.x2() >= g.Width || r.y2() >= g.Height {
		return false
	}
	for y := r.Y; y <= r.y2(); y++ {
		for x := r.X; x <= r.x2(); x++ {
			if !g.At(x, y).IsEmpty {
				return false
			}
		}
	}
	return true
}

// placeEndRoom implements shrink-to-fit end-room placement. On success it
// paints the room, opens the entry door back to the walk terminus, and
// rolls extra doors via addRandomDoorsToRoom.
func placeEndRoom(g *grid.Grid, wx, wy int, dir grid.Direction, src *rng.Source, queue *[]pendingWalk) bool {
	w := src.IntRange(minEndRoomSize, maxEndRoomSize+1)
	h := src.IntRange(minEndRoomSize, maxEndRoomSize+1)

	for w >= minEndRoomSize && h >= minEndRoomSize {
		r := endRoomAABB(wx, wy, dir, w, h)
		if roomFits(g, r) {
			paintRoom(g, r)
			entryWall := dir.Opposite()
			g.At(wx, wy).SetDoor(dir, true)
			ex, ey := g.Neighbor(wx, wy, dir)
			g.At(ex, ey).SetDoor(entryWall, true)
			addRandomDoorsToRoom(g, r, entryWall, src, queue)
			return true
		}
		if dir == grid.North || dir == grid.South {
			h--
		} else {
			w--
		}
	}
	return false
}

// addRandomDoorsToRoom rolls extra doors on every room wall but the entry
// one, enqueueing each successful door as a fresh walk launch.
func addRandomDoorsToRoom(g *grid.Grid, r aabb, entryWall grid.Direction, src *rng.Source, queue *[]pendingWalk) {
	for _, wc := range roomWallCandidates(r) {
		if wc.Dir == entryWall {
			continue
		}
		distEdge := min(wc.X, g.Width-1-wc.X, wc.Y, g.Height-1-wc.Y)
		chance := additionalDoorChance - float64(minWallDistanceFromEdge-distEdge)*edgeDoorReduction
		if chance < 0 {
			chance = 0
		}
		if !src.Bool(chance) {
			continue
		}
		if doorWithinSpan(g, wc.X, wc.Y, wc.Dir, MinDoorSpacing*2) {
			continue
		}
		g.At(wc.X, wc.Y).SetDoor(wc.Dir, true)
		*queue = append(*queue, pendingWalk{
			dir: wc.Dir, needsOriginCarve: true,
			originDoorX: wc.X, originDoorY: wc.Y, originDoorDir: wc.Dir,
		})
	}
}

// doorWithinSpan reports whether any cell within span cells of (x, y) along
// the wall dir runs along already carries a door facing dir — the spacing
// check behind the minimum door-spacing rule.
func doorWithinSpan(g *grid.Grid, x, y int, dir grid.Direction, span int) bool {
	if dir == grid.North || dir == grid.South {
		for dx := -span; dx <= span; dx++ {
			if dx == 0 {
				continue
			}
			if c := g.At(x+dx, y); c != nil && c.Door(dir) {
				return true
			}
		}
		return false
	}
	for dy := -span; dy <= span; dy++ {
		if dy == 0 {
			continue
		}
		if c := g.At(x, y+dy); c != nil && c.Door(dir) {
			return true
		}
	}
	return false
}
