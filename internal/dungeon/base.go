// Package dungeon implements the three map generators: the room packer,
// the passage connector, and the random-walk generator. All three share a
// generator-base contract — parameter validation, empty-map construction,
// and PRNG lifecycle — implemented here once and reused by each algorithm
// file.
package dungeon

import (
	"strconv"

	"dungeonforge/internal/grid"
	"dungeonforge/internal/rng"
)

// MinDoorSpacing is the number of intervening wall cells required between
// two doors on the same wall segment.
const MinDoorSpacing = 2

// Params are the common inputs to every generator.
type Params struct {
	Width  int
	Height int
	// Seed selects deterministic output when non-nil. A nil Seed asks the
	// generator to pick an implementation-defined fresh seed.
	Seed *int64
}

// Validate checks width/height against the allowed dimension bounds,
// returning ErrInvalidDimensions on violation.
func Validate(width, height int) error {
	if width < grid.MinWidth || width > grid.MaxWidth {
		return ErrInvalidDimensions
	}
	if height < grid.MinHeight || height > grid.MaxHeight {
		return ErrInvalidDimensions
	}
	return nil
}

// emptyGrid allocates the all-empty grid a generator mutates in place.
func emptyGrid(width, height int) *grid.Grid {
	return grid.New(width, height)
}

// seedSource builds the PRNG for one generation run, and returns the
// concrete seed used so it can be recorded on the map's metadata.
func seedSource(seed *int64) (*rng.Source, int64) {
	if seed == nil {
		src := rng.NewFresh()
		return src, src.Seed()
	}
	return rng.New(*seed), *seed
}

// sealMetadata stamps the common bookkeeping fields onto a freshly generated
// grid: which generator produced it, which seed it used, and how many rooms
// it placed.
func sealMetadata(g *grid.Grid, kind string, seed int64, roomsPlaced int, exhausted bool) {
	g.Metadata[MetaKind] = kind
	g.Metadata[MetaSeed] = strconv.FormatInt(seed, 10)
	g.Metadata[MetaRoomsPlaced] = strconv.Itoa(roomsPlaced)
	g.Metadata[MetaPlacementExhausted] = strconv.FormatBool(exhausted)
}
