package dungeon

import "errors"

// Error kinds surfaced by generators. Placement exhaustion is deliberately
// absent from this list: it is not an error, it is recorded on the returned
// map's Metadata (see MetaPlacementExhausted).
var (
	// ErrInvalidDimensions is returned when width/height fall outside
	// [grid.MinWidth, grid.MaxWidth] / [grid.MinHeight, grid.MaxHeight].
	ErrInvalidDimensions = errors.New("dungeon: invalid dimensions")

	// ErrInvalidParameters is returned for generator-specific parameter
	// violations, e.g. maxRooms < minRooms.
	ErrInvalidParameters = errors.New("dungeon: invalid parameters")
)

// Metadata keys a generator may set on the returned Grid.
const (
	// MetaSeed records the seed actually used, so a caller that omitted one
	// can recover which fresh seed was chosen.
	MetaSeed = "generator.seed"
	// MetaKind records which generator produced the map: "room", "passage",
	// or "walk".
	MetaKind = "generator.kind"
	// MetaPlacementExhausted is "true" when a room/passage generator ran out
	// of placement attempts before reaching its target room count. This is
	// not an error — the map is simply smaller than requested.
	MetaPlacementExhausted = "generator.placement_exhausted"
	// MetaRoomsPlaced records how many rooms a generator actually placed.
	MetaRoomsPlaced = "generator.rooms_placed"
)
