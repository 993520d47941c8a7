// Package mapjson implements the map wire format: the exact field names
// a viewer or persistence layer expects, independent of the in-memory
// grid.Cell layout used by the generators.
package mapjson

import (
	"encoding/json"

	"dungeonforge/internal/grid"
)

// CellData is the wire representation of one grid.Cell.
type CellData struct {
	IsEmpty      bool              `json:"IsEmpty"`
	IsPassable   bool              `json:"IsPassable"`
	HasNorthWall bool              `json:"HasNorthWall"`
	HasEastWall  bool              `json:"HasEastWall"`
	HasSouthWall bool              `json:"HasSouthWall"`
	HasWestWall  bool              `json:"HasWestWall"`
	HasNorthDoor bool              `json:"HasNorthDoor"`
	HasEastDoor  bool              `json:"HasEastDoor"`
	HasSouthDoor bool              `json:"HasSouthDoor"`
	HasWestDoor  bool              `json:"HasWestDoor"`
	CellType     string            `json:"CellType"`
	Properties   map[string]string `json:"Properties"`
}

// Map is the wire representation of a grid.Grid.
type Map struct {
	Width      int               `json:"Width"`
	Height     int               `json:"Height"`
	MapName    string            `json:"MapName"`
	FloorLevel int               `json:"FloorLevel"`
	Metadata   map[string]string `json:"Metadata"`
	Cells      []CellData        `json:"Cells"`
}

// FromGrid converts g into its wire representation. Cell order is row-major
// with index = y*Width+x and y increasing northward, matching grid.Grid's
// own layout, so the conversion is a straight field copy.
func FromGrid(g *grid.Grid) Map {
	cells := make([]CellData, len(g.Cells))
	for i := range g.Cells {
		c := &g.Cells[i]
		cells[i] = CellData{
			IsEmpty:      c.IsEmpty,
			IsPassable:   c.IsPassable,
			HasNorthWall: c.Wall(grid.North),
			HasEastWall:  c.Wall(grid.East),
			HasSouthWall: c.Wall(grid.South),
			HasWestWall:  c.Wall(grid.West),
			HasNorthDoor: c.Door(grid.North),
			HasEastDoor:  c.Door(grid.East),
			HasSouthDoor: c.Door(grid.South),
			HasWestDoor:  c.Door(grid.West),
			CellType:     c.CellType,
			Properties:   c.Properties,
		}
	}
	return Map{
		Width:      g.Width,
		Height:     g.Height,
		MapName:    g.Name,
		FloorLevel: g.FloorLevel,
		Metadata:   g.Metadata,
		Cells:      cells,
	}
}

// ToGrid rebuilds a grid.Grid from its wire representation.
func (m Map) ToGrid() *grid.Grid {
	g := &grid.Grid{
		Width:      m.Width,
		Height:     m.Height,
		Name:       m.MapName,
		FloorLevel: m.FloorLevel,
		Metadata:   m.Metadata,
		Cells:      make([]grid.Cell, len(m.Cells)),
	}
	for i, cd := range m.Cells {
		c := &g.Cells[i]
		c.SetEmpty(cd.IsEmpty)
		c.SetPassable(cd.IsPassable)
		c.SetWall(grid.North, cd.HasNorthWall)
		c.SetWall(grid.East, cd.HasEastWall)
		c.SetWall(grid.South, cd.HasSouthWall)
		c.SetWall(grid.West, cd.HasWestWall)
		c.SetDoor(grid.North, cd.HasNorthDoor)
		c.SetDoor(grid.East, cd.HasEastDoor)
		c.SetDoor(grid.South, cd.HasSouthDoor)
		c.SetDoor(grid.West, cd.HasWestDoor)
		c.CellType = cd.CellType
		c.Properties = cd.Properties
	}
	return g
}

// Marshal encodes g as map JSON.
func Marshal(g *grid.Grid) ([]byte, error) {
	return json.Marshal(FromGrid(g))
}

// Unmarshal decodes map JSON back into a grid.Grid.
func Unmarshal(data []byte) (*grid.Grid, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	g := m.ToGrid()
	return g, nil
}
