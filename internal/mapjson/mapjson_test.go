package mapjson

import (
	"strings"
	"testing"

	"dungeonforge/internal/grid"
)

// TestRoundTrip checks that a generated map, serialised and parsed, is
// structurally equal to the original.
func TestRoundTrip(t *testing.T) {
	g := grid.New(6, 5)
	g.Name = "test-map"
	g.FloorLevel = 3
	g.Metadata["seed"] = "42"

	c := g.At(2, 2)
	c.SetPassable(true)
	c.CellType = "Room"
	c.SetWall(grid.North, true)
	c.SetDoor(grid.East, true)
	c.Properties = map[string]string{"lit": "true"}

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Width != g.Width || got.Height != g.Height || got.Name != g.Name || got.FloorLevel != g.FloorLevel {
		t.Fatalf("header mismatch: %+v vs %+v", got, g)
	}
	if got.Metadata["seed"] != "42" {
		t.Fatalf("metadata dropped: %+v", got.Metadata)
	}
	for i := range g.Cells {
		a, b := &g.Cells[i], &got.Cells[i]
		if a.IsEmpty != b.IsEmpty || a.IsPassable != b.IsPassable || a.CellType != b.CellType {
			t.Fatalf("cell %d mismatch: %+v vs %+v", i, a, b)
		}
		for _, d := range grid.Directions {
			if a.Wall(d) != b.Wall(d) || a.Door(d) != b.Door(d) {
				t.Fatalf("cell %d edge %v mismatch", i, d)
			}
		}
	}
}

func TestFieldNamesAreWireExact(t *testing.T) {
	g := grid.New(10, 10)
	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"Width"`, `"Height"`, `"MapName"`, `"FloorLevel"`, `"Metadata"`, `"Cells"`} {
		if !strings.Contains(string(data), field) {
			t.Fatalf("missing wire field %s in %s", field, data)
		}
	}
}
