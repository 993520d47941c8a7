package render

import (
	"strings"
	"testing"

	"dungeonforge/internal/grid"
)

func TestRenderRejectsZeroDimensions(t *testing.T) {
	g := grid.New(0, 5)
	if _, err := Render(g, Options{}); err != ErrInvalidMap {
		t.Fatalf("want ErrInvalidMap, got %v", err)
	}
}

func TestRenderRejectsMissizedCells(t *testing.T) {
	g := grid.New(5, 5)
	g.Cells = g.Cells[:10]
	if _, err := Render(g, Options{}); err != ErrInvalidMap {
		t.Fatalf("want ErrInvalidMap, got %v", err)
	}
}

// TestRenderPassableGlyphCount is scenario S6: the rendered output contains
// exactly one '·' per passable cell and none for empty cells.
func TestRenderPassableGlyphCount(t *testing.T) {
	g := grid.New(12, 12)
	wantPassable := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if (x+y)%3 == 0 {
				c.SetPassable(true)
				c.CellType = "Room"
				wantPassable++
			}
		}
	}

	out, err := Render(g, Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := strings.Count(out, "·")
	if got != wantPassable {
		t.Fatalf("got %d floor glyphs, want %d", got, wantPassable)
	}
}

func TestRenderOutputDimensions(t *testing.T) {
	g := grid.New(10, 10)
	out, err := Render(g, Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != g.Height*2+1 {
		t.Fatalf("got %d lines, want %d", len(lines), g.Height*2+1)
	}
	for i, line := range lines {
		if got := len([]rune(line)); got != g.Width*3 {
			t.Fatalf("line %d: got %d runes, want %d", i, got, g.Width*3)
		}
	}
}
