// Package render draws a dungeon grid to text, reusing tcell's color model
// for the ANSI escapes without ever opening a live screen, since the
// output here is meant for a line-oriented console rather than a
// full-screen client.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"dungeonforge/internal/grid"
)

// ErrInvalidMap is returned when the input grid violates the renderer's
// preconditions.
var ErrInvalidMap = errors.New("render: invalid map")

// Palette colors: dark-grey walls, brown doors, white floors.
var (
	wallColor  = tcell.ColorDimGray
	doorColor  = tcell.ColorSaddleBrown
	floorColor = tcell.ColorWhite
)

// Options controls ASCII rendering.
type Options struct {
	// Colorized wraps wall, door, and floor glyphs in ANSI truecolor escapes.
	Colorized bool
}

// glyphCell is one character position in the rendered matrix.
type glyphCell struct {
	ch    rune
	color tcell.Color
	paint bool
}

// Render draws g as a 3-column-by-2-row-per-cell character block, printed
// from the highest row (north) to the lowest (south) so the output reads
// top-down like a map.
func Render(g *grid.Grid, opts Options) (string, error) {
	if g.Width <= 0 || g.Height <= 0 {
		return "", ErrInvalidMap
	}
	if len(g.Cells) != g.Width*g.Height {
		return "", ErrInvalidMap
	}

	rows := g.Height*2 + 1
	cols := g.Width * 3
	matrix := make([][]glyphCell, rows)
	for i := range matrix {
		matrix[i] = make([]glyphCell, cols)
		for j := range matrix[i] {
			matrix[i][j] = glyphCell{ch: ' '}
		}
	}

	for y := 0; y < g.Height; y++ {
		matrixRow := (g.Height - 1 - y) * 2
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			col := x * 3
			paintCellBlock(matrix, matrixRow, col, c)
		}
	}

	southRow := rows - 1
	for x := 0; x < g.Width; x++ {
		c := g.At(x, 0)
		col := x * 3
		left, mid, right := edgeTriplet(c.Wall(grid.South), c.Door(grid.South), '└', '┘')
		matrix[southRow][col] = left
		matrix[southRow][col+1] = mid
		matrix[southRow][col+2] = right
	}

	var b strings.Builder
	for _, row := range matrix {
		for _, gc := range row {
			writeGlyph(&b, gc, opts.Colorized)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// paintCellBlock fills the two matrix rows belonging to one grid cell: a top
// row (north edge, with corners toward any adjoining west/east wall) and a
// bottom row (west edge, floor glyph, east edge).
func paintCellBlock(matrix [][]glyphCell, row, col int, c *grid.Cell) {
	topLeft, top, topRight := edgeTriplet(c.Wall(grid.North), c.Door(grid.North), '┌', '┐')
	if !(c.Wall(grid.North) && c.Wall(grid.West)) {
		topLeft = top
	}
	if !(c.Wall(grid.North) && c.Wall(grid.East)) {
		topRight = top
	}
	matrix[row][col] = topLeft
	matrix[row][col+1] = top
	matrix[row][col+2] = topRight

	left := edgeGlyph(c.Wall(grid.West), c.Door(grid.West), '│', '║')
	right := edgeGlyph(c.Wall(grid.East), c.Door(grid.East), '│', '║')
	matrix[row+1][col] = left
	matrix[row+1][col+1] = floorGlyph(c)
	matrix[row+1][col+2] = right
}

// edgeGlyph picks the wall/door/blank glyph for one edge.
func edgeGlyph(wall, door bool, wallCh, doorCh rune) glyphCell {
	switch {
	case door:
		return glyphCell{ch: doorCh, color: doorColor, paint: true}
	case wall:
		return glyphCell{ch: wallCh, color: wallColor, paint: true}
	default:
		return glyphCell{ch: ' '}
	}
}

// edgeTriplet returns the glyphs for one horizontal edge: the edge glyph in
// the middle and, when the edge is painted, the given corner runes on either
// side (all three share the edge's door/wall state and colour). A caller that
// needs a plain edge where no west/east wall meets it replaces the corner
// with the middle glyph.
func edgeTriplet(wall, door bool, leftCorner, rightCorner rune) (left, mid, right glyphCell) {
	mid = edgeGlyph(wall, door, '─', '═')
	left, right = mid, mid
	if mid.paint {
		left.ch, right.ch = leftCorner, rightCorner
	}
	return
}

func floorGlyph(c *grid.Cell) glyphCell {
	if c.IsEmpty {
		return glyphCell{ch: ' '}
	}
	if c.IsPassable {
		return glyphCell{ch: '·', color: floorColor, paint: true}
	}
	return glyphCell{ch: '█', color: wallColor, paint: true}
}

func writeGlyph(b *strings.Builder, gc glyphCell, colorized bool) {
	if !colorized || !gc.paint {
		b.WriteRune(gc.ch)
		return
	}
	r, g, bl := gc.color.RGB()
	fmt.Fprintf(b, "\x1b[38;2;%d;%d;%dm%c\x1b[0m", r, g, bl, gc.ch)
}
