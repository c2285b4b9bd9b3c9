// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graphview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// markerRune is the filled circular node marker.
const markerRune = '●'

// edgeRune is the rune used for edge lines. A uniform dot reads better
// than slope-dependent glyphs at terminal cell resolution.
const edgeRune = '·'

// edgeColor keeps edges visually behind the colored markers.
var edgeColor = lipgloss.Color("240")

// cell is one character position on the canvas.
type cell struct {
	r     rune
	color lipgloss.Color
}

// CellCanvas is the production Surface: a rune grid rendered with
// per-cell lipgloss colors.
//
// The canvas is exclusively owned by its Renderer for the duration of a
// frame; nothing else writes to it. All draw operations clip silently at
// the borders.
type CellCanvas struct {
	width  int
	height int
	cells  [][]cell
}

// NewCellCanvas creates a canvas of the given dimensions. Non-positive
// dimensions yield a zero-sized canvas that absorbs all draw calls.
func NewCellCanvas(width, height int) *CellCanvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &CellCanvas{width: width, height: height}
	c.Clear()
	return c
}

// Size reports the drawable area in cells.
func (c *CellCanvas) Size() (int, int) {
	return c.width, c.height
}

// Clear resets every cell to blank.
func (c *CellCanvas) Clear() {
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		row := make([]cell, c.width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
}

// set writes one cell, clipping out-of-range coordinates.
func (c *CellCanvas) set(x, y int, r rune, color lipgloss.Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = cell{r: r, color: color}
}

// DrawLine paints a Bresenham line of edge dots between two points.
func (c *CellCanvas) DrawLine(x1, y1, x2, y2 float64) {
	x := int(math.Round(x1))
	y := int(math.Round(y1))
	xEnd := int(math.Round(x2))
	yEnd := int(math.Round(y2))

	dx := abs(xEnd - x)
	dy := -abs(yEnd - y)
	sx := sign(xEnd - x)
	sy := sign(yEnd - y)
	errAcc := dx + dy

	for {
		// Never overwrite markers or labels already painted.
		if c.at(x, y) == ' ' {
			c.set(x, y, edgeRune, edgeColor)
		}
		if x == xEnd && y == yEnd {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x += sx
		}
		if e2 <= dx {
			errAcc += dx
			y += sy
		}
	}
}

// DrawMarker paints the node marker at the rounded position.
func (c *CellCanvas) DrawMarker(x, y float64, color lipgloss.Color) {
	c.set(int(math.Round(x)), int(math.Round(y)), markerRune, color)
}

// DrawText paints a label centered horizontally on x.
func (c *CellCanvas) DrawText(x, y float64, text string, color lipgloss.Color) {
	runes := []rune(text)
	startX := int(math.Round(x)) - len(runes)/2
	row := int(math.Round(y))
	for i, r := range runes {
		c.set(startX+i, row, r, color)
	}
}

// at returns the rune currently at a position, or ' ' when out of range.
func (c *CellCanvas) at(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.cells[y][x].r
}

// String renders the canvas as styled terminal output.
func (c *CellCanvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		x := 0
		for x < c.width {
			// Batch runs of same-colored cells into one style call.
			color := row[x].color
			var run strings.Builder
			for x < c.width && row[x].color == color {
				run.WriteRune(row[x].r)
				x++
			}
			if color == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(color).Render(run.String()))
			}
		}
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
