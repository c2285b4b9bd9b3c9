// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graphview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/financex/finx/pkg/ux"
)

// Surface is the drawing capability injected into the Renderer.
//
// # Description
//
// Treating the drawing target as an injected handle lets tests substitute
// a recording double and assert on draw calls without a real terminal.
// The production implementation is CellCanvas.
//
// Coordinates are in surface units (terminal cells for CellCanvas).
// Implementations must tolerate out-of-range coordinates by clipping.
type Surface interface {
	// Size reports the drawable area. Either dimension may be zero.
	Size() (width, height int)

	// Clear resets the surface to its background.
	Clear()

	// DrawLine paints a straight line between two points.
	DrawLine(x1, y1, x2, y2 float64)

	// DrawMarker paints a filled circular node marker.
	DrawMarker(x, y float64, color lipgloss.Color)

	// DrawText paints a text label anchored at the given position.
	DrawText(x, y float64, text string, color lipgloss.Color)
}

// maxLabelLen caps node labels so dense rings stay readable.
const maxLabelLen = 15

// nodePalette maps known node types to brand colors. Unrecognized types
// fall back to neutral gray.
var nodePalette = map[string]lipgloss.Color{
	"vendor":      ux.ColorVendor,
	"invoice":     ux.ColorInvoice,
	"transaction": ux.ColorTransaction,
	"product":     ux.ColorProduct,
}

// colorNeutral is the fallback for node types outside the palette.
var colorNeutral = lipgloss.Color("245")

// NodeColor returns the marker color for a node type.
func NodeColor(nodeType string) lipgloss.Color {
	if c, ok := nodePalette[nodeType]; ok {
		return c
	}
	return colorNeutral
}

// Renderer paints a laid-out snapshot onto a Surface.
//
// The renderer owns no state beyond the surface handle; every Render call
// is a full clear-then-draw of the current frame. Redraws only happen on
// data load or resize, so repaint cost is irrelevant at snapshot scale.
type Renderer struct {
	surface Surface
}

// NewRenderer creates a Renderer drawing onto the given surface.
func NewRenderer(surface Surface) *Renderer {
	return &Renderer{surface: surface}
}

// Render paints the snapshot using the given node positions.
//
// # Description
//
// Paints, in order: every resolvable edge as a line between its
// endpoints, every positioned node as a colored marker, and a truncated
// label beneath each marker. An edge naming a node id absent from the
// position map is dropped silently; the backend may return edges slightly
// out of sync with its node list.
//
// # Inputs
//
//   - snap: The snapshot to paint. May be nil or empty.
//   - positions: node id -> position, normally from Layout.
//
// # Outputs
//
// None. No-ops entirely when the surface is unavailable (nil or
// zero-sized); an unusable drawing target is a defensive guard, not a
// user-facing error.
func (r *Renderer) Render(snap *GraphSnapshot, positions map[string]Point) {
	if r.surface == nil {
		return
	}
	w, h := r.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.surface.Clear()
	if snap == nil {
		return
	}

	// Edges first so markers and labels paint over them.
	for _, edge := range snap.Edges {
		from, okFrom := positions[edge.Source]
		to, okTo := positions[edge.Target]
		if !okFrom || !okTo {
			continue // dangling reference
		}
		r.surface.DrawLine(from.X, from.Y, to.X, to.Y)
	}

	for _, node := range snap.Nodes {
		pos, ok := positions[node.ID]
		if !ok {
			continue
		}
		color := NodeColor(node.Type)
		r.surface.DrawMarker(pos.X, pos.Y, color)
		r.surface.DrawText(pos.X, pos.Y+1, truncateLabel(node.Label), color)
	}
}

// truncateLabel caps a label at maxLabelLen runes, marking the cut with
// an ellipsis.
func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= maxLabelLen {
		return label
	}
	return string(runes[:maxLabelLen-1]) + "…"
}
