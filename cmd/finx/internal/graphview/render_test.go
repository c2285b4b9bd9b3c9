// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graphview

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSurface captures draw calls so renderer behavior can be
// asserted without a real terminal.
type recordingSurface struct {
	width   int
	height  int
	cleared int
	lines   [][4]float64
	markers []lipgloss.Color
	texts   []string
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }
func (s *recordingSurface) Clear()           { s.cleared++ }
func (s *recordingSurface) DrawLine(x1, y1, x2, y2 float64) {
	s.lines = append(s.lines, [4]float64{x1, y1, x2, y2})
}
func (s *recordingSurface) DrawMarker(x, y float64, color lipgloss.Color) {
	s.markers = append(s.markers, color)
}
func (s *recordingSurface) DrawText(x, y float64, text string, color lipgloss.Color) {
	s.texts = append(s.texts, text)
}

func TestRenderer_DrawsOneLinePerResolvableEdge(t *testing.T) {
	snap := sampleSnapshot()
	positions := Layout(snap, 80, 40)
	surface := &recordingSurface{width: 80, height: 40}

	NewRenderer(surface).Render(snap, positions)

	assert.Equal(t, 1, surface.cleared)
	assert.Len(t, surface.lines, len(snap.Edges))
	assert.Len(t, surface.markers, len(snap.Nodes))
	assert.Len(t, surface.texts, len(snap.Nodes))
}

func TestRenderer_SkipsDanglingEdgesSilently(t *testing.T) {
	snap := sampleSnapshot()
	snap.Edges = append(snap.Edges,
		GraphEdge{Source: "inv_1", Target: "ghost", Relationship: "matches"},
		GraphEdge{Source: "ghost", Target: "vendor_2", Relationship: "issued_by"},
	)
	positions := Layout(snap, 80, 40)
	surface := &recordingSurface{width: 80, height: 40}

	NewRenderer(surface).Render(snap, positions)

	// Only the two fully resolvable edges draw.
	assert.Len(t, surface.lines, 2)
}

func TestRenderer_NoOpsOnUnavailableSurface(t *testing.T) {
	snap := sampleSnapshot()
	positions := Layout(snap, 80, 40)

	zero := &recordingSurface{width: 0, height: 0}
	NewRenderer(zero).Render(snap, positions)
	assert.Zero(t, zero.cleared)
	assert.Empty(t, zero.markers)

	// Nil surface must not panic either.
	NewRenderer(nil).Render(snap, positions)
}

func TestRenderer_EmptySnapshotClearsWithoutMarkers(t *testing.T) {
	surface := &recordingSurface{width: 40, height: 20}
	snap := &GraphSnapshot{}

	NewRenderer(surface).Render(snap, Layout(snap, 40, 20))

	assert.Equal(t, 1, surface.cleared)
	assert.Empty(t, surface.lines)
	assert.Empty(t, surface.markers)
	assert.Empty(t, surface.texts)
}

func TestRenderer_TruncatesLongLabels(t *testing.T) {
	snap := &GraphSnapshot{
		Nodes: []GraphNode{
			{ID: "a", Label: "Lenovo ThinkPad X1 Carbon Gen 11", Type: "product"},
			{ID: "b", Label: "short", Type: "product"},
		},
	}
	surface := &recordingSurface{width: 80, height: 40}

	NewRenderer(surface).Render(snap, Layout(snap, 80, 40))

	require.Len(t, surface.texts, 2)
	for _, text := range surface.texts {
		assert.LessOrEqual(t, len([]rune(text)), maxLabelLen)
	}
	assert.Contains(t, surface.texts, "short")
	assert.Contains(t, surface.texts, "Lenovo ThinkPa…")
}

func TestNodeColor_PaletteAndFallback(t *testing.T) {
	assert.NotEqual(t, colorNeutral, NodeColor("vendor"))
	assert.NotEqual(t, colorNeutral, NodeColor("invoice"))
	assert.NotEqual(t, colorNeutral, NodeColor("transaction"))
	assert.NotEqual(t, colorNeutral, NodeColor("product"))
	assert.Equal(t, colorNeutral, NodeColor("warehouse"))
	assert.Equal(t, colorNeutral, NodeColor(""))
}
