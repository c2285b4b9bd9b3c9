// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graphview

import "math"

// Point is a 2D position in drawing-surface coordinates.
type Point struct {
	X float64
	Y float64
}

// Layout computes 2D positions for every node in a snapshot.
//
// # Description
//
// Nodes are grouped by type tag, preserving first-seen type ordering, and
// each group is placed on its own ring around the area's center. For the
// k-th type group (0-indexed) containing n nodes, node i sits at angle
// 2π·i/n on a circle of radius R·(0.5 + 0.3·k), where R = min(w, h)/3.
//
// Concentric per-type rings keep same-type nodes visually clustered
// without an iterative force simulation. Snapshots hold tens of nodes,
// not thousands, so the simpler geometry wins.
//
// # Inputs
//
//   - snap: The snapshot to lay out. May be nil or empty.
//   - width, height: Target drawing area dimensions.
//
// # Outputs
//
//   - map[string]Point: node id -> position. Empty (never nil) for a nil
//     or node-less snapshot, or a degenerate area.
//
// # Limitations
//
//   - Purely geometric: edge crossings are not minimized.
//
// # Assumptions
//
//   - Node ids are unique within the snapshot.
//
// Layout is deterministic: the same snapshot and area always reproduce
// identical positions. No randomness, no hidden state.
func Layout(snap *GraphSnapshot, width, height float64) map[string]Point {
	positions := make(map[string]Point)
	if snap == nil || len(snap.Nodes) == 0 || width <= 0 || height <= 0 {
		return positions
	}

	// Group nodes by type, first-seen order.
	var typeOrder []string
	groups := make(map[string][]GraphNode)
	for _, node := range snap.Nodes {
		if _, seen := groups[node.Type]; !seen {
			typeOrder = append(typeOrder, node.Type)
		}
		groups[node.Type] = append(groups[node.Type], node)
	}

	centerX := width / 2
	centerY := height / 2
	baseRadius := math.Min(width, height) / 3

	for k, typ := range typeOrder {
		group := groups[typ]
		n := len(group)
		if n == 0 {
			continue
		}
		radius := baseRadius * (0.5 + 0.3*float64(k))
		for i, node := range group {
			angle := 2 * math.Pi * float64(i) / float64(n)
			positions[node.ID] = Point{
				X: centerX + radius*math.Cos(angle),
				Y: centerY + radius*math.Sin(angle),
			}
		}
	}

	return positions
}
