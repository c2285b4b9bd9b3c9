// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package graphview renders knowledge-graph snapshots in the terminal.
//
// The package splits the work into three layers:
//
//	client.go    - fetches a GraphSnapshot from the backend (one GET)
//	layout.go    - pure, deterministic snapshot -> 2D positions
//	render.go    - paints positions onto an injected Surface
//	canvas.go    - the production Surface (rune grid with lipgloss colors)
//	container.go - bubbletea model tying fetch, layout, and render together
//
// Layout and rendering never perform I/O; the container owns the fetch and
// the loading/error states. Snapshots are small (tens of nodes), so every
// repaint is a full clear-then-draw rather than an incremental diff.
package graphview
