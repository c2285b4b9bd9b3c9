// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graphview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/financex/finx/pkg/ux"
)

// snapshotLoadedMsg carries a successfully fetched snapshot.
type snapshotLoadedMsg struct {
	snap *GraphSnapshot
}

// snapshotErrMsg carries a fetch failure for the inline error state.
type snapshotErrMsg struct {
	err error
}

// Model is the full-screen graph view container.
//
// # Description
//
// Model fetches a graph snapshot exactly once, drives Layout and the
// Renderer, and exposes loading/error states. States:
//
//	loading -> loaded (canvas + legend) | failed (inline error)
//
// A window resize triggers relayout and a full repaint; `q`, `esc`, and
// ctrl+c dismiss the view. Fetch failures stay inside this view - they
// are never surfaced as chat transcript messages.
type Model struct {
	fetcher SnapshotFetcher
	path    string

	spin    spinner.Model
	width   int
	height  int
	loading bool
	err     error

	snap   *GraphSnapshot
	canvas string
}

// NewModel creates a graph view for the given snapshot path ("" for the
// default graph endpoint).
func NewModel(fetcher SnapshotFetcher, path string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ux.Styles.Subtitle
	return Model{
		fetcher: fetcher,
		path:    path,
		spin:    s,
		loading: true,
	}
}

// Init starts the spinner and the one-shot snapshot fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

// fetchCmd performs the snapshot fetch as a bubbletea command.
func (m Model) fetchCmd() tea.Cmd {
	fetcher := m.fetcher
	path := m.path
	return func() tea.Msg {
		snap, err := fetcher.FetchSnapshot(context.Background(), path)
		if err != nil {
			return snapshotErrMsg{err: err}
		}
		return snapshotLoadedMsg{snap: snap}
	}
}

// Update handles resize, fetch completion, and dismissal keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.repaint()
		return m, nil

	case snapshotLoadedMsg:
		m.loading = false
		m.snap = msg.snap
		m.repaint()
		return m, nil

	case snapshotErrMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}

	if m.loading {
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// repaint lays the snapshot out for the current window and redraws the
// canvas. Full clear-then-draw every time; no incremental diffing.
func (m *Model) repaint() {
	if m.snap == nil || m.width <= 0 || m.height <= 0 {
		return
	}

	// Reserve rows for the title, legend, and footer around the canvas.
	canvasHeight := m.height - 4
	if canvasHeight < 1 {
		m.canvas = ""
		return
	}

	positions := Layout(m.snap, float64(m.width), float64(canvasHeight))
	surface := NewCellCanvas(m.width, canvasHeight)
	NewRenderer(surface).Render(m.snap, positions)
	m.canvas = surface.String()
}

// View renders the current container state.
func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n %s %s\n", m.spin.View(), ux.Styles.Muted.Render("Loading knowledge graph..."))
	}

	if m.err != nil {
		content := ux.Styles.Error.Render("Could not load the graph view") +
			"\n" + ux.Styles.Muted.Render(m.err.Error()) +
			"\n\n" + ux.Styles.Muted.Render("Press q to close.")
		return "\n" + ux.Styles.ErrorBox.Render(content) + "\n"
	}

	var b strings.Builder
	b.WriteString(ux.Styles.Title.Render(" FinanceX Knowledge Graph"))
	b.WriteString("\n")
	b.WriteString(m.canvas)
	b.WriteString("\n")
	b.WriteString(m.legend())
	b.WriteString("\n")
	b.WriteString(ux.Styles.Muted.Render(" q to close"))
	return b.String()
}

// legend renders the per-type counts from the snapshot stats. The stats
// are display hints from the backend, not re-derived from the node list.
func (m Model) legend() string {
	if m.snap == nil {
		return ""
	}
	stats := m.snap.Stats
	entries := []struct {
		label string
		count int
		color lipgloss.Color
	}{
		{"vendors", stats.Vendors, ux.ColorVendor},
		{"invoices", stats.Invoices, ux.ColorInvoice},
		{"transactions", stats.Transactions, ux.ColorTransaction},
		{"products", stats.Products, ux.ColorProduct},
	}

	var parts []string
	for _, e := range entries {
		dot := lipgloss.NewStyle().Foreground(e.color).Render(string(markerRune))
		parts = append(parts, fmt.Sprintf("%s %s %d", dot, e.label, e.count))
	}
	summary := ux.Styles.Muted.Render(fmt.Sprintf("   %d nodes · %d edges", stats.TotalNodes, stats.TotalEdges))
	return " " + strings.Join(parts, "  ") + summary
}

// Run opens the graph view full-screen (alt screen) and blocks until the
// user dismisses it. The caller's terminal contents are restored on exit.
func Run(fetcher SnapshotFetcher, path string) error {
	p := tea.NewProgram(NewModel(fetcher, path), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("graph view: %w", err)
	}
	return nil
}
