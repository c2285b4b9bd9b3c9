// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ProvenanceTriple is one (source, relationship, target) fact cited as
// evidence for a chat answer.
//
// # Description
//
// Triples come back from the chat-with-sources endpoint as free-form,
// human-readable labels. They are NOT guaranteed to resolve to graph node
// identifiers, so the presenter never tries to cross-reference them against
// a graph snapshot.
//
// # Fields
//
//   - Source: Label of the originating entity (e.g. "INV-V2-M02-828264").
//   - Relationship: Edge label (e.g. "issued_by").
//   - Target: Label of the related entity (e.g. "Vendor 2").
type ProvenanceTriple struct {
	Source       string `json:"source"`
	Relationship string `json:"relationship"`
	Target       string `json:"target"`
}

// placeholderGlyph replaces a blank source or target label so a row never
// renders with a dangling arrow.
const placeholderGlyph = "∅"

// DefaultSourcePreview is the number of triples shown before expansion in
// the interactive chat loop.
const DefaultSourcePreview = 3

// SourcesPresenter renders provenance triples with progressive disclosure.
//
// # Description
//
// A bounded preview of triples is shown by default; the full list is shown
// when expanded. An optional graph-view reference adds a hint for opening
// the full-screen graph overlay. The presenter only ever reads the triples
// it is handed; it holds no session state.
//
// # Fields
//
//   - writer: Output destination (stdout in production, buffer in tests).
//   - personality: Output styling level.
//   - previewSize: Rows shown when collapsed. Values < 1 fall back to
//     DefaultSourcePreview.
type SourcesPresenter struct {
	writer      io.Writer
	personality PersonalityLevel
	previewSize int
}

// NewSourcesPresenter creates a presenter writing to stdout.
func NewSourcesPresenter(previewSize int) *SourcesPresenter {
	return NewSourcesPresenterWithWriter(os.Stdout, GetPersonality().Level, previewSize)
}

// NewSourcesPresenterWithWriter creates a presenter with a custom writer (for testing).
func NewSourcesPresenterWithWriter(w io.Writer, personality PersonalityLevel, previewSize int) *SourcesPresenter {
	if previewSize < 1 {
		previewSize = DefaultSourcePreview
	}
	return &SourcesPresenter{
		writer:      w,
		personality: personality,
		previewSize: previewSize,
	}
}

// VisibleCount returns how many triples will be rendered for the given
// list length and disclosure state.
func (p *SourcesPresenter) VisibleCount(total int, expanded bool) int {
	if total <= 0 {
		return 0
	}
	if expanded || total <= p.previewSize {
		return total
	}
	return p.previewSize
}

// Render writes the provenance block for one assistant answer.
//
// # Description
//
// Renders nothing at all for an empty triple list. Otherwise renders the
// visible triples as `source — relationship → target` rows, a "more" hint
// when collapsed rows remain, and a graph-view hint when graphRef is
// non-empty. Blank source/target labels render as the placeholder glyph.
//
// # Inputs
//
//   - triples: Provenance triples for the answer. May be nil or empty.
//   - graphRef: Opaque graph-view reference, empty when none was returned.
//   - expanded: Whether the full list is disclosed.
//
// # Outputs
//
// None. Writes directly to the configured writer.
func (p *SourcesPresenter) Render(triples []ProvenanceTriple, graphRef string, expanded bool) {
	if len(triples) == 0 {
		return
	}

	visible := p.VisibleCount(len(triples), expanded)
	hidden := len(triples) - visible

	if p.personality == PersonalityMachine {
		for _, t := range triples[:visible] {
			fmt.Fprintf(p.writer, "SOURCE: %s|%s|%s\n", orGlyph(t.Source), t.Relationship, orGlyph(t.Target))
		}
		if hidden > 0 {
			fmt.Fprintf(p.writer, "SOURCES_HIDDEN: %d\n", hidden)
		}
		if graphRef != "" {
			fmt.Fprintf(p.writer, "GRAPH_VIEW: %s\n", graphRef)
		}
		return
	}

	var content strings.Builder
	for i, t := range triples[:visible] {
		content.WriteString(formatTriple(t))
		if i < visible-1 {
			content.WriteString("\n")
		}
	}
	if hidden > 0 {
		content.WriteString("\n")
		content.WriteString(Styles.Muted.Render(fmt.Sprintf("… %d more (/sources to expand)", hidden)))
	}
	if graphRef != "" {
		content.WriteString("\n")
		content.WriteString(Styles.Muted.Render("/graph to open the graph view"))
	}

	if p.personality == PersonalityMinimal {
		fmt.Fprintln(p.writer, "Sources:")
		fmt.Fprintln(p.writer, content.String())
		return
	}

	boxStyle := Styles.InfoBox.Width(60)
	titleLine := Styles.Subtitle.Render("Sources")
	fmt.Fprintln(p.writer, boxStyle.Render(titleLine+"\n"+content.String()))
}

// formatTriple renders one triple row as `source — relationship → target`.
func formatTriple(t ProvenanceTriple) string {
	return fmt.Sprintf("%s %s %s %s %s",
		Styles.Bold.Render(orGlyph(t.Source)),
		Styles.Muted.Render("—"),
		t.Relationship,
		Styles.Muted.Render("→"),
		Styles.Bold.Render(orGlyph(t.Target)),
	)
}

// orGlyph substitutes the placeholder glyph for blank labels.
func orGlyph(label string) string {
	if strings.TrimSpace(label) == "" {
		return placeholderGlyph
	}
	return label
}
