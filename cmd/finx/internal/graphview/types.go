// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graphview

// GraphNode is one entity in a snapshot. Immutable for the snapshot's lifetime.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"` // vendor, invoice, transaction, product, ...
}

// GraphEdge is a directed relationship between two node ids.
//
// Edges reference nodes by identifier only. The backend may return edges
// slightly out of sync with its node list, so an edge whose endpoint is
// missing from the node set is skipped during rendering, never treated as
// fatal.
type GraphEdge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
}

// GraphStats carries aggregate counts for legend display.
//
// These are display hints from the backend. The renderer never derives
// correctness from them; the node and edge lists are authoritative.
type GraphStats struct {
	TotalNodes   int `json:"total_nodes"`
	TotalEdges   int `json:"total_edges"`
	Vendors      int `json:"vendors"`
	Invoices     int `json:"invoices"`
	Transactions int `json:"transactions"`
	Products     int `json:"products"`
}

// GraphSnapshot is a point-in-time view of the knowledge graph returned by
// the backend for visualization.
type GraphSnapshot struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Stats GraphStats  `json:"stats"`
}
