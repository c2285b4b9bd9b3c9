// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graphview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultSnapshotPath is the backend's graph visualization endpoint.
const DefaultSnapshotPath = "/graph/graph"

// SnapshotFetcher abstracts snapshot retrieval for testability.
type SnapshotFetcher interface {
	// FetchSnapshot retrieves the graph snapshot at the given path.
	// An empty path means DefaultSnapshotPath.
	FetchSnapshot(ctx context.Context, path string) (*GraphSnapshot, error)
}

// Client fetches graph snapshots from the FinanceX backend.
//
// Paths are treated as opaque: a graph-view reference returned by the
// chat endpoint is concatenated onto the base URL without interpretation.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a snapshot client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTPClient creates a snapshot client with an injected HTTP
// client (for testing against httptest servers or mock transports).
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchSnapshot retrieves and decodes one graph snapshot.
//
// # Description
//
// Issues a single GET. A non-2xx status or a body that fails to parse as
// JSON is returned as an error for the container to surface as an inline
// error state; it is never a fault.
//
// # Inputs
//
//   - ctx: Context for cancellation.
//   - path: Endpoint path, or "" for DefaultSnapshotPath.
//
// # Outputs
//
//   - *GraphSnapshot: Decoded snapshot on success.
//   - error: Transport, protocol, or decode failure.
func (c *Client) FetchSnapshot(ctx context.Context, path string) (*GraphSnapshot, error) {
	if path == "" {
		path = DefaultSnapshotPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := c.baseURL + path

	slog.Debug("fetching graph snapshot", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("graph endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var snap GraphSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	slog.Debug("graph snapshot loaded",
		"nodes", len(snap.Nodes),
		"edges", len(snap.Edges),
	)

	return &snap, nil
}
