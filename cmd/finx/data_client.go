// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package main contains the FinanceX data/KPI/health HTTP client.
//
// The data endpoints serve raw CSV rows as JSON records without a fixed
// schema, so invoice and transaction listings are decoded as generic
// records and rendered column-by-column.
package main

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

const (
	invoicesPath     = "/data/invoices"
	transactionsPath = "/data/transactions"
	kpisPath         = "/kpi/kpis"
	healthPath       = "/health"
)

// DataRecord is one schemaless row from the CSV-backed data API.
type DataRecord map[string]any

// KPISummary is the reconciliation metrics payload from GET /kpi/kpis.
type KPISummary struct {
	TotalInvoices     int `json:"total_invoices"`
	TotalTransactions int `json:"total_transactions"`
	Anomalies         int `json:"anomalies"`
	TotalVendors      int `json:"total_vendors"`
}

// HealthStatus is the payload from GET /health.
type HealthStatus struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Healthy reports whether the backend declared itself healthy.
func (h *HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

// DataClient fetches records, KPIs, and health from the backend.
type DataClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDataClient creates a data client with a bounded request timeout.
func NewDataClient(baseURL string, timeout time.Duration) *DataClient {
	return &DataClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewDataClientWithHTTPClient creates a data client with an injected HTTP
// client (for testing).
func NewDataClientWithHTTPClient(baseURL string, httpClient *http.Client) *DataClient {
	return &DataClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListInvoices returns all invoice records.
func (c *DataClient) ListInvoices(ctx context.Context) ([]DataRecord, error) {
	var records []DataRecord
	if err := c.getJSON(ctx, invoicesPath, &records); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return records, nil
}

// ListTransactions returns all transaction records.
func (c *DataClient) ListTransactions(ctx context.Context) ([]DataRecord, error) {
	var records []DataRecord
	if err := c.getJSON(ctx, transactionsPath, &records); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return records, nil
}

// FetchKPIs returns the reconciliation KPI summary.
func (c *DataClient) FetchKPIs(ctx context.Context) (*KPISummary, error) {
	var summary KPISummary
	if err := c.getJSON(ctx, kpisPath, &summary); err != nil {
		return nil, fmt.Errorf("fetch kpis: %w", err)
	}
	return &summary, nil
}

// Health probes the backend health endpoint.
func (c *DataClient) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.getJSON(ctx, healthPath, &status); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return &status, nil
}

// getJSON performs one GET and decodes the JSON response into out.
func (c *DataClient) getJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	slog.Debug("fetching", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
