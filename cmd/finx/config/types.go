// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import "time"

// FinxConfig is the root configuration loaded from ~/.finx/finx.yaml.
type FinxConfig struct {
	// Server: where the FinanceX backend lives
	Server ServerConfig `yaml:"server"`

	// Chat: conversational interface tuning
	Chat ChatConfig `yaml:"chat"`

	// Logging: structured log output
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig locates the FinanceX backend services.
//
// All endpoints are mounted under one base URL, matching the backend's
// unified application: /api/v1/chat, /graph/graph, /data/*, /kpi/kpis.
type ServerConfig struct {
	BaseURL string `yaml:"base_url"` // e.g. http://localhost:8000

	// RequestTimeout bounds every HTTP request (chat and fetches).
	// The backend gives no latency guarantees, so a hung request would
	// otherwise pin the UI in its thinking state forever.
	RequestTimeout string `yaml:"request_timeout"` // e.g. "60s"
}

// ChatConfig tunes the conversational interface.
type ChatConfig struct {
	// SourcePreview is the number of provenance rows shown before the
	// user expands the citation list.
	SourcePreview int `yaml:"source_preview"`

	// HistorySize is the number of prompts kept for up-arrow recall.
	HistorySize int `yaml:"history_size"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // empty disables file logging
}

// Timeout parses the configured request timeout, falling back to the
// default when unset or malformed.
func (s ServerConfig) Timeout() time.Duration {
	const fallback = 60 * time.Second
	if s.RequestTimeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() FinxConfig {
	return FinxConfig{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			RequestTimeout: "60s",
		},
		Chat: ChatConfig{
			SourcePreview: 3,
			HistorySize:   50,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
