// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "finx.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom_ParsesAllSections(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: http://graph.internal:9000
  request_timeout: 30s
chat:
  source_preview: 5
  history_size: 100
logging:
  level: debug
  dir: ~/.finx/logs
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Server.BaseURL != "http://graph.internal:9000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if got := cfg.Server.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", got)
	}
	if cfg.Chat.SourcePreview != 5 {
		t.Errorf("SourcePreview = %d, want 5", cfg.Chat.SourcePreview)
	}
	if cfg.Chat.HistorySize != 100 {
		t.Errorf("HistorySize = %d, want 100", cfg.Chat.HistorySize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: http://10.0.0.5:8000
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Server.BaseURL != "http://10.0.0.5:8000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	// Unset sections fall back to defaults.
	defaults := DefaultConfig()
	if cfg.Chat.SourcePreview != defaults.Chat.SourcePreview {
		t.Errorf("SourcePreview = %d, want default %d", cfg.Chat.SourcePreview, defaults.Chat.SourcePreview)
	}
	if cfg.Server.Timeout() != defaults.Server.Timeout() {
		t.Errorf("Timeout() = %v, want default %v", cfg.Server.Timeout(), defaults.Server.Timeout())
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadFrom() on missing file succeeded, want error")
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not: a: map")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() on malformed yaml succeeded, want error")
	}
}

func TestServerConfig_TimeoutFallbacks(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 60 * time.Second},
		{"bogus", 60 * time.Second},
		{"-5s", 60 * time.Second},
		{"0s", 60 * time.Second},
		{"2m", 2 * time.Minute},
		{"750ms", 750 * time.Millisecond},
	}
	for _, tt := range tests {
		s := ServerConfig{RequestTimeout: tt.raw}
		if got := s.Timeout(); got != tt.want {
			t.Errorf("Timeout(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDefaultConfig_IsComplete(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.BaseURL == "" {
		t.Error("default BaseURL is empty")
	}
	if cfg.Chat.SourcePreview < 1 {
		t.Errorf("default SourcePreview = %d, want >= 1", cfg.Chat.SourcePreview)
	}
	if cfg.Chat.HistorySize < 1 {
		t.Errorf("default HistorySize = %d, want >= 1", cfg.Chat.HistorySize)
	}
	if cfg.Server.Timeout() <= 0 {
		t.Error("default timeout is not positive")
	}
}
