// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package main contains the KGChatRunner implementation.
//
// This file implements the ChatRunner interface for knowledge-graph chat.
// It coordinates the SessionController, ChatService, ChatUI,
// SourcesPresenter, and InputReader, and opens the full-screen graph view
// on demand.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/financex/finx/cmd/finx/internal/graphview"
	"github.com/financex/finx/pkg/ux"
)

// Slash commands recognized by the interactive loop.
const (
	cmdExpandSources = "/sources"
	cmdOpenGraph     = "/graph"
)

// KGChatRunnerConfig holds configuration for creating a KGChatRunner.
//
// # Fields
//
//   - BaseURL: Required. FinanceX backend URL without trailing slash.
//   - SessionID: Optional. Resume an existing session id; empty starts new.
//   - SourcePreview: Optional. Provenance rows shown before expansion.
//     Values < 1 fall back to ux.DefaultSourcePreview.
//   - HistorySize: Optional. Input history entries kept; default 50.
type KGChatRunnerConfig struct {
	BaseURL       string
	SessionID     string
	SourcePreview int
	HistorySize   int
}

// KGChatRunner implements ChatRunner for the knowledge-graph chat loop.
//
// # Description
//
// KGChatRunner drives the interactive conversation: it reads lines,
// routes slash commands, sends everything else through the
// SessionController, and renders answers with their provenance. The
// transcript lives in the controller; the runner only renders the newest
// exchange, since earlier output already sits in the terminal scrollback.
//
// Slash commands:
//
//	/sources   re-render the last answer's provenance fully expanded
//	/graph     open the full-screen graph view (last answer's reference,
//	           or the whole graph when none was returned)
//
// # Thread Safety
//
// Run is single-goroutine. Close is safe from any goroutine.
type KGChatRunner struct {
	controller *SessionController
	service    ChatService
	ui         ux.ChatUI
	sources    *ux.SourcesPresenter
	input      InputReader
	fetcher    graphview.SnapshotFetcher
	openGraph  func(fetcher graphview.SnapshotFetcher, path string) error
	baseURL    string
	closed     bool
	mu         sync.Mutex
}

// NewKGChatRunner creates a runner with production dependencies.
func NewKGChatRunner(cfg KGChatRunnerConfig, service ChatService) ChatRunner {
	historySize := cfg.HistorySize
	if historySize <= 0 {
		historySize = 50
	}
	timeout := requestTimeout()

	return &KGChatRunner{
		controller: NewSessionController(service),
		service:    service,
		ui:         ux.NewChatUI(),
		sources:    ux.NewSourcesPresenter(cfg.SourcePreview),
		input:      NewInteractiveInputReader(historySize),
		fetcher:    graphview.NewClient(cfg.BaseURL, timeout),
		openGraph:  graphview.Run,
		baseURL:    cfg.BaseURL,
	}
}

// NewKGChatRunnerWithDeps creates a runner with injected dependencies for
// testing. openGraph may be nil to disable the graph view entirely.
func NewKGChatRunnerWithDeps(
	service ChatService,
	ui ux.ChatUI,
	sources *ux.SourcesPresenter,
	input InputReader,
	fetcher graphview.SnapshotFetcher,
	openGraph func(graphview.SnapshotFetcher, string) error,
) *KGChatRunner {
	return &KGChatRunner{
		controller: NewSessionController(service),
		service:    service,
		ui:         ui,
		sources:    sources,
		input:      input,
		fetcher:    fetcher,
		openGraph:  openGraph,
	}
}

// Controller exposes the session controller, for tests that assert on
// transcript state after a run.
func (r *KGChatRunner) Controller() *SessionController {
	return r.controller
}

// Run executes the interactive chat loop.
//
// # Description
//
// The loop:
//  1. Displays the chat header with session and server info.
//  2. Renders the seeded greeting.
//  3. Reads input; routes exit commands, slash commands, and queries.
//  4. Queries go through the controller with a spinner while pending.
//  5. Repeats until exit, EOF, or context cancellation.
//
// # Outputs
//
//   - error: nil on normal exit ("exit"/"quit"/EOF), context.Canceled on
//     shutdown, or a fatal input error.
func (r *KGChatRunner) Run(ctx context.Context) error {
	r.ui.Header(ux.HeaderConfig{
		SessionID: r.service.SessionID(),
		Server:    r.baseURL,
	})
	r.ui.Response(r.controller.LastAssistant().Text)

	for {
		select {
		case <-ctx.Done():
			return r.handleShutdown(ctx)
		default:
		}

		prompt := r.ui.Prompt()
		if p, ok := r.input.(PromptingInputReader); ok {
			p.SetPrompt(prompt)
		} else {
			fmt.Print(prompt)
		}
		input, err := r.input.ReadLine()
		if err != nil {
			if err == io.EOF {
				r.ui.SessionEnd(r.service.SessionID(), r.controller.SentCount())
				return nil
			}
			slog.Error("failed to read input", "error", err)
			return fmt.Errorf("read input: %w", err)
		}

		if input == "" {
			continue
		}
		if isExitCommand(input) {
			r.ui.SessionEnd(r.service.SessionID(), r.controller.SentCount())
			return nil
		}

		switch input {
		case cmdExpandSources:
			r.handleExpandSources()
		case cmdOpenGraph:
			r.handleOpenGraph()
		default:
			r.handleQuery(ctx, input)
			if ctx.Err() != nil {
				return r.handleShutdown(ctx)
			}
		}
	}
}

// handleQuery sends one question and renders the outcome.
//
// Failures are terminal for the request: the controller has already
// appended the remediation notice, so the runner renders it plus the
// error detail and waits for the next input.
func (r *KGChatRunner) handleQuery(ctx context.Context, input string) {
	spinner := ux.NewSpinner(r.ui.Thinking())
	spinner.Start()
	msg, err := r.controller.Send(ctx, input)
	spinner.Stop()

	if msg == nil {
		// Rejected no-op; nothing was appended.
		slog.Debug("send rejected", "error", err)
		return
	}

	r.ui.Response(msg.Text)
	if err != nil {
		r.ui.Error(err)
		return
	}
	r.sources.Render(msg.Sources, msg.GraphRef, false)
}

// handleExpandSources re-renders the last answer's provenance expanded.
func (r *KGChatRunner) handleExpandSources() {
	last := r.controller.LastAssistant()
	if last == nil || len(last.Sources) == 0 {
		r.ui.Response("The last answer has no sources to expand.")
		return
	}
	r.sources.Render(last.Sources, last.GraphRef, true)
}

// handleOpenGraph opens the full-screen graph view. The last answer's
// graph-view reference is used when present; otherwise the whole graph.
func (r *KGChatRunner) handleOpenGraph() {
	if r.openGraph == nil || r.fetcher == nil {
		r.ui.Response("The graph view is not available in this session.")
		return
	}

	path := ""
	if last := r.controller.LastAssistant(); last != nil {
		path = last.GraphRef
	}

	if err := r.openGraph(r.fetcher, path); err != nil {
		slog.Warn("graph view failed", "error", err)
		r.ui.Error(err)
	}
}

// handleShutdown finishes the session after context cancellation.
func (r *KGChatRunner) handleShutdown(ctx context.Context) error {
	slog.Info("graceful shutdown initiated",
		"session_id", r.service.SessionID(),
	)
	fmt.Println()
	r.ui.SessionEnd(r.service.SessionID(), r.controller.SentCount())
	return ctx.Err()
}

// Close releases the underlying service. Idempotent.
func (r *KGChatRunner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.service.Close()
}
