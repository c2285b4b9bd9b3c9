// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/financex/finx/cmd/finx/config"
	"github.com/financex/finx/pkg/ux"
)

// askSourcePreview bounds provenance rows in one-shot mode, where there
// is no follow-up /sources command to expand them.
const askSourcePreview = 2

// runChatCommand starts the interactive chat session.
func runChatCommand(cmd *cobra.Command, args []string) error {
	url := baseURL()
	service := NewGraphChatService(url, requestTimeout(), resumeSessionID)

	runner := NewKGChatRunner(KGChatRunnerConfig{
		BaseURL:       url,
		SessionID:     resumeSessionID,
		SourcePreview: config.Global.Chat.SourcePreview,
		HistorySize:   config.Global.Chat.HistorySize,
	}, service)
	defer func() {
		if err := runner.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close chat runner: %v\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}

// runAskCommand sends a single question and prints answer plus sources.
func runAskCommand(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	service := NewGraphChatService(baseURL(), requestTimeout(), "")
	defer func() {
		if err := service.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close chat service: %v\n", err)
		}
	}()

	controller := NewSessionController(service)
	ui := ux.NewChatUI()

	spinner := ux.NewSpinner(ui.Thinking())
	spinner.Start()
	msg, err := controller.Send(cmd.Context(), question)
	spinner.Stop()

	if msg == nil {
		return err
	}

	ui.Response(msg.Text)
	if err != nil {
		return err
	}

	presenter := ux.NewSourcesPresenter(askSourcePreview)
	presenter.Render(msg.Sources, msg.GraphRef, false)
	return nil
}
