// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/financex/finx/cmd/finx/config"
	"github.com/financex/finx/pkg/logging"
	"github.com/financex/finx/pkg/ux"
)

// --- Global Command Variables ---
var (
	serverURL        string // CLI override for server.base_url
	personalityLevel string // UX personality level (full/standard/minimal/machine)
	graphPath        string // explicit graph-view reference for `finx graph`
	graphJSON        bool   // dump the raw snapshot instead of opening the view
	resumeSessionID  string // resume a chat session by correlation id

	appLogger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "finx",
		Short: "Terminal client for the FinanceX invoice reconciliation backend",
		Long: `finx talks to the FinanceX knowledge-graph backend: ask questions
about invoices, transactions, vendors, and products, inspect the provenance
behind every answer, and explore the knowledge graph in your terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize UX personality from flag or environment
			if personalityLevel != "" {
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityLevel))
			} else {
				ux.InitPersonality()
			}

			if err := config.Load(); err != nil {
				return err
			}

			appLogger = logging.New(logging.Config{
				Level:   logging.ParseLevel(config.Global.Logging.Level),
				LogDir:  config.Global.Logging.Dir,
				Service: "finx",
			})
			slog.SetDefault(appLogger.Logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appLogger != nil {
				if err := appLogger.Close(); err != nil {
					slog.Warn("failed to close log sink", "error", err)
				}
			}
		},
	}

	// --- Chat ---
	chatCmd = &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session with the knowledge graph",
		RunE:  runChatCommand, // Defined in cmd_chat.go
	}

	askCmd = &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the answer with its sources",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAskCommand, // Defined in cmd_chat.go
	}

	// --- Graph ---
	graphCmd = &cobra.Command{
		Use:   "graph",
		Short: "Open the interactive knowledge-graph view",
		RunE:  runGraphCommand, // Defined in cmd_graph.go
	}

	// --- Data ---
	dataCmd = &cobra.Command{
		Use:   "data",
		Short: "Browse the raw invoice and transaction records",
	}
	dataInvoicesCmd = &cobra.Command{
		Use:   "invoices",
		Short: "List all invoice records",
		RunE:  runDataInvoices, // Defined in cmd_data.go
	}
	dataTransactionsCmd = &cobra.Command{
		Use:   "transactions",
		Short: "List all transaction records",
		RunE:  runDataTransactions, // Defined in cmd_data.go
	}

	// --- KPI ---
	kpiCmd = &cobra.Command{
		Use:   "kpi",
		Short: "Show reconciliation KPI metrics",
		RunE:  runKPICommand, // Defined in cmd_kpi.go
	}

	// --- Health ---
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check backend service health",
		RunE:  runHealthCommand, // Defined in cmd_health.go
	}
)

// baseURL resolves the backend base URL: flag wins over config.
func baseURL() string {
	if serverURL != "" {
		return serverURL
	}
	return config.Global.Server.BaseURL
}

// requestTimeout returns the configured HTTP request bound.
func requestTimeout() time.Duration {
	return config.Global.Server.Timeout()
}

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "",
		"FinanceX backend base URL (default from ~/.finx/finx.yaml)")
	rootCmd.PersistentFlags().StringVar(&personalityLevel, "personality", "",
		"Output style: full (default), standard, minimal, or machine (scripting)")

	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&resumeSessionID, "resume", "",
		"Resume a conversation using a specific session ID.")

	rootCmd.AddCommand(askCmd)

	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringVar(&graphPath, "path", "",
		"Graph-view reference to open (default: the full knowledge graph)")
	graphCmd.Flags().BoolVar(&graphJSON, "json", false,
		"Print the raw snapshot JSON instead of opening the view")

	rootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(dataInvoicesCmd)
	dataCmd.AddCommand(dataTransactionsCmd)

	rootCmd.AddCommand(kpiCmd)
	rootCmd.AddCommand(healthCmd)
}
