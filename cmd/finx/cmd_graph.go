// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/financex/finx/cmd/finx/internal/graphview"
)

// runGraphCommand opens the interactive graph view, or dumps the raw
// snapshot with --json.
func runGraphCommand(cmd *cobra.Command, args []string) error {
	fetcher := graphview.NewClient(baseURL(), requestTimeout())

	if graphJSON {
		snap, err := fetcher.FetchSnapshot(cmd.Context(), graphPath)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return nil
	}

	return graphview.Run(fetcher, graphPath)
}
