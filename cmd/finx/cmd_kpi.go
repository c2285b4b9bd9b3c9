// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/financex/finx/pkg/ux"
)

// runKPICommand fetches and displays the reconciliation KPI summary.
func runKPICommand(cmd *cobra.Command, args []string) error {
	client := NewDataClient(baseURL(), requestTimeout())
	summary, err := client.FetchKPIs(cmd.Context())
	if err != nil {
		return err
	}

	if ux.GetPersonality().Level == ux.PersonalityMachine {
		fmt.Printf("KPI: invoices=%d transactions=%d vendors=%d anomalies=%d\n",
			summary.TotalInvoices, summary.TotalTransactions,
			summary.TotalVendors, summary.Anomalies)
		return nil
	}

	var content strings.Builder
	content.WriteString(fmt.Sprintf("Invoices      %s\n", ux.Styles.Bold.Render(fmt.Sprintf("%d", summary.TotalInvoices))))
	content.WriteString(fmt.Sprintf("Transactions  %s\n", ux.Styles.Bold.Render(fmt.Sprintf("%d", summary.TotalTransactions))))
	content.WriteString(fmt.Sprintf("Vendors       %s\n", ux.Styles.Bold.Render(fmt.Sprintf("%d", summary.TotalVendors))))

	anomalies := fmt.Sprintf("%d", summary.Anomalies)
	if summary.Anomalies > 0 {
		anomalies = ux.Styles.Warning.Render(anomalies)
	} else {
		anomalies = ux.Styles.Success.Render(anomalies)
	}
	content.WriteString(fmt.Sprintf("Anomalies     %s", anomalies))

	ux.Box("Reconciliation KPIs", content.String())
	return nil
}
