// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/financex/finx/pkg/ux"
)

// preferredColumns orders well-known CSV columns ahead of the rest. The
// data API serves raw rows, so any column not listed here still renders,
// alphabetically after these.
var preferredColumns = []string{
	"invoice_id", "transaction_id", "vendor_id", "date", "total", "amount",
}

// runDataInvoices lists all invoice records.
func runDataInvoices(cmd *cobra.Command, args []string) error {
	client := NewDataClient(baseURL(), requestTimeout())
	records, err := client.ListInvoices(cmd.Context())
	if err != nil {
		return err
	}
	renderRecords("Invoices", records)
	return nil
}

// runDataTransactions lists all transaction records.
func runDataTransactions(cmd *cobra.Command, args []string) error {
	client := NewDataClient(baseURL(), requestTimeout())
	records, err := client.ListTransactions(cmd.Context())
	if err != nil {
		return err
	}
	renderRecords("Transactions", records)
	return nil
}

// renderRecords prints schemaless records as an aligned table.
func renderRecords(title string, records []DataRecord) {
	personality := ux.GetPersonality().Level

	if len(records) == 0 {
		if personality == ux.PersonalityMachine {
			fmt.Printf("%s: 0\n", strings.ToUpper(title))
			return
		}
		ux.Info(fmt.Sprintf("No %s found.", strings.ToLower(title)))
		return
	}

	columns := recordColumns(records)

	if personality == ux.PersonalityMachine {
		fmt.Println(strings.Join(columns, "\t"))
		for _, rec := range records {
			row := make([]string, len(columns))
			for i, col := range columns {
				row[i] = cellString(rec[col])
			}
			fmt.Println(strings.Join(row, "\t"))
		}
		return
	}

	// Compute column widths from header and data.
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cellString(rec[col])
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
		rows = append(rows, row)
	}

	ux.Title(fmt.Sprintf("%s (%d)", title, len(records)))

	var header strings.Builder
	for i, col := range columns {
		header.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
	}
	fmt.Println(ux.Styles.Bold.Render(strings.TrimRight(header.String(), " ")))

	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			line.WriteString(fmt.Sprintf("%-*s  ", widths[i], cell))
		}
		fmt.Println(strings.TrimRight(line.String(), " "))
	}
}

// recordColumns derives the column order: preferred names first, then
// the remaining keys alphabetically.
func recordColumns(records []DataRecord) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for key := range rec {
			seen[key] = true
		}
	}

	var columns []string
	for _, col := range preferredColumns {
		if seen[col] {
			columns = append(columns, col)
			delete(seen, col)
		}
	}

	var rest []string
	for key := range seen {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

// cellString formats a record value for table output. JSON numbers that
// are whole render without a trailing ".000000".
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
