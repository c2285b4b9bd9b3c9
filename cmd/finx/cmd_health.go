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

	"github.com/spf13/cobra"

	"github.com/financex/finx/pkg/ux"
)

// runHealthCommand probes the backend health endpoint.
//
// Exit behavior: a reachable backend that reports anything other than
// "healthy" is an error, so scripts can gate on the exit code.
func runHealthCommand(cmd *cobra.Command, args []string) error {
	url := baseURL()
	client := NewDataClient(url, requestTimeout())
	status, err := client.Health(cmd.Context())
	if err != nil {
		ux.Error(fmt.Sprintf("Backend unreachable at %s", url))
		return err
	}

	if ux.GetPersonality().Level == ux.PersonalityMachine {
		fmt.Printf("HEALTH: %s\n", status.Status)
		for _, name := range sortedServiceNames(status.Services) {
			fmt.Printf("SERVICE: %s=%s\n", name, status.Services[name])
		}
	} else {
		if status.Healthy() {
			ux.Success(fmt.Sprintf("Backend healthy at %s", url))
		} else {
			ux.Warning(fmt.Sprintf("Backend at %s reports: %s", url, status.Status))
		}
		for _, name := range sortedServiceNames(status.Services) {
			ux.Info(fmt.Sprintf("%-8s %s", name, status.Services[name]))
		}
	}

	if !status.Healthy() {
		return fmt.Errorf("backend unhealthy: %s", status.Status)
	}
	return nil
}

// sortedServiceNames returns map keys in stable order for display.
func sortedServiceNames(services map[string]string) []string {
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
