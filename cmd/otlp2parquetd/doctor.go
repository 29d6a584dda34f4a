package main

import (
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"otlp2parquet/internal/config"
	"otlp2parquet/internal/objstore"
)

type checkResult struct {
	name    string
	status  string // "ok", "warn", "error"
	message string
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and storage connectivity",
		Long: `Verify that otlp2parquetd's configuration is valid and its storage
backend is reachable.

Checks:
  - Configuration file parses and validates
  - Object storage backend accepts a cheap list probe

The listen address is not checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd)
		},
	}
}

func runDoctor(cmd *cobra.Command) error {
	var results []checkResult
	results = append(results, checkConfig())
	results = append(results, checkStorage())

	printDoctorResults(cmd, results)

	for _, r := range results {
		if r.status == "error" {
			return fmt.Errorf("doctor found configuration problems")
		}
	}
	return nil
}

func checkConfig() checkResult {
	cfg, err := config.Load()
	if err != nil {
		return checkResult{name: "config", status: "error", message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return checkResult{name: "config", status: "error", message: err.Error()}
	}
	return checkResult{name: "config", status: "ok", message: config.ConfigPath()}
}

func checkStorage() checkResult {
	cfg, err := config.Load()
	if err != nil {
		return checkResult{name: "storage", status: "error", message: err.Error()}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := objstore.New(ctx, cfg.Storage)
	if err != nil {
		return checkResult{name: "storage", status: "error", message: err.Error()}
	}
	if _, err := store.List(ctx, cfg.Storage.PathPrefix); err != nil {
		return checkResult{name: "storage", status: "error", message: err.Error()}
	}
	return checkResult{name: "storage", status: "ok", message: fmt.Sprintf("%s backend reachable", cfg.Storage.Backend)}
}

func printDoctorResults(cmd *cobra.Command, results []checkResult) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("CHECK", "STATUS", "DETAILS")

	for _, r := range results {
		status := r.status
		switch r.status {
		case "ok":
			status = "✓ ok"
		case "warn":
			status = "⚠ warn"
		case "error":
			status = "✗ error"
		}
		_ = table.Append(r.name, status, r.message)
	}
	_ = table.Render()
}
