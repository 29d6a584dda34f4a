// Command otlp2parquetd runs the OTLP ingestion server: it accepts OTLP
// logs/traces/metrics over HTTP, batches them, and writes them out as
// content-addressed Parquet files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"otlp2parquet/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "otlp2parquetd",
		Short:         "OTLP-to-Parquet ingestion server",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())

	rootCmd.SetVersionTemplate(fmt.Sprintf("otlp2parquetd %s (built: %s)\n", version.FullVersion(), version.Date))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
