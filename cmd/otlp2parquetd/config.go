package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"otlp2parquet/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect otlp2parquetd configuration",
		Long: `View the effective otlp2parquetd configuration.

Configuration file location: ~/.config/otlp2parquet/config.toml
(or $XDG_CONFIG_HOME/otlp2parquet/config.toml)`,
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective, fully-layered configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fmt.Printf("Config file: %s\n\n", config.ConfigPath())

			// Only decorate the "enabled" value with a status glyph when
			// stdout is an interactive terminal; piped output (CI logs,
			// `| tee`) gets the plain boolean instead.
			interactive := term.IsTerminal(int(os.Stdout.Fd()))
			enabledValue := fmt.Sprintf("%v", cfg.Batch.IsEnabled())
			if interactive {
				if cfg.Batch.IsEnabled() {
					enabledValue = "✓ " + enabledValue
				} else {
					enabledValue = "⚠ " + enabledValue
				}
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("SECTION", "KEY", "VALUE")

			_ = table.Append("batch", "max_rows", fmt.Sprintf("%d", cfg.Batch.MaxRows))
			_ = table.Append("batch", "max_bytes", fmt.Sprintf("%d", cfg.Batch.MaxBytes))
			_ = table.Append("batch", "max_age_secs", fmt.Sprintf("%d", cfg.Batch.MaxAgeSecs))
			_ = table.Append("batch", "enabled", enabledValue)

			_ = table.Append("storage", "backend", cfg.Storage.Backend)
			_ = table.Append("storage", "bucket", cfg.Storage.Bucket)
			_ = table.Append("storage", "base_dir", cfg.Storage.BaseDir)
			_ = table.Append("storage", "path_prefix", cfg.Storage.PathPrefix)

			_ = table.Append("host", "listen_addr", cfg.Host.ListenAddr)
			_ = table.Append("host", "log_level", cfg.Host.LogLevel)
			_ = table.Append("host", "log_format", cfg.Host.LogFormat)
			_ = table.Append("host", "max_payload_bytes", fmt.Sprintf("%d", cfg.Host.MaxPayloadBytes))

			_ = table.Append("parquet", "row_group_size", fmt.Sprintf("%d", cfg.Parquet.RowGroupSize))

			return table.Render()
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
			return nil
		},
	}
}
