package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"otlp2parquet/internal/batch"
	"otlp2parquet/internal/config"
	"otlp2parquet/internal/logging"
	"otlp2parquet/internal/objstore"
	"otlp2parquet/internal/parquetio"
	"otlp2parquet/internal/server"
)

// drainTimeout bounds how long shutdown waits for the accumulator's
// final drain_all before giving up (spec §5: "a best-effort timeout
// applies to the drain; on timeout residual data is lost and logged").
const drainTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the OTLP ingestion HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	zapLogger, err := logging.New(logging.Config{Level: cfg.Host.LogLevel, Format: cfg.Host.LogFormat})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	serverLog := logging.NewComponentLogger(zapLogger, "server")
	accLog := logging.NewComponentLogger(zapLogger, "accumulator")

	parquetio.SetRowGroupSize(cfg.Parquet.RowGroupSize)

	store, err := objstore.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init object store: %w", err)
	}

	acc := batch.NewAccumulator(batch.Config{
		MaxRows:  cfg.Batch.MaxRows,
		MaxBytes: cfg.Batch.MaxBytes,
		MaxAge:   cfg.Batch.MaxAge(),
		Enabled:  cfg.Batch.IsEnabled(),
	})
	acc.OnFlush = func(completed []batch.Completed) {
		for _, c := range completed {
			encoded, err := parquetio.EncodeCompleted(c)
			if err != nil {
				accLog.Errorf("sweeper flush encode failed for %s: %v", c.ServiceName, err)
				continue
			}
			for _, enc := range encoded {
				path := parquetio.BuildPath(cfg.Storage.PathPrefix, enc.Schema.Name, c.ServiceName, c.FirstTSMicro, time.Now())
				if err := store.Write(ctx, path, enc.Bytes); err != nil {
					accLog.Errorf("sweeper flush write failed for %s: %v", path, err)
				}
			}
		}
	}

	srv := server.New(acc, store, cfg.Host.MaxPayloadBytes, cfg.Storage.PathPrefix, serverLog)
	httpServer := &http.Server{Addr: cfg.Host.ListenAddr, Handler: srv}

	serveErr := make(chan error, 1)
	go func() {
		serverLog.Infof("listening on %s", cfg.Host.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		serverLog.Infof("shutdown signal received, draining")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		serverLog.Errorf("http shutdown: %v", err)
	}

	acc.Close()
	for _, c := range acc.DrainAll() {
		encoded, err := parquetio.EncodeCompleted(c)
		if err != nil {
			serverLog.Errorf("drain encode failed for %s: %v", c.ServiceName, err)
			continue
		}
		for _, enc := range encoded {
			path := parquetio.BuildPath(cfg.Storage.PathPrefix, enc.Schema.Name, c.ServiceName, c.FirstTSMicro, time.Now())
			if err := store.Write(shutdownCtx, path, enc.Bytes); err != nil {
				serverLog.Errorf("drain write failed for %s: %v", path, err)
			}
		}
	}

	return nil
}
