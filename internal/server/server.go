// Package server implements the HTTP host layer: it decodes incoming
// OTLP requests, converts and accumulates them, and answers health and
// readiness probes (spec §6). Routing is plain net/http — SPEC_FULL.md
// records this as a deliberate stdlib choice: request framing is
// explicitly out of the spec's scope, so no router/middleware library
// earns a place here.
package server

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"otlp2parquet/internal/apierr"
	"otlp2parquet/internal/batch"
	"otlp2parquet/internal/convert"
	"otlp2parquet/internal/decode"
	"otlp2parquet/internal/logging"
	"otlp2parquet/internal/objstore"
	"otlp2parquet/internal/otlp"
	"otlp2parquet/internal/parquetio"
)

// Server wires the decode → convert → accumulate → encode → store
// pipeline behind an HTTP surface.
type Server struct {
	Accumulator     *batch.Accumulator
	Store           objstore.Store
	MaxPayloadBytes int64
	PathPrefix      string
	Log             *logging.ComponentLogger

	mux *http.ServeMux
}

// New builds a Server and registers its routes.
func New(acc *batch.Accumulator, store objstore.Store, maxPayloadBytes int64, pathPrefix string, log *logging.ComponentLogger) *Server {
	s := &Server{
		Accumulator:     acc,
		Store:           store,
		MaxPayloadBytes: maxPayloadBytes,
		PathPrefix:      pathPrefix,
		Log:             log,
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("POST /v1/logs", s.handleSignal(otlp.SignalLogs))
	s.mux.HandleFunc("POST /v1/traces", s.handleSignal(otlp.SignalTraces))
	s.mux.HandleFunc("POST /v1/metrics", s.handleSignal(otlp.SignalMetrics))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /ready", s.handleReady)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type successResponse struct {
	Status           string   `json:"status"`
	RecordsProcessed int      `json:"records_processed"`
	FlushCount       int      `json:"flush_count"`
	Partitions       []string `json:"partitions"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func (s *Server) handleSignal(signal otlp.Signal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, apiErr := s.readBody(r)
		if apiErr != nil {
			s.writeError(w, apiErr)
			return
		}

		req, err := decode.Request(signal, body, r.Header.Get("Content-Type"))
		if err != nil {
			s.writeError(w, apierr.Wrap(apierr.InvalidRequest, "failed to decode request body", err))
			return
		}

		groups, err := convertRequest(req)
		if err != nil {
			s.writeError(w, apierr.Wrap(apierr.ConversionFailed, "failed to convert OTLP request", err))
			return
		}

		recordsProcessed := 0
		var completedBuffers []batch.Completed
		for _, g := range groups {
			recordsProcessed += g.Metadata.RecordCount
			completed, err := s.Accumulator.Ingest(g)
			if err != nil {
				var apiErr *apierr.Error
				if errors.As(err, &apiErr) {
					s.writeError(w, apiErr)
					return
				}
				s.writeError(w, apierr.Wrap(apierr.InternalError, "accumulator ingest failed", err))
				return
			}
			completedBuffers = append(completedBuffers, completed...)
		}

		partitions, err := s.flushCompleted(r.Context(), completedBuffers)
		if err != nil {
			s.writeError(w, apierr.Wrap(apierr.StorageFailed, "failed to persist a completed batch", err))
			return
		}

		s.writeJSON(w, http.StatusOK, successResponse{
			Status:           "ok",
			RecordsProcessed: recordsProcessed,
			FlushCount:       len(completedBuffers),
			Partitions:       partitions,
		})
	}
}

// flushConcurrency bounds how many completed buffers are encoded and
// written to object storage at once — a request that completes several
// service/minute buckets in one call (e.g. a large mixed-metrics batch)
// fans its writes out instead of serializing them, while still capping
// how many Parquet encodes run at once.
const flushConcurrency = 4

// flushCompleted encodes and writes every flushed buffer, returning the
// object-store paths written. A client that triggered a synchronous
// flush still receives 200 even if a later sweeper flush fails (spec
// §7's propagation policy) — but a flush returned directly from Ingest
// IS part of this request's response, so its storage failure surfaces
// here as StorageFailed.
func (s *Server) flushCompleted(ctx context.Context, completed []batch.Completed) ([]string, error) {
	if len(completed) == 0 {
		return nil, nil
	}

	var (
		mu    sync.Mutex
		paths []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(flushConcurrency)

	for _, c := range completed {
		c := c
		g.Go(func() error {
			encodedFiles, err := parquetio.EncodeCompleted(c)
			if err != nil {
				return fmt.Errorf("encode completed batch for %s: %w", c.ServiceName, err)
			}
			for _, enc := range encodedFiles {
				path := parquetio.BuildPath(s.PathPrefix, enc.Schema.Name, c.ServiceName, c.FirstTSMicro, time.Now())
				if err := s.Store.Write(gctx, path, enc.Bytes); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				mu.Lock()
				paths = append(paths, path)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func convertRequest(req *otlp.Request) ([]convert.Group, error) {
	switch req.Signal {
	case otlp.SignalLogs:
		return convert.Logs(req.Logs)
	case otlp.SignalTraces:
		return convert.Traces(req.Traces)
	case otlp.SignalMetrics:
		return convert.Metrics(req.Metrics)
	default:
		return nil, fmt.Errorf("server: unrecognized signal %v", req.Signal)
	}
}

func (s *Server) readBody(r *http.Request) ([]byte, *apierr.Error) {
	reader := io.Reader(r.Body)
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, apierr.Wrap(apierr.InvalidRequest, "invalid gzip payload", err)
		}
		defer gz.Close()
		reader = gz
	}

	limited := io.LimitReader(reader, s.MaxPayloadBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, apierr.Wrap(apierr.InvalidRequest, "failed to read request body", err)
	}
	if int64(len(body)) > s.MaxPayloadBytes {
		return nil, apierr.New(apierr.PayloadTooLarge, "request body exceeds the configured size limit")
	}
	if len(body) == 0 {
		return nil, apierr.New(apierr.InvalidRequest, "empty request body")
	}
	return body, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := s.Store.List(ctx, s.PathPrefix); err != nil {
		s.logf("readiness probe failed: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err *apierr.Error) {
	s.logf("request failed: %v", err)
	s.writeJSON(w, err.Kind.HTTPStatus(), errorResponse{
		Error:   err.Kind.String(),
		Message: err.Message,
		Hint:    err.Hint,
	})
}

func (s *Server) logf(format string, args ...any) {
	if s.Log != nil {
		s.Log.Errorf(format, args...)
	}
}
