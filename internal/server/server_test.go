package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"otlp2parquet/internal/batch"
	"otlp2parquet/internal/objstore"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := objstore.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	acc := batch.NewAccumulator(batch.Config{
		MaxRows: 1, MaxBytes: 1 << 30, MaxAge: time.Hour, Enabled: false,
	})
	t.Cleanup(acc.Close)
	return New(acc, store, 8*1024*1024, "", nil)
}

func TestHealthAlwaysOK(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestReadyOKWithWorkingStore(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("GET", "/ready", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestIngestLogsJSONFlushesAndReturnsPartitions(t *testing.T) {
	s := newTestServer(t)

	payload := []byte(`{
		"resourceLogs": [{
			"resource": {"attributes": [{"key": "service.name", "value": {"stringValue": "svc-A"}}]},
			"scopeLogs": [{
				"scope": {"name": "l", "version": "1.0"},
				"logRecords": [{
					"timeUnixNano": "1700000000000000000",
					"severityNumber": 9,
					"severityText": "INFO",
					"body": {"stringValue": "hello"}
				}]
			}]
		}]
	}`)

	req := httptest.NewRequest("POST", "/v1/logs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp successResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.RecordsProcessed != 1 {
		t.Errorf("RecordsProcessed = %d, want 1", resp.RecordsProcessed)
	}
	if resp.FlushCount != 1 {
		t.Errorf("FlushCount = %d, want 1 (passthrough mode flushes every request)", resp.FlushCount)
	}
	if len(resp.Partitions) != 1 {
		t.Errorf("Partitions = %v, want 1 entry", resp.Partitions)
	}
}

func TestIngestEmptyBodyReturnsInvalidRequest(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("POST", "/v1/logs", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error != "InvalidRequest" {
		t.Errorf("Error = %q, want InvalidRequest", resp.Error)
	}
}

func TestIngestOversizedBodyReturns413(t *testing.T) {
	s := newTestServer(t)
	s.MaxPayloadBytes = 4

	req := httptest.NewRequest("POST", "/v1/logs", bytes.NewReader([]byte(`{"too":"big"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != 413 {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}
