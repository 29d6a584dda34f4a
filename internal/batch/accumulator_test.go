package batch

import (
	"testing"
	"time"

	"otlp2parquet/internal/apierr"
	"otlp2parquet/internal/convert"
	"otlp2parquet/internal/otlp"
)

func logsGroup(t *testing.T, service string, rows int, tsNano uint64) convert.Group {
	t.Helper()

	records := make([]otlp.LogRecord, rows)
	for i := range records {
		records[i] = otlp.LogRecord{
			TimeUnixNano:   tsNano,
			SeverityNumber: 9,
			SeverityText:   "INFO",
			Body:           &otlp.AnyValue{Kind: otlp.AnyValueString, Str: "hello"},
		}
	}

	req := &otlp.LogsRequest{
		ResourceLogs: []otlp.ResourceLogs{
			{
				Resource: otlp.Resource{
					Attributes: []otlp.KeyValue{
						{Key: "service.name", Value: otlp.AnyValue{Kind: otlp.AnyValueString, Str: service}},
					},
				},
				ScopeLogs: []otlp.ScopeLogs{
					{Scope: otlp.Scope{Name: "l", Version: "1.0"}, LogRecords: records},
				},
			},
		},
	}

	groups, err := convert.Logs(req)
	if err != nil {
		t.Fatalf("convert.Logs: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	return groups[0]
}

func TestAccumulatorFlushOnRows(t *testing.T) {
	cfg := Config{MaxRows: 5, MaxBytes: 1 << 30, MaxAge: time.Hour, Enabled: true}
	acc := NewAccumulator(cfg)
	defer acc.Close()

	g := logsGroup(t, "svc-A", 5, 1_700_000_000_000_000_000)

	completed, err := acc.Ingest(g)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(completed) != 1 {
		t.Fatalf("len(completed) = %d, want 1", len(completed))
	}
	if completed[0].RecordCount != 5 {
		t.Errorf("RecordCount = %d, want 5", completed[0].RecordCount)
	}

	rows, bytes, buffers := acc.Stats()
	if rows != 0 || bytes != 0 || buffers != 0 {
		t.Errorf("Stats() = (%d, %d, %d), want all zero after flush", rows, bytes, buffers)
	}
}

func TestAccumulatorFlushOnAge(t *testing.T) {
	cfg := Config{MaxRows: 1_000_000, MaxBytes: 1 << 30, MaxAge: time.Second, Enabled: true}
	acc := NewAccumulator(cfg)
	defer acc.Close()

	g := logsGroup(t, "svc-A", 5, 1_700_000_000_000_000_000)
	if _, err := acc.Ingest(g); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	// Stop the sweeper immediately: this test exercises DrainExpired
	// directly and would otherwise race the background sweeper for the
	// same expired buffer.
	acc.Close()

	time.Sleep(1100 * time.Millisecond)

	completed := acc.DrainExpired()
	if len(completed) != 1 {
		t.Fatalf("len(completed) = %d, want 1", len(completed))
	}
	if completed[0].RecordCount != 5 {
		t.Errorf("RecordCount = %d, want 5", completed[0].RecordCount)
	}

	again := acc.DrainExpired()
	if len(again) != 0 {
		t.Fatalf("second DrainExpired() = %d completed, want 0 (idempotent)", len(again))
	}
}

func TestAccumulatorBackpressure(t *testing.T) {
	cfg := Config{MaxRows: 1_000_000, MaxBytes: 1024, MaxAge: time.Hour, Enabled: true}
	acc := NewAccumulator(cfg)
	defer acc.Close()

	var lastErr error
	for i := 0; i < 10_000; i++ {
		g := logsGroup(t, "svc-A", 50, 1_700_000_000_000_000_000)
		if _, err := acc.Ingest(g); err != nil {
			lastErr = err
			break
		}
	}

	if lastErr == nil {
		t.Fatal("expected backpressure error, got none")
	}
	apiErr, ok := lastErr.(*apierr.Error)
	if !ok {
		t.Fatalf("err type = %T, want *apierr.Error", lastErr)
	}
	if apiErr.Kind != apierr.Backpressure {
		t.Errorf("Kind = %v, want Backpressure", apiErr.Kind)
	}

	_, totalBytes, _ := acc.Stats()
	if totalBytes > residencyMultiplier*cfg.MaxBytes {
		t.Errorf("totalBytes = %d, exceeds ceiling %d", totalBytes, residencyMultiplier*cfg.MaxBytes)
	}
}

func TestAccumulatorDrainAllLeavesNoBuffers(t *testing.T) {
	cfg := Config{MaxRows: 1_000_000, MaxBytes: 1 << 30, MaxAge: time.Hour, Enabled: true}
	acc := NewAccumulator(cfg)
	defer acc.Close()

	for _, svc := range []string{"svc-A", "svc-B", "svc-C"} {
		g := logsGroup(t, svc, 3, 1_700_000_000_000_000_000)
		if _, err := acc.Ingest(g); err != nil {
			t.Fatalf("Ingest: %v", err)
		}
	}

	completed := acc.DrainAll()
	if len(completed) != 3 {
		t.Fatalf("len(completed) = %d, want 3", len(completed))
	}

	rows, bytes, buffers := acc.Stats()
	if rows != 0 || bytes != 0 || buffers != 0 {
		t.Errorf("Stats() after DrainAll = (%d, %d, %d), want all zero", rows, bytes, buffers)
	}
}

func TestAccumulatorPassthroughBypassesBuffering(t *testing.T) {
	cfg := Config{MaxRows: 1_000_000, MaxBytes: 1 << 30, MaxAge: time.Hour, Enabled: false}
	acc := NewAccumulator(cfg)
	defer acc.Close()

	g := logsGroup(t, "svc-A", 5, 1_700_000_000_000_000_000)
	completed, err := acc.Ingest(g)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(completed) != 1 {
		t.Fatalf("len(completed) = %d, want 1 (one file per request in passthrough mode)", len(completed))
	}
	if completed[0].RecordCount != 5 {
		t.Errorf("RecordCount = %d, want 5", completed[0].RecordCount)
	}

	rows, bytes, buffers := acc.Stats()
	if rows != 0 || bytes != 0 || buffers != 0 {
		t.Errorf("Stats() = (%d, %d, %d), want all zero — passthrough must never populate the buffer map", rows, bytes, buffers)
	}
}
