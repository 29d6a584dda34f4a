package convert

import (
	"testing"

	"otlp2parquet/internal/otlp"
)

func TestConvertMinimalLog(t *testing.T) {
	req := &otlp.LogsRequest{
		ResourceLogs: []otlp.ResourceLogs{
			{
				Resource: otlp.Resource{Attributes: []otlp.KeyValue{
					{Key: "service.name", Value: otlp.AnyValue{Kind: otlp.AnyValueString, Str: "svc-A"}},
				}},
				ScopeLogs: []otlp.ScopeLogs{
					{
						Scope: otlp.Scope{Name: "l", Version: "1.0"},
						LogRecords: []otlp.LogRecord{
							{
								TimeUnixNano:   1_700_000_000_000_000_000,
								SeverityNumber: 9,
								SeverityText:   "INFO",
								Body:           &otlp.AnyValue{Kind: otlp.AnyValueString, Str: "hello"},
							},
						},
					},
				},
			},
		},
	}

	groups, err := Logs(req)
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if len(g.Batches) != 1 || g.Batches[0].Rows() != 1 {
		t.Fatalf("expected 1 batch x 1 row, got %#v", g.Batches)
	}
	if g.Metadata.ServiceName != "svc-A" {
		t.Errorf("ServiceName = %q, want svc-A", g.Metadata.ServiceName)
	}

	batch := g.Batches[0]
	if got := batch.Column("Timestamp").TimestampMicros[0]; got != 1_700_000_000_000_000 {
		t.Errorf("Timestamp = %d, want 1700000000000000", got)
	}
	if got := batch.Column("Body").Utf8Values[0]; got != `"hello"` {
		t.Errorf("Body = %q, want \"hello\"", got)
	}
	if got := batch.Column("ResourceAttributes").Utf8Values[0]; got != "{}" {
		t.Errorf("ResourceAttributes = %q, want {}", got)
	}
	if got := batch.Column("LogAttributes").Utf8Values[0]; got != "{}" {
		t.Errorf("LogAttributes = %q, want {}", got)
	}
	traceID := batch.Column("TraceId").BinaryValues[0]
	if len(traceID) != 16 {
		t.Errorf("TraceId len = %d, want 16", len(traceID))
	}
	for _, b := range traceID {
		if b != 0 {
			t.Fatalf("TraceId not all-zero: %v", traceID)
		}
	}
	spanID := batch.Column("SpanId").BinaryValues[0]
	if len(spanID) != 8 {
		t.Errorf("SpanId len = %d, want 8", len(spanID))
	}
}

func TestConvertServiceNameDefaultsToUnknown(t *testing.T) {
	req := &otlp.LogsRequest{
		ResourceLogs: []otlp.ResourceLogs{
			{
				ScopeLogs: []otlp.ScopeLogs{
					{LogRecords: []otlp.LogRecord{{}}},
				},
			},
		},
	}
	groups, err := Logs(req)
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if groups[0].Metadata.ServiceName != "unknown" {
		t.Errorf("ServiceName = %q, want unknown", groups[0].Metadata.ServiceName)
	}
	if got := groups[0].Batches[0].Column("ServiceName").Utf8Values[0]; got != "unknown" {
		t.Errorf("ServiceName column = %q, want unknown", got)
	}
}

func TestConvertBodyNaN(t *testing.T) {
	req := &otlp.LogsRequest{
		ResourceLogs: []otlp.ResourceLogs{
			{
				ScopeLogs: []otlp.ScopeLogs{
					{LogRecords: []otlp.LogRecord{
						{Body: &otlp.AnyValue{Kind: otlp.AnyValueDouble, Double: nan()}},
					}},
				},
			},
		},
	}
	groups, _ := Logs(req)
	got := groups[0].Batches[0].Column("Body").Utf8Values[0]
	if got != `"NaN"` {
		t.Errorf("Body = %q, want \"NaN\"", got)
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
