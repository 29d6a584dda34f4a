package convert

import (
	"testing"

	"otlp2parquet/internal/otlp"
)

func TestConvertMinimalSpan(t *testing.T) {
	req := &otlp.TracesRequest{
		ResourceSpans: []otlp.ResourceSpans{
			{
				Resource: otlp.Resource{Attributes: []otlp.KeyValue{
					{Key: "service.name", Value: otlp.AnyValue{Kind: otlp.AnyValueString, Str: "svc-B"}},
				}},
				ScopeSpans: []otlp.ScopeSpans{
					{
						Scope: otlp.Scope{Name: "tracer", Version: "2.0"},
						Spans: []otlp.Span{
							{
								TraceID:           make([]byte, 16),
								SpanID:            make([]byte, 8),
								Name:              "GET /widgets",
								Kind:              2,
								StartTimeUnixNano: 1_700_000_000_000_000_000,
								EndTimeUnixNano:   1_700_000_000_500_000_000,
								Status:            otlp.SpanStatus{Code: 1, Message: "OK"},
							},
						},
					},
				},
			},
		},
	}

	groups, err := Traces(req)
	if err != nil {
		t.Fatalf("Traces: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Metadata.ServiceName != "svc-B" {
		t.Errorf("ServiceName = %q, want svc-B", g.Metadata.ServiceName)
	}
	if len(g.Batches) != 1 || g.Batches[0].Rows() != 1 {
		t.Fatalf("expected 1 batch x 1 row, got %#v", g.Batches)
	}

	batch := g.Batches[0]
	if got := batch.Column("SpanName").Utf8Values[0]; got != "GET /widgets" {
		t.Errorf("SpanName = %q, want GET /widgets", got)
	}
	if got := batch.Column("StatusCode").Int32Values[0]; got != 1 {
		t.Errorf("StatusCode = %d, want 1", got)
	}
	if got := batch.Column("StartTimestamp").TimestampMicros[0]; got != 1_700_000_000_000_000 {
		t.Errorf("StartTimestamp = %d, want 1700000000000000", got)
	}
	if got := batch.Column("EndTimestamp").TimestampMicros[0]; got != 1_700_000_000_500_000 {
		t.Errorf("EndTimestamp = %d, want 1700000000500000", got)
	}
	if got := batch.Column("ParentSpanId").BinaryValues[0]; got != nil {
		t.Errorf("ParentSpanId should be nil for a root span, got %v", got)
	}
}

func TestConvertSpanWithParentEventsAndLinks(t *testing.T) {
	req := &otlp.TracesRequest{
		ResourceSpans: []otlp.ResourceSpans{
			{
				ScopeSpans: []otlp.ScopeSpans{
					{
						Spans: []otlp.Span{
							{
								TraceID:      make([]byte, 16),
								SpanID:       make([]byte, 8),
								ParentSpanID: []byte{1, 2, 3, 4, 5, 6, 7, 8},
								Events: []otlp.SpanEvent{
									{Name: "retry", TimeUnixNano: 1_700_000_000_100_000_000},
								},
								Links: []otlp.SpanLink{
									{TraceID: make([]byte, 16), SpanID: make([]byte, 8)},
								},
								DroppedEventsCount: 1,
								DroppedLinksCount:  2,
							},
						},
					},
				},
			},
		},
	}

	groups, err := Traces(req)
	if err != nil {
		t.Fatalf("Traces: %v", err)
	}
	batch := groups[0].Batches[0]

	parentID := batch.Column("ParentSpanId").BinaryValues[0]
	if len(parentID) != 8 {
		t.Fatalf("ParentSpanId len = %d, want 8", len(parentID))
	}

	events := batch.Column("Events").Utf8Values[0]
	if events == "[]" || events == "" {
		t.Errorf("Events = %q, want a non-empty JSON array", events)
	}
	links := batch.Column("Links").Utf8Values[0]
	if links == "[]" || links == "" {
		t.Errorf("Links = %q, want a non-empty JSON array", links)
	}
	if got := batch.Column("DroppedEventsCount").Uint32Values[0]; got != 1 {
		t.Errorf("DroppedEventsCount = %d, want 1", got)
	}
	if got := batch.Column("DroppedLinksCount").Uint32Values[0]; got != 2 {
		t.Errorf("DroppedLinksCount = %d, want 2", got)
	}
}

func TestConvertTracesMultipleSpansShareOneBatch(t *testing.T) {
	req := &otlp.TracesRequest{
		ResourceSpans: []otlp.ResourceSpans{
			{
				ScopeSpans: []otlp.ScopeSpans{
					{
						Spans: []otlp.Span{
							{TraceID: make([]byte, 16), SpanID: make([]byte, 8), Name: "a"},
							{TraceID: make([]byte, 16), SpanID: make([]byte, 8), Name: "b"},
						},
					},
				},
			},
		},
	}

	groups, err := Traces(req)
	if err != nil {
		t.Fatalf("Traces: %v", err)
	}
	if got := groups[0].Batches[0].Rows(); got != 2 {
		t.Errorf("Rows = %d, want 2", got)
	}
	if got := groups[0].Metadata.RecordCount; got != 2 {
		t.Errorf("RecordCount = %d, want 2", got)
	}
}
