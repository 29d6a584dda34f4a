// Package otlp defines the in-memory OTLP domain model shared by the
// protobuf and JSON decode paths. Both paths converge on these types so
// that content decoded from either wire format produces identical
// downstream columnar output.
package otlp

// Signal identifies which of the three OTLP export requests a payload
// carries.
type Signal int

const (
	SignalLogs Signal = iota
	SignalTraces
	SignalMetrics
)

func (s Signal) String() string {
	switch s {
	case SignalLogs:
		return "logs"
	case SignalTraces:
		return "traces"
	case SignalMetrics:
		return "metrics"
	default:
		return "unknown"
	}
}

// AnyValueKind discriminates the OTLP AnyValue tagged union.
type AnyValueKind int

const (
	AnyValueEmpty AnyValueKind = iota
	AnyValueString
	AnyValueBool
	AnyValueInt64
	AnyValueDouble
	AnyValueBytes
	AnyValueArray
	AnyValueKvList
)

// AnyValue is the OTLP polymorphic attribute/body value. Exactly one of
// the typed fields is meaningful, selected by Kind; Array and KvList
// recurse to arbitrary depth and terminate at primitive leaves.
type AnyValue struct {
	Kind   AnyValueKind
	Str    string
	Bool   bool
	Int64  int64
	Double float64
	Bytes  []byte
	Array  []AnyValue
	KvList []KeyValue
}

// KeyValue is an OTLP attribute entry. Keys may repeat within a sequence;
// callers extracting to dedicated columns use first-wins semantics.
type KeyValue struct {
	Key   string
	Value AnyValue
}

// Resource describes the entity producing telemetry.
type Resource struct {
	Attributes             []KeyValue
	DroppedAttributesCount uint32
}

// Scope describes the instrumentation library/version producing a batch
// of records.
type Scope struct {
	Name                   string
	Version                string
	Attributes             []KeyValue
	DroppedAttributesCount uint32
}

// LogRecord is a single OTLP log entry.
type LogRecord struct {
	TimeUnixNano           uint64
	ObservedTimeUnixNano   uint64
	SeverityNumber         int32
	SeverityText           string
	Body                   *AnyValue
	Attributes             []KeyValue
	DroppedAttributesCount uint32
	Flags                  uint32
	TraceID                []byte
	SpanID                 []byte
}

// ScopeLogs groups log records under one instrumentation scope.
type ScopeLogs struct {
	Scope      Scope
	LogRecords []LogRecord
	SchemaURL  string
}

// ResourceLogs groups scope logs under one resource.
type ResourceLogs struct {
	Resource  Resource
	ScopeLogs []ScopeLogs
	SchemaURL string
}

// LogsRequest is a decoded ExportLogsServiceRequest.
type LogsRequest struct {
	ResourceLogs []ResourceLogs
}

// SpanEvent is a timestamped annotation on a span.
type SpanEvent struct {
	TimeUnixNano           uint64
	Name                   string
	Attributes             []KeyValue
	DroppedAttributesCount uint32
}

// SpanLink references another span.
type SpanLink struct {
	TraceID                []byte
	SpanID                 []byte
	TraceState             string
	Attributes             []KeyValue
	DroppedAttributesCount uint32
	Flags                  uint32
}

// SpanStatus is the span's completion status.
type SpanStatus struct {
	Message string
	Code    int32
}

// Span is a single OTLP span.
type Span struct {
	TraceID                []byte
	SpanID                 []byte
	TraceState             string
	ParentSpanID            []byte
	Name                   string
	Kind                   int32
	StartTimeUnixNano      uint64
	EndTimeUnixNano        uint64
	Attributes             []KeyValue
	DroppedAttributesCount uint32
	Events                 []SpanEvent
	DroppedEventsCount     uint32
	Links                  []SpanLink
	DroppedLinksCount      uint32
	Status                 SpanStatus
}

// ScopeSpans groups spans under one instrumentation scope.
type ScopeSpans struct {
	Scope     Scope
	Spans     []Span
	SchemaURL string
}

// ResourceSpans groups scope spans under one resource.
type ResourceSpans struct {
	Resource   Resource
	ScopeSpans []ScopeSpans
	SchemaURL  string
}

// TracesRequest is a decoded ExportTraceServiceRequest.
type TracesRequest struct {
	ResourceSpans []ResourceSpans
}

// NumberDataPoint backs gauge and sum metrics.
type NumberDataPoint struct {
	Attributes        []KeyValue
	StartTimeUnixNano uint64
	TimeUnixNano      uint64
	IsInt             bool
	AsInt             int64
	AsDouble          float64
	Flags             uint32
}

// HistogramDataPoint backs explicit-bucket histograms.
type HistogramDataPoint struct {
	Attributes        []KeyValue
	StartTimeUnixNano uint64
	TimeUnixNano      uint64
	Count             uint64
	Sum               *float64
	BucketCounts      []uint64
	ExplicitBounds    []float64
	Min               *float64
	Max               *float64
	Flags             uint32
}

// ExponentialBuckets is one side (positive or negative) of an exponential
// histogram's bucket layout.
type ExponentialBuckets struct {
	Offset       int32
	BucketCounts []uint64
}

// ExponentialHistogramDataPoint backs base-2 exponential histograms.
type ExponentialHistogramDataPoint struct {
	Attributes        []KeyValue
	StartTimeUnixNano uint64
	TimeUnixNano      uint64
	Count             uint64
	Sum               *float64
	Scale             int32
	ZeroCount         uint64
	Positive          ExponentialBuckets
	Negative          ExponentialBuckets
	Min               *float64
	Max               *float64
	Flags             uint32
}

// ValueAtQuantile is one summary quantile sample.
type ValueAtQuantile struct {
	Quantile float64
	Value    float64
}

// SummaryDataPoint backs client-side pre-aggregated summaries.
type SummaryDataPoint struct {
	Attributes        []KeyValue
	StartTimeUnixNano uint64
	TimeUnixNano      uint64
	Count             uint64
	Sum               float64
	QuantileValues    []ValueAtQuantile
	Flags             uint32
}

// MetricType discriminates the five OTLP metric data shapes.
type MetricType int

const (
	MetricTypeUnknown MetricType = iota
	MetricTypeGauge
	MetricTypeSum
	MetricTypeHistogram
	MetricTypeExponentialHistogram
	MetricTypeSummary
)

func (t MetricType) String() string {
	switch t {
	case MetricTypeGauge:
		return "gauge"
	case MetricTypeSum:
		return "sum"
	case MetricTypeHistogram:
		return "histogram"
	case MetricTypeExponentialHistogram:
		return "exponential_histogram"
	case MetricTypeSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Metric is a single OTLP metric stream, branching by Type into exactly
// one of the data-point slices below.
type Metric struct {
	Name        string
	Description string
	Unit        string
	Type        MetricType

	Gauge                 []NumberDataPoint
	Sum                   []NumberDataPoint
	SumTemporality        int32
	SumIsMonotonic        bool
	Histogram             []HistogramDataPoint
	HistogramTemporality  int32
	ExponentialHistogram  []ExponentialHistogramDataPoint
	ExpHistogramTemporality int32
	Summary               []SummaryDataPoint
}

// ScopeMetrics groups metrics under one instrumentation scope.
type ScopeMetrics struct {
	Scope     Scope
	Metrics   []Metric
	SchemaURL string
}

// ResourceMetrics groups scope metrics under one resource.
type ResourceMetrics struct {
	Resource      Resource
	ScopeMetrics  []ScopeMetrics
	SchemaURL     string
}

// MetricsRequest is a decoded ExportMetricsServiceRequest.
type MetricsRequest struct {
	ResourceMetrics []ResourceMetrics
}

// Request is a decoded, signal-tagged OTLP export request.
type Request struct {
	Signal  Signal
	Logs    *LogsRequest
	Traces  *TracesRequest
	Metrics *MetricsRequest
}
