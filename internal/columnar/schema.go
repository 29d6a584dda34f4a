// Package columnar defines the frozen, process-wide schemas for each
// OTLP signal and the struct-of-arrays RecordBatch storage they describe.
// Schemas are initialized once as package-level values and never mutated
// at runtime; every field carries a stable field id as column metadata so
// downstream Parquet/Iceberg readers can rely on ids rather than position.
package columnar

// FieldType enumerates the physical column types RecordBatch can store.
type FieldType int

const (
	TypeTimestampMicros FieldType = iota
	TypeInt32
	TypeInt64
	TypeUint32
	TypeUint64
	TypeFloat64
	TypeUtf8
	TypeBinary
	TypeBool
	TypeListInt64
	TypeListFloat64
)

// Field describes one column: its stable id, name, physical type, and
// nullability. FieldID is the "PARQUET:field_id" metadata value written
// alongside the column at encode time.
type Field struct {
	FieldID  int
	Name     string
	Type     FieldType
	Nullable bool
}

// Schema is a fixed, ordered column list plus file-level metadata carried
// into every Parquet file written against it.
type Schema struct {
	Name     string
	Fields   []Field
	Metadata map[string]string
}

// FieldIndex returns the position of name in s.Fields, or -1.
func (s *Schema) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// sharedFileMetadata is embedded at the Parquet file level regardless of
// signal, matching the original implementation's writer properties.
func sharedFileMetadata() map[string]string {
	return map[string]string{
		"otlp.version":          "1.5.0",
		"otlp2parquet.version":  "1.0.0",
		"otlp.protocol.version": "v1",
		"schema.source":         "opentelemetry-collector-contrib/clickhouseexporter",
	}
}

// LogsSchema is the frozen schema for the logs signal, field ids 1-19 per
// the specification's §4.3 table.
var LogsSchema = &Schema{
	Name: "logs",
	Fields: []Field{
		{1, "Timestamp", TypeTimestampMicros, false},
		{2, "TraceId", TypeBinary, false},
		{3, "SpanId", TypeBinary, false},
		{4, "ServiceName", TypeUtf8, false},
		{5, "ServiceNamespace", TypeUtf8, true},
		{6, "ServiceInstanceId", TypeUtf8, true},
		{7, "ResourceAttributes", TypeUtf8, false},
		{8, "ResourceSchemaUrl", TypeUtf8, true},
		{9, "ScopeName", TypeUtf8, false},
		{10, "ScopeVersion", TypeUtf8, true},
		{11, "ScopeAttributes", TypeUtf8, false},
		{12, "ScopeSchemaUrl", TypeUtf8, true},
		{13, "TimestampTime", TypeTimestampMicros, false},
		{14, "ObservedTimestamp", TypeTimestampMicros, false},
		{15, "TraceFlags", TypeUint32, false},
		{16, "SeverityText", TypeUtf8, false},
		{17, "SeverityNumber", TypeInt32, false},
		{18, "Body", TypeUtf8, true},
		{19, "LogAttributes", TypeUtf8, false},
	},
	Metadata: sharedFileMetadata(),
}

// TracesSchema is the frozen schema for the traces signal. spec.md §4.3
// states the traces schema is "analogous" to logs without giving exact
// ids; this layout extends the logs column prefix (1-12, shared resource/
// scope columns) with span-specific columns, continuing field ids
// sequentially the way the original's metrics schema continues past its
// own shared prefix (see metricBaseFields below) — see DESIGN.md for this decision.
var TracesSchema = &Schema{
	Name: "traces",
	Fields: []Field{
		{1, "Timestamp", TypeTimestampMicros, false},
		{2, "TraceId", TypeBinary, false},
		{3, "SpanId", TypeBinary, false},
		{4, "ServiceName", TypeUtf8, false},
		{5, "ServiceNamespace", TypeUtf8, true},
		{6, "ServiceInstanceId", TypeUtf8, true},
		{7, "ResourceAttributes", TypeUtf8, false},
		{8, "ResourceSchemaUrl", TypeUtf8, true},
		{9, "ScopeName", TypeUtf8, false},
		{10, "ScopeVersion", TypeUtf8, true},
		{11, "ScopeAttributes", TypeUtf8, false},
		{12, "ScopeSchemaUrl", TypeUtf8, true},
		{13, "ParentSpanId", TypeBinary, true},
		{14, "TraceState", TypeUtf8, true},
		{15, "SpanName", TypeUtf8, false},
		{16, "SpanKind", TypeInt32, false},
		{17, "StartTimestamp", TypeTimestampMicros, false},
		{18, "EndTimestamp", TypeTimestampMicros, false},
		{19, "Attributes", TypeUtf8, false},
		{20, "DroppedAttributesCount", TypeUint32, false},
		{21, "StatusCode", TypeInt32, false},
		{22, "StatusMessage", TypeUtf8, true},
		{23, "Events", TypeUtf8, false},
		{24, "DroppedEventsCount", TypeUint32, false},
		{25, "Links", TypeUtf8, false},
		{26, "DroppedLinksCount", TypeUint32, false},
	},
	Metadata: sharedFileMetadata(),
}

// metricBaseFields is the column prefix shared by all five metric-point
// schemas, field ids 1-9, per schema/metrics.rs.
func metricBaseFields() []Field {
	return []Field{
		{1, "Timestamp", TypeTimestampMicros, false},
		{2, "ServiceName", TypeUtf8, false},
		{3, "ResourceAttributes", TypeUtf8, false},
		{4, "ScopeName", TypeUtf8, true},
		{5, "ScopeVersion", TypeUtf8, true},
		{6, "MetricName", TypeUtf8, false},
		{7, "MetricDescription", TypeUtf8, true},
		{8, "MetricUnit", TypeUtf8, true},
		{9, "Attributes", TypeUtf8, false},
	}
}

func metricMetadata(metricType string) map[string]string {
	md := sharedFileMetadata()
	md["otlp2parquet.metrics_schema_version"] = "1.0.0"
	md["otlp2parquet.metric_type"] = metricType
	return md
}

// GaugeSchema is the frozen schema for gauge metric points.
var GaugeSchema = &Schema{
	Name: "metrics.gauge",
	Fields: append(metricBaseFields(),
		Field{10, "Value", TypeFloat64, false},
	),
	Metadata: metricMetadata("gauge"),
}

// SumSchema is the frozen schema for sum metric points.
var SumSchema = &Schema{
	Name: "metrics.sum",
	Fields: append(metricBaseFields(),
		Field{10, "Value", TypeFloat64, false},
		Field{11, "AggregationTemporality", TypeInt32, false},
		Field{12, "IsMonotonic", TypeBool, false},
	),
	Metadata: metricMetadata("sum"),
}

// HistogramSchema is the frozen schema for explicit-bucket histogram
// metric points.
var HistogramSchema = &Schema{
	Name: "metrics.histogram",
	Fields: append(metricBaseFields(),
		Field{10, "Count", TypeInt64, false},
		Field{11, "Sum", TypeFloat64, false},
		Field{12, "BucketCounts", TypeListInt64, false},
		Field{13, "ExplicitBounds", TypeListFloat64, false},
		Field{14, "Min", TypeFloat64, true},
		Field{15, "Max", TypeFloat64, true},
	),
	Metadata: metricMetadata("histogram"),
}

// ExponentialHistogramSchema is the frozen schema for base-2 exponential
// histogram metric points.
var ExponentialHistogramSchema = &Schema{
	Name: "metrics.exponential_histogram",
	Fields: append(metricBaseFields(),
		Field{10, "Count", TypeInt64, false},
		Field{11, "Sum", TypeFloat64, false},
		Field{12, "Scale", TypeInt32, false},
		Field{13, "ZeroCount", TypeInt64, false},
		Field{14, "PositiveOffset", TypeInt32, false},
		Field{15, "PositiveBucketCounts", TypeListInt64, false},
		Field{16, "NegativeOffset", TypeInt32, false},
		Field{17, "NegativeBucketCounts", TypeListInt64, false},
		Field{18, "Min", TypeFloat64, true},
		Field{19, "Max", TypeFloat64, true},
	),
	Metadata: metricMetadata("exponential_histogram"),
}

// SummarySchema is the frozen schema for client-computed summary metric
// points.
var SummarySchema = &Schema{
	Name: "metrics.summary",
	Fields: append(metricBaseFields(),
		Field{10, "Count", TypeInt64, false},
		Field{11, "Sum", TypeFloat64, false},
		Field{12, "QuantileValues", TypeListFloat64, false},
		Field{13, "QuantileQuantiles", TypeListFloat64, false},
	),
	Metadata: metricMetadata("summary"),
}

// SchemaForMetricType returns the frozen schema matching an
// otlp.MetricType string ("gauge", "sum", ...), or nil if unknown.
func SchemaForMetricType(metricType string) *Schema {
	switch metricType {
	case "gauge":
		return GaugeSchema
	case "sum":
		return SumSchema
	case "histogram":
		return HistogramSchema
	case "exponential_histogram":
		return ExponentialHistogramSchema
	case "summary":
		return SummarySchema
	default:
		return nil
	}
}
