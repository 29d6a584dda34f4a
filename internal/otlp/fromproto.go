package otlp

import (
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
)

// FromLogsProto converts a decoded ExportLogsServiceRequest into the
// internal domain model. Used for the binary-protobuf decode path.
func FromLogsProto(req *collogspb.ExportLogsServiceRequest) *LogsRequest {
	out := &LogsRequest{ResourceLogs: make([]ResourceLogs, 0, len(req.GetResourceLogs()))}
	for _, rl := range req.GetResourceLogs() {
		out.ResourceLogs = append(out.ResourceLogs, resourceLogsFromProto(rl))
	}
	return out
}

func resourceLogsFromProto(rl *logspb.ResourceLogs) ResourceLogs {
	out := ResourceLogs{
		Resource:  resourceFromProto(rl.GetResource()),
		SchemaURL: rl.GetSchemaUrl(),
	}
	for _, sl := range rl.GetScopeLogs() {
		out.ScopeLogs = append(out.ScopeLogs, scopeLogsFromProto(sl))
	}
	return out
}

func scopeLogsFromProto(sl *logspb.ScopeLogs) ScopeLogs {
	out := ScopeLogs{
		Scope:     scopeFromProto(sl.GetScope()),
		SchemaURL: sl.GetSchemaUrl(),
	}
	for _, lr := range sl.GetLogRecords() {
		out.LogRecords = append(out.LogRecords, logRecordFromProto(lr))
	}
	return out
}

func logRecordFromProto(lr *logspb.LogRecord) LogRecord {
	rec := LogRecord{
		TimeUnixNano:           lr.GetTimeUnixNano(),
		ObservedTimeUnixNano:   lr.GetObservedTimeUnixNano(),
		SeverityNumber:         int32(lr.GetSeverityNumber()),
		SeverityText:           lr.GetSeverityText(),
		Attributes:             keyValuesFromProto(lr.GetAttributes()),
		DroppedAttributesCount: lr.GetDroppedAttributesCount(),
		Flags:                  lr.GetFlags(),
		TraceID:                append([]byte(nil), lr.GetTraceId()...),
		SpanID:                 append([]byte(nil), lr.GetSpanId()...),
	}
	if lr.GetBody() != nil {
		v := anyValueFromProto(lr.GetBody())
		rec.Body = &v
	}
	return rec
}

// FromTracesProto converts a decoded ExportTraceServiceRequest into the
// internal domain model.
func FromTracesProto(req *coltracepb.ExportTraceServiceRequest) *TracesRequest {
	out := &TracesRequest{ResourceSpans: make([]ResourceSpans, 0, len(req.GetResourceSpans()))}
	for _, rs := range req.GetResourceSpans() {
		out.ResourceSpans = append(out.ResourceSpans, resourceSpansFromProto(rs))
	}
	return out
}

func resourceSpansFromProto(rs *tracepb.ResourceSpans) ResourceSpans {
	out := ResourceSpans{
		Resource:  resourceFromProto(rs.GetResource()),
		SchemaURL: rs.GetSchemaUrl(),
	}
	for _, ss := range rs.GetScopeSpans() {
		out.ScopeSpans = append(out.ScopeSpans, scopeSpansFromProto(ss))
	}
	return out
}

func scopeSpansFromProto(ss *tracepb.ScopeSpans) ScopeSpans {
	out := ScopeSpans{
		Scope:     scopeFromProto(ss.GetScope()),
		SchemaURL: ss.GetSchemaUrl(),
	}
	for _, sp := range ss.GetSpans() {
		out.Spans = append(out.Spans, spanFromProto(sp))
	}
	return out
}

func spanFromProto(sp *tracepb.Span) Span {
	out := Span{
		TraceID:                append([]byte(nil), sp.GetTraceId()...),
		SpanID:                 append([]byte(nil), sp.GetSpanId()...),
		TraceState:             sp.GetTraceState(),
		ParentSpanID:           append([]byte(nil), sp.GetParentSpanId()...),
		Name:                   sp.GetName(),
		Kind:                   int32(sp.GetKind()),
		StartTimeUnixNano:      sp.GetStartTimeUnixNano(),
		EndTimeUnixNano:        sp.GetEndTimeUnixNano(),
		Attributes:             keyValuesFromProto(sp.GetAttributes()),
		DroppedAttributesCount: sp.GetDroppedAttributesCount(),
		DroppedEventsCount:     sp.GetDroppedEventsCount(),
		DroppedLinksCount:      sp.GetDroppedLinksCount(),
	}
	if st := sp.GetStatus(); st != nil {
		out.Status = SpanStatus{Message: st.GetMessage(), Code: int32(st.GetCode())}
	}
	for _, ev := range sp.GetEvents() {
		out.Events = append(out.Events, SpanEvent{
			TimeUnixNano:           ev.GetTimeUnixNano(),
			Name:                   ev.GetName(),
			Attributes:             keyValuesFromProto(ev.GetAttributes()),
			DroppedAttributesCount: ev.GetDroppedAttributesCount(),
		})
	}
	for _, lk := range sp.GetLinks() {
		out.Links = append(out.Links, SpanLink{
			TraceID:                append([]byte(nil), lk.GetTraceId()...),
			SpanID:                 append([]byte(nil), lk.GetSpanId()...),
			TraceState:             lk.GetTraceState(),
			Attributes:             keyValuesFromProto(lk.GetAttributes()),
			DroppedAttributesCount: lk.GetDroppedAttributesCount(),
			Flags:                  lk.GetFlags(),
		})
	}
	return out
}

// FromMetricsProto converts a decoded ExportMetricsServiceRequest into the
// internal domain model.
func FromMetricsProto(req *colmetricspb.ExportMetricsServiceRequest) *MetricsRequest {
	out := &MetricsRequest{ResourceMetrics: make([]ResourceMetrics, 0, len(req.GetResourceMetrics()))}
	for _, rm := range req.GetResourceMetrics() {
		out.ResourceMetrics = append(out.ResourceMetrics, resourceMetricsFromProto(rm))
	}
	return out
}

func resourceMetricsFromProto(rm *metricspb.ResourceMetrics) ResourceMetrics {
	out := ResourceMetrics{
		Resource:  resourceFromProto(rm.GetResource()),
		SchemaURL: rm.GetSchemaUrl(),
	}
	for _, sm := range rm.GetScopeMetrics() {
		out.ScopeMetrics = append(out.ScopeMetrics, scopeMetricsFromProto(sm))
	}
	return out
}

func scopeMetricsFromProto(sm *metricspb.ScopeMetrics) ScopeMetrics {
	out := ScopeMetrics{
		Scope:     scopeFromProto(sm.GetScope()),
		SchemaURL: sm.GetSchemaUrl(),
	}
	for _, m := range sm.GetMetrics() {
		out.Metrics = append(out.Metrics, metricFromProto(m))
	}
	return out
}

func metricFromProto(m *metricspb.Metric) Metric {
	out := Metric{
		Name:        m.GetName(),
		Description: m.GetDescription(),
		Unit:        m.GetUnit(),
	}
	switch data := m.GetData().(type) {
	case *metricspb.Metric_Gauge:
		out.Type = MetricTypeGauge
		for _, dp := range data.Gauge.GetDataPoints() {
			out.Gauge = append(out.Gauge, numberDataPointFromProto(dp))
		}
	case *metricspb.Metric_Sum:
		out.Type = MetricTypeSum
		out.SumTemporality = int32(data.Sum.GetAggregationTemporality())
		out.SumIsMonotonic = data.Sum.GetIsMonotonic()
		for _, dp := range data.Sum.GetDataPoints() {
			out.Sum = append(out.Sum, numberDataPointFromProto(dp))
		}
	case *metricspb.Metric_Histogram:
		out.Type = MetricTypeHistogram
		out.HistogramTemporality = int32(data.Histogram.GetAggregationTemporality())
		for _, dp := range data.Histogram.GetDataPoints() {
			out.Histogram = append(out.Histogram, histogramDataPointFromProto(dp))
		}
	case *metricspb.Metric_ExponentialHistogram:
		out.Type = MetricTypeExponentialHistogram
		out.ExpHistogramTemporality = int32(data.ExponentialHistogram.GetAggregationTemporality())
		for _, dp := range data.ExponentialHistogram.GetDataPoints() {
			out.ExponentialHistogram = append(out.ExponentialHistogram, expHistogramDataPointFromProto(dp))
		}
	case *metricspb.Metric_Summary:
		out.Type = MetricTypeSummary
		for _, dp := range data.Summary.GetDataPoints() {
			out.Summary = append(out.Summary, summaryDataPointFromProto(dp))
		}
	}
	return out
}

func numberDataPointFromProto(dp *metricspb.NumberDataPoint) NumberDataPoint {
	out := NumberDataPoint{
		Attributes:        keyValuesFromProto(dp.GetAttributes()),
		StartTimeUnixNano: dp.GetStartTimeUnixNano(),
		TimeUnixNano:      dp.GetTimeUnixNano(),
		Flags:             dp.GetFlags(),
	}
	switch v := dp.GetValue().(type) {
	case *metricspb.NumberDataPoint_AsInt:
		out.IsInt = true
		out.AsInt = v.AsInt
	case *metricspb.NumberDataPoint_AsDouble:
		out.AsDouble = v.AsDouble
	}
	return out
}

func histogramDataPointFromProto(dp *metricspb.HistogramDataPoint) HistogramDataPoint {
	out := HistogramDataPoint{
		Attributes:        keyValuesFromProto(dp.GetAttributes()),
		StartTimeUnixNano: dp.GetStartTimeUnixNano(),
		TimeUnixNano:      dp.GetTimeUnixNano(),
		Count:             dp.GetCount(),
		BucketCounts:      append([]uint64(nil), dp.GetBucketCounts()...),
		ExplicitBounds:    append([]float64(nil), dp.GetExplicitBounds()...),
		Flags:             dp.GetFlags(),
	}
	if dp.Sum_ != nil {
		s := dp.GetSum()
		out.Sum = &s
	}
	if dp.Min_ != nil {
		v := dp.GetMin()
		out.Min = &v
	}
	if dp.Max_ != nil {
		v := dp.GetMax()
		out.Max = &v
	}
	return out
}

func expHistogramDataPointFromProto(dp *metricspb.ExponentialHistogramDataPoint) ExponentialHistogramDataPoint {
	out := ExponentialHistogramDataPoint{
		Attributes:        keyValuesFromProto(dp.GetAttributes()),
		StartTimeUnixNano: dp.GetStartTimeUnixNano(),
		TimeUnixNano:      dp.GetTimeUnixNano(),
		Count:             dp.GetCount(),
		Scale:             dp.GetScale(),
		ZeroCount:         dp.GetZeroCount(),
		Flags:             dp.GetFlags(),
	}
	if dp.Sum_ != nil {
		s := dp.GetSum()
		out.Sum = &s
	}
	if dp.Min_ != nil {
		v := dp.GetMin()
		out.Min = &v
	}
	if dp.Max_ != nil {
		v := dp.GetMax()
		out.Max = &v
	}
	if p := dp.GetPositive(); p != nil {
		out.Positive = ExponentialBuckets{Offset: p.GetOffset(), BucketCounts: append([]uint64(nil), p.GetBucketCounts()...)}
	}
	if n := dp.GetNegative(); n != nil {
		out.Negative = ExponentialBuckets{Offset: n.GetOffset(), BucketCounts: append([]uint64(nil), n.GetBucketCounts()...)}
	}
	return out
}

func summaryDataPointFromProto(dp *metricspb.SummaryDataPoint) SummaryDataPoint {
	out := SummaryDataPoint{
		Attributes:        keyValuesFromProto(dp.GetAttributes()),
		StartTimeUnixNano: dp.GetStartTimeUnixNano(),
		TimeUnixNano:      dp.GetTimeUnixNano(),
		Count:             dp.GetCount(),
		Sum:               dp.GetSum(),
		Flags:             dp.GetFlags(),
	}
	for _, q := range dp.GetQuantileValues() {
		out.QuantileValues = append(out.QuantileValues, ValueAtQuantile{Quantile: q.GetQuantile(), Value: q.GetValue()})
	}
	return out
}

func resourceFromProto(r *resourcepb.Resource) Resource {
	if r == nil {
		return Resource{}
	}
	return Resource{
		Attributes:             keyValuesFromProto(r.GetAttributes()),
		DroppedAttributesCount: r.GetDroppedAttributesCount(),
	}
}

func scopeFromProto(s *commonpb.InstrumentationScope) Scope {
	if s == nil {
		return Scope{}
	}
	return Scope{
		Name:                   s.GetName(),
		Version:                s.GetVersion(),
		Attributes:             keyValuesFromProto(s.GetAttributes()),
		DroppedAttributesCount: s.GetDroppedAttributesCount(),
	}
}

func keyValuesFromProto(kvs []*commonpb.KeyValue) []KeyValue {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]KeyValue, 0, len(kvs))
	for _, kv := range kvs {
		out = append(out, KeyValue{Key: kv.GetKey(), Value: anyValueFromProto(kv.GetValue())})
	}
	return out
}

func anyValueFromProto(v *commonpb.AnyValue) AnyValue {
	if v == nil {
		return AnyValue{Kind: AnyValueEmpty}
	}
	switch val := v.GetValue().(type) {
	case *commonpb.AnyValue_StringValue:
		return AnyValue{Kind: AnyValueString, Str: val.StringValue}
	case *commonpb.AnyValue_BoolValue:
		return AnyValue{Kind: AnyValueBool, Bool: val.BoolValue}
	case *commonpb.AnyValue_IntValue:
		return AnyValue{Kind: AnyValueInt64, Int64: val.IntValue}
	case *commonpb.AnyValue_DoubleValue:
		return AnyValue{Kind: AnyValueDouble, Double: val.DoubleValue}
	case *commonpb.AnyValue_BytesValue:
		return AnyValue{Kind: AnyValueBytes, Bytes: append([]byte(nil), val.BytesValue...)}
	case *commonpb.AnyValue_ArrayValue:
		arr := make([]AnyValue, 0, len(val.ArrayValue.GetValues()))
		for _, e := range val.ArrayValue.GetValues() {
			arr = append(arr, anyValueFromProto(e))
		}
		return AnyValue{Kind: AnyValueArray, Array: arr}
	case *commonpb.AnyValue_KvlistValue:
		return AnyValue{Kind: AnyValueKvList, KvList: keyValuesFromProto(val.KvlistValue.GetValues())}
	default:
		return AnyValue{Kind: AnyValueEmpty}
	}
}
