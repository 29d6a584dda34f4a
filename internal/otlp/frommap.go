package otlp

import "fmt"

// FromLogsMap builds a LogsRequest from a normalized generic JSON tree
// (the output of internal/jsonnorm). The map uses snake_case OTLP field
// names throughout, AnyValue variants already re-cased to PascalCase, and
// trace/span ids already hex-decoded to []byte (as json arrays of numbers
// or []byte passed straight through by the goccy/go-json unmarshal step).
func FromLogsMap(m map[string]any) (*LogsRequest, error) {
	out := &LogsRequest{}
	for _, rlRaw := range asSlice(m["resource_logs"]) {
		rl, ok := rlRaw.(map[string]any)
		if !ok {
			continue
		}
		resourceLogs, err := resourceLogsFromMap(rl)
		if err != nil {
			return nil, err
		}
		out.ResourceLogs = append(out.ResourceLogs, resourceLogs)
	}
	return out, nil
}

func resourceLogsFromMap(m map[string]any) (ResourceLogs, error) {
	out := ResourceLogs{
		Resource:  resourceFromMap(asMap(m["resource"])),
		SchemaURL: asString(m["schema_url"]),
	}
	for _, slRaw := range asSlice(m["scope_logs"]) {
		sl, ok := slRaw.(map[string]any)
		if !ok {
			continue
		}
		scopeLogs, err := scopeLogsFromMap(sl)
		if err != nil {
			return ResourceLogs{}, err
		}
		out.ScopeLogs = append(out.ScopeLogs, scopeLogs)
	}
	return out, nil
}

func scopeLogsFromMap(m map[string]any) (ScopeLogs, error) {
	out := ScopeLogs{
		Scope:     scopeFromMap(asMap(m["scope"])),
		SchemaURL: asString(m["schema_url"]),
	}
	for _, lrRaw := range asSlice(m["log_records"]) {
		lr, ok := lrRaw.(map[string]any)
		if !ok {
			continue
		}
		rec, err := logRecordFromMap(lr)
		if err != nil {
			return ScopeLogs{}, err
		}
		out.LogRecords = append(out.LogRecords, rec)
	}
	return out, nil
}

func logRecordFromMap(m map[string]any) (LogRecord, error) {
	traceID, err := asBytes(m["trace_id"])
	if err != nil {
		return LogRecord{}, fmt.Errorf("trace_id: %w", err)
	}
	spanID, err := asBytes(m["span_id"])
	if err != nil {
		return LogRecord{}, fmt.Errorf("span_id: %w", err)
	}
	rec := LogRecord{
		TimeUnixNano:           asUint64(m["time_unix_nano"]),
		ObservedTimeUnixNano:   asUint64(m["observed_time_unix_nano"]),
		SeverityNumber:         int32(asInt64(m["severity_number"])),
		SeverityText:           asString(m["severity_text"]),
		Attributes:             keyValuesFromMap(asSlice(m["attributes"])),
		DroppedAttributesCount: asUint32(m["dropped_attributes_count"]),
		Flags:                  asUint32(m["flags"]),
		TraceID:                traceID,
		SpanID:                 spanID,
	}
	if body, ok := m["body"]; ok && body != nil {
		v := anyValueFromMap(body)
		rec.Body = &v
	}
	return rec, nil
}

// FromTracesMap builds a TracesRequest from a normalized generic JSON tree.
func FromTracesMap(m map[string]any) (*TracesRequest, error) {
	out := &TracesRequest{}
	for _, rsRaw := range asSlice(m["resource_spans"]) {
		rs, ok := rsRaw.(map[string]any)
		if !ok {
			continue
		}
		resourceSpans, err := resourceSpansFromMap(rs)
		if err != nil {
			return nil, err
		}
		out.ResourceSpans = append(out.ResourceSpans, resourceSpans)
	}
	return out, nil
}

func resourceSpansFromMap(m map[string]any) (ResourceSpans, error) {
	out := ResourceSpans{
		Resource:  resourceFromMap(asMap(m["resource"])),
		SchemaURL: asString(m["schema_url"]),
	}
	for _, ssRaw := range asSlice(m["scope_spans"]) {
		ss, ok := ssRaw.(map[string]any)
		if !ok {
			continue
		}
		scopeSpans, err := scopeSpansFromMap(ss)
		if err != nil {
			return ResourceSpans{}, err
		}
		out.ScopeSpans = append(out.ScopeSpans, scopeSpans)
	}
	return out, nil
}

func scopeSpansFromMap(m map[string]any) (ScopeSpans, error) {
	out := ScopeSpans{
		Scope:     scopeFromMap(asMap(m["scope"])),
		SchemaURL: asString(m["schema_url"]),
	}
	for _, spRaw := range asSlice(m["spans"]) {
		sp, ok := spRaw.(map[string]any)
		if !ok {
			continue
		}
		span, err := spanFromMap(sp)
		if err != nil {
			return ScopeSpans{}, err
		}
		out.Spans = append(out.Spans, span)
	}
	return out, nil
}

func spanFromMap(m map[string]any) (Span, error) {
	traceID, err := asBytes(m["trace_id"])
	if err != nil {
		return Span{}, fmt.Errorf("trace_id: %w", err)
	}
	spanID, err := asBytes(m["span_id"])
	if err != nil {
		return Span{}, fmt.Errorf("span_id: %w", err)
	}
	parentSpanID, err := asBytes(m["parent_span_id"])
	if err != nil {
		return Span{}, fmt.Errorf("parent_span_id: %w", err)
	}
	out := Span{
		TraceID:                traceID,
		SpanID:                 spanID,
		TraceState:             asString(m["trace_state"]),
		ParentSpanID:           parentSpanID,
		Name:                   asString(m["name"]),
		Kind:                   int32(asInt64(m["kind"])),
		StartTimeUnixNano:      asUint64(m["start_time_unix_nano"]),
		EndTimeUnixNano:        asUint64(m["end_time_unix_nano"]),
		Attributes:             keyValuesFromMap(asSlice(m["attributes"])),
		DroppedAttributesCount: asUint32(m["dropped_attributes_count"]),
		DroppedEventsCount:     asUint32(m["dropped_events_count"]),
		DroppedLinksCount:      asUint32(m["dropped_links_count"]),
	}
	if st := asMap(m["status"]); st != nil {
		out.Status = SpanStatus{Message: asString(st["message"]), Code: int32(asInt64(st["code"]))}
	}
	for _, evRaw := range asSlice(m["events"]) {
		ev, ok := evRaw.(map[string]any)
		if !ok {
			continue
		}
		out.Events = append(out.Events, SpanEvent{
			TimeUnixNano:           asUint64(ev["time_unix_nano"]),
			Name:                   asString(ev["name"]),
			Attributes:             keyValuesFromMap(asSlice(ev["attributes"])),
			DroppedAttributesCount: asUint32(ev["dropped_attributes_count"]),
		})
	}
	for _, lkRaw := range asSlice(m["links"]) {
		lk, ok := lkRaw.(map[string]any)
		if !ok {
			continue
		}
		linkTraceID, err := asBytes(lk["trace_id"])
		if err != nil {
			return Span{}, fmt.Errorf("link trace_id: %w", err)
		}
		linkSpanID, err := asBytes(lk["span_id"])
		if err != nil {
			return Span{}, fmt.Errorf("link span_id: %w", err)
		}
		out.Links = append(out.Links, SpanLink{
			TraceID:                linkTraceID,
			SpanID:                 linkSpanID,
			TraceState:             asString(lk["trace_state"]),
			Attributes:             keyValuesFromMap(asSlice(lk["attributes"])),
			DroppedAttributesCount: asUint32(lk["dropped_attributes_count"]),
			Flags:                  asUint32(lk["flags"]),
		})
	}
	return out, nil
}

// FromMetricsMap builds a MetricsRequest from a normalized generic JSON tree.
func FromMetricsMap(m map[string]any) (*MetricsRequest, error) {
	out := &MetricsRequest{}
	for _, rmRaw := range asSlice(m["resource_metrics"]) {
		rm, ok := rmRaw.(map[string]any)
		if !ok {
			continue
		}
		out.ResourceMetrics = append(out.ResourceMetrics, resourceMetricsFromMap(rm))
	}
	return out, nil
}

func resourceMetricsFromMap(m map[string]any) ResourceMetrics {
	out := ResourceMetrics{
		Resource:  resourceFromMap(asMap(m["resource"])),
		SchemaURL: asString(m["schema_url"]),
	}
	for _, smRaw := range asSlice(m["scope_metrics"]) {
		sm, ok := smRaw.(map[string]any)
		if !ok {
			continue
		}
		out.ScopeMetrics = append(out.ScopeMetrics, scopeMetricsFromMap(sm))
	}
	return out
}

func scopeMetricsFromMap(m map[string]any) ScopeMetrics {
	out := ScopeMetrics{
		Scope:     scopeFromMap(asMap(m["scope"])),
		SchemaURL: asString(m["schema_url"]),
	}
	for _, metricRaw := range asSlice(m["metrics"]) {
		mm, ok := metricRaw.(map[string]any)
		if !ok {
			continue
		}
		out.Metrics = append(out.Metrics, metricFromMap(mm))
	}
	return out
}

func metricFromMap(m map[string]any) Metric {
	out := Metric{
		Name:        asString(m["name"]),
		Description: asString(m["description"]),
		Unit:        asString(m["unit"]),
	}
	if g := asMap(m["gauge"]); g != nil {
		out.Type = MetricTypeGauge
		for _, dp := range asSlice(g["data_points"]) {
			out.Gauge = append(out.Gauge, numberDataPointFromMap(asMap(dp)))
		}
		return out
	}
	if s := asMap(m["sum"]); s != nil {
		out.Type = MetricTypeSum
		out.SumTemporality = int32(asInt64(s["aggregation_temporality"]))
		out.SumIsMonotonic = asBool(s["is_monotonic"])
		for _, dp := range asSlice(s["data_points"]) {
			out.Sum = append(out.Sum, numberDataPointFromMap(asMap(dp)))
		}
		return out
	}
	if h := asMap(m["histogram"]); h != nil {
		out.Type = MetricTypeHistogram
		out.HistogramTemporality = int32(asInt64(h["aggregation_temporality"]))
		for _, dp := range asSlice(h["data_points"]) {
			out.Histogram = append(out.Histogram, histogramDataPointFromMap(asMap(dp)))
		}
		return out
	}
	if eh := asMap(m["exponential_histogram"]); eh != nil {
		out.Type = MetricTypeExponentialHistogram
		out.ExpHistogramTemporality = int32(asInt64(eh["aggregation_temporality"]))
		for _, dp := range asSlice(eh["data_points"]) {
			out.ExponentialHistogram = append(out.ExponentialHistogram, expHistogramDataPointFromMap(asMap(dp)))
		}
		return out
	}
	if sm := asMap(m["summary"]); sm != nil {
		out.Type = MetricTypeSummary
		for _, dp := range asSlice(sm["data_points"]) {
			out.Summary = append(out.Summary, summaryDataPointFromMap(asMap(dp)))
		}
		return out
	}
	return out
}

func numberDataPointFromMap(m map[string]any) NumberDataPoint {
	out := NumberDataPoint{
		Attributes:        keyValuesFromMap(asSlice(m["attributes"])),
		StartTimeUnixNano: asUint64(m["start_time_unix_nano"]),
		TimeUnixNano:      asUint64(m["time_unix_nano"]),
		Flags:             asUint32(m["flags"]),
	}
	if v, ok := m["as_int"]; ok && v != nil {
		out.IsInt = true
		out.AsInt = asInt64(v)
	} else if v, ok := m["as_double"]; ok && v != nil {
		out.AsDouble = asFloat64(v)
	}
	return out
}

func histogramDataPointFromMap(m map[string]any) HistogramDataPoint {
	out := HistogramDataPoint{
		Attributes:        keyValuesFromMap(asSlice(m["attributes"])),
		StartTimeUnixNano: asUint64(m["start_time_unix_nano"]),
		TimeUnixNano:      asUint64(m["time_unix_nano"]),
		Count:             asUint64(m["count"]),
		ExplicitBounds:    asFloat64Slice(m["explicit_bounds"]),
		Flags:             asUint32(m["flags"]),
	}
	out.BucketCounts = asUint64Slice(m["bucket_counts"])
	if v, ok := m["sum"]; ok && v != nil {
		f := asFloat64(v)
		out.Sum = &f
	}
	if v, ok := m["min"]; ok && v != nil {
		f := asFloat64(v)
		out.Min = &f
	}
	if v, ok := m["max"]; ok && v != nil {
		f := asFloat64(v)
		out.Max = &f
	}
	return out
}

func expHistogramDataPointFromMap(m map[string]any) ExponentialHistogramDataPoint {
	out := ExponentialHistogramDataPoint{
		Attributes:        keyValuesFromMap(asSlice(m["attributes"])),
		StartTimeUnixNano: asUint64(m["start_time_unix_nano"]),
		TimeUnixNano:      asUint64(m["time_unix_nano"]),
		Count:             asUint64(m["count"]),
		Scale:             int32(asInt64(m["scale"])),
		ZeroCount:         asUint64(m["zero_count"]),
		Flags:             asUint32(m["flags"]),
	}
	if v, ok := m["sum"]; ok && v != nil {
		f := asFloat64(v)
		out.Sum = &f
	}
	if v, ok := m["min"]; ok && v != nil {
		f := asFloat64(v)
		out.Min = &f
	}
	if v, ok := m["max"]; ok && v != nil {
		f := asFloat64(v)
		out.Max = &f
	}
	if p := asMap(m["positive"]); p != nil {
		out.Positive = ExponentialBuckets{Offset: int32(asInt64(p["offset"])), BucketCounts: asUint64Slice(p["bucket_counts"])}
	}
	if n := asMap(m["negative"]); n != nil {
		out.Negative = ExponentialBuckets{Offset: int32(asInt64(n["offset"])), BucketCounts: asUint64Slice(n["bucket_counts"])}
	}
	return out
}

func summaryDataPointFromMap(m map[string]any) SummaryDataPoint {
	out := SummaryDataPoint{
		Attributes:        keyValuesFromMap(asSlice(m["attributes"])),
		StartTimeUnixNano: asUint64(m["start_time_unix_nano"]),
		TimeUnixNano:      asUint64(m["time_unix_nano"]),
		Count:             asUint64(m["count"]),
		Sum:               asFloat64(m["sum"]),
		Flags:             asUint32(m["flags"]),
	}
	for _, qRaw := range asSlice(m["quantile_values"]) {
		q := asMap(qRaw)
		if q == nil {
			continue
		}
		out.QuantileValues = append(out.QuantileValues, ValueAtQuantile{Quantile: asFloat64(q["quantile"]), Value: asFloat64(q["value"])})
	}
	return out
}

func resourceFromMap(m map[string]any) Resource {
	if m == nil {
		return Resource{}
	}
	return Resource{
		Attributes:             keyValuesFromMap(asSlice(m["attributes"])),
		DroppedAttributesCount: asUint32(m["dropped_attributes_count"]),
	}
}

func scopeFromMap(m map[string]any) Scope {
	if m == nil {
		return Scope{}
	}
	return Scope{
		Name:                   asString(m["name"]),
		Version:                asString(m["version"]),
		Attributes:             keyValuesFromMap(asSlice(m["attributes"])),
		DroppedAttributesCount: asUint32(m["dropped_attributes_count"]),
	}
}

func keyValuesFromMap(items []any) []KeyValue {
	if len(items) == 0 {
		return nil
	}
	out := make([]KeyValue, 0, len(items))
	for _, raw := range items {
		kv := asMap(raw)
		if kv == nil {
			continue
		}
		out = append(out, KeyValue{Key: asString(kv["key"]), Value: anyValueFromMap(kv["value"])})
	}
	return out
}

// anyValueFromMap reads an AnyValue whose variant key has already been
// re-cased to PascalCase by the normalizer (StringValue, BoolValue,
// IntValue, DoubleValue, BytesValue, ArrayValue, KvlistValue).
func anyValueFromMap(raw any) AnyValue {
	m := asMap(raw)
	if m == nil {
		return AnyValue{Kind: AnyValueEmpty}
	}
	if v, ok := m["StringValue"]; ok {
		return AnyValue{Kind: AnyValueString, Str: asString(v)}
	}
	if v, ok := m["BoolValue"]; ok {
		return AnyValue{Kind: AnyValueBool, Bool: asBool(v)}
	}
	if v, ok := m["IntValue"]; ok {
		return AnyValue{Kind: AnyValueInt64, Int64: asInt64(v)}
	}
	if v, ok := m["DoubleValue"]; ok {
		return AnyValue{Kind: AnyValueDouble, Double: asFloat64(v)}
	}
	if v, ok := m["BytesValue"]; ok {
		b, _ := asBytes(v)
		return AnyValue{Kind: AnyValueBytes, Bytes: b}
	}
	if v, ok := m["ArrayValue"]; ok {
		av := asMap(v)
		var arr []AnyValue
		for _, e := range asSlice(av["values"]) {
			arr = append(arr, anyValueFromMap(e))
		}
		return AnyValue{Kind: AnyValueArray, Array: arr}
	}
	if v, ok := m["KvlistValue"]; ok {
		kv := asMap(v)
		return AnyValue{Kind: AnyValueKvList, KvList: keyValuesFromMap(asSlice(kv["values"]))}
	}
	return AnyValue{Kind: AnyValueEmpty}
}
