package convert

import (
	"otlp2parquet/internal/columnar"
	"otlp2parquet/internal/otlp"
)

// Traces converts a decoded OTLP traces request into one Group per
// resource-spans entry.
func Traces(req *otlp.TracesRequest) ([]Group, error) {
	if req == nil {
		return nil, nil
	}
	groups := make([]Group, 0, len(req.ResourceSpans))
	for _, rs := range req.ResourceSpans {
		groups = append(groups, convertResourceSpans(rs))
	}
	return groups, nil
}

func convertResourceSpans(rs otlp.ResourceSpans) Group {
	rowCount := 0
	for _, ss := range rs.ScopeSpans {
		rowCount += len(ss.Spans)
	}

	batch := columnar.NewRecordBatch(columnar.TracesSchema, rowCount)
	extracted := extractResourceAttrs(rs.Resource.Attributes)
	resourceAttrsJSON := attributesToJSON(extracted.remaining)

	var minTS minTracker

	for _, ss := range rs.ScopeSpans {
		scopeAttrsJSON := attributesToJSON(ss.Scope.Attributes)
		for _, sp := range ss.Spans {
			appendSpanRow(batch, rs, ss, sp, extracted, resourceAttrsJSON, scopeAttrsJSON)
			ts := timestampMicros(sp.StartTimeUnixNano)
			minTS.observe(ts)
		}
	}

	return Group{
		Metadata: Metadata{
			ServiceName:        extracted.resolvedServiceName(),
			MinTimestampMicros: minTS.result(),
			RecordCount:        rowCount,
		},
		Batches: []*columnar.RecordBatch{batch},
	}
}

func appendSpanRow(
	batch *columnar.RecordBatch,
	rs otlp.ResourceSpans,
	ss otlp.ScopeSpans,
	sp otlp.Span,
	extracted extractedResourceAttrs,
	resourceAttrsJSON, scopeAttrsJSON string,
) {
	startTS := timestampMicros(sp.StartTimeUnixNano)
	endTS := timestampMicros(sp.EndTimeUnixNano)

	batch.Column("Timestamp").AppendTimestampMicros(startTS)
	batch.Column("TraceId").AppendBinary(fixedLengthID(sp.TraceID, 16))
	batch.Column("SpanId").AppendBinary(fixedLengthID(sp.SpanID, 8))
	batch.Column("ServiceName").AppendUtf8(extracted.resolvedServiceName())

	if extracted.hasNamespace {
		batch.Column("ServiceNamespace").AppendUtf8(extracted.serviceNamespace)
	} else {
		batch.Column("ServiceNamespace").AppendNull(columnar.TypeUtf8)
	}
	if extracted.hasInstanceID {
		batch.Column("ServiceInstanceId").AppendUtf8(extracted.serviceInstanceID)
	} else {
		batch.Column("ServiceInstanceId").AppendNull(columnar.TypeUtf8)
	}

	batch.Column("ResourceAttributes").AppendUtf8(resourceAttrsJSON)
	appendNullableUtf8(batch.Column("ResourceSchemaUrl"), rs.SchemaURL)

	batch.Column("ScopeName").AppendUtf8(ss.Scope.Name)
	appendNullableUtf8(batch.Column("ScopeVersion"), ss.Scope.Version)
	batch.Column("ScopeAttributes").AppendUtf8(scopeAttrsJSON)
	appendNullableUtf8(batch.Column("ScopeSchemaUrl"), ss.SchemaURL)

	if len(sp.ParentSpanID) == 0 {
		batch.Column("ParentSpanId").AppendNull(columnar.TypeBinary)
	} else {
		batch.Column("ParentSpanId").AppendBinary(fixedLengthID(sp.ParentSpanID, 8))
	}
	appendNullableUtf8(batch.Column("TraceState"), sp.TraceState)

	batch.Column("SpanName").AppendUtf8(sp.Name)
	batch.Column("SpanKind").AppendInt32(sp.Kind)
	batch.Column("StartTimestamp").AppendTimestampMicros(startTS)
	batch.Column("EndTimestamp").AppendTimestampMicros(endTS)
	batch.Column("Attributes").AppendUtf8(attributesToJSON(sp.Attributes))
	batch.Column("DroppedAttributesCount").AppendUint32(sp.DroppedAttributesCount)

	batch.Column("StatusCode").AppendInt32(sp.Status.Code)
	appendNullableUtf8(batch.Column("StatusMessage"), sp.Status.Message)

	batch.Column("Events").AppendUtf8(eventsToJSON(sp.Events))
	batch.Column("DroppedEventsCount").AppendUint32(sp.DroppedEventsCount)
	batch.Column("Links").AppendUtf8(linksToJSON(sp.Links))
	batch.Column("DroppedLinksCount").AppendUint32(sp.DroppedLinksCount)

	batch.CommitRow()
}
