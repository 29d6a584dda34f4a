package convert

import (
	"otlp2parquet/internal/columnar"
	"otlp2parquet/internal/otlp"
)

// Logs converts a decoded OTLP logs request into one Group per
// resource-logs entry.
func Logs(req *otlp.LogsRequest) ([]Group, error) {
	if req == nil {
		return nil, nil
	}
	groups := make([]Group, 0, len(req.ResourceLogs))
	for _, rl := range req.ResourceLogs {
		g, err := convertResourceLogs(rl)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func convertResourceLogs(rl otlp.ResourceLogs) (Group, error) {
	rowCount := 0
	for _, sl := range rl.ScopeLogs {
		rowCount += len(sl.LogRecords)
	}

	batch := columnar.NewRecordBatch(columnar.LogsSchema, rowCount)
	extracted := extractResourceAttrs(rl.Resource.Attributes)
	resourceAttrsJSON := attributesToJSON(extracted.remaining)

	var minTS minTracker

	for _, sl := range rl.ScopeLogs {
		scopeAttrsJSON := attributesToJSON(sl.Scope.Attributes)
		for _, rec := range sl.LogRecords {
			appendLogRow(batch, rl, sl, rec, extracted, resourceAttrsJSON, scopeAttrsJSON)
			ts := timestampMicros(rec.TimeUnixNano)
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
	}, nil
}

func appendLogRow(
	batch *columnar.RecordBatch,
	rl otlp.ResourceLogs,
	sl otlp.ScopeLogs,
	rec otlp.LogRecord,
	extracted extractedResourceAttrs,
	resourceAttrsJSON, scopeAttrsJSON string,
) {
	ts := timestampMicros(rec.TimeUnixNano)
	observedTS := timestampMicros(rec.ObservedTimeUnixNano)

	batch.Column("Timestamp").AppendTimestampMicros(ts)
	batch.Column("TraceId").AppendBinary(fixedLengthID(rec.TraceID, 16))
	batch.Column("SpanId").AppendBinary(fixedLengthID(rec.SpanID, 8))
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
	appendNullableUtf8(batch.Column("ResourceSchemaUrl"), rl.SchemaURL)

	batch.Column("ScopeName").AppendUtf8(sl.Scope.Name)
	appendNullableUtf8(batch.Column("ScopeVersion"), sl.Scope.Version)
	batch.Column("ScopeAttributes").AppendUtf8(scopeAttrsJSON)
	appendNullableUtf8(batch.Column("ScopeSchemaUrl"), sl.SchemaURL)

	batch.Column("TimestampTime").AppendTimestampMicros(ts)
	batch.Column("ObservedTimestamp").AppendTimestampMicros(observedTS)
	batch.Column("TraceFlags").AppendUint32(rec.Flags)
	batch.Column("SeverityText").AppendUtf8(rec.SeverityText)
	batch.Column("SeverityNumber").AppendInt32(rec.SeverityNumber)

	if rec.Body != nil {
		batch.Column("Body").AppendUtf8(bodyToJSON(rec.Body))
	} else {
		batch.Column("Body").AppendNull(columnar.TypeUtf8)
	}

	batch.Column("LogAttributes").AppendUtf8(attributesToJSON(rec.Attributes))

	batch.CommitRow()
}

// appendNullableUtf8 appends v as a value when non-empty, else a null —
// used for the several optional-string columns (SchemaUrl, ScopeVersion)
// that OTLP represents as an absent/empty string rather than a tri-state.
func appendNullableUtf8(col *columnar.Column, v string) {
	if v == "" {
		col.AppendNull(columnar.TypeUtf8)
		return
	}
	col.AppendUtf8(v)
}
