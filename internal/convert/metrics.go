package convert

import (
	"otlp2parquet/internal/columnar"
	"otlp2parquet/internal/otlp"
)

// Metrics converts a decoded OTLP metrics request into one Group per
// resource-metrics entry. Each group holds up to five batches — one per
// metric type (gauge/sum/histogram/exponential_histogram/summary)
// actually present among that resource's metrics.
func Metrics(req *otlp.MetricsRequest) ([]Group, error) {
	if req == nil {
		return nil, nil
	}
	groups := make([]Group, 0, len(req.ResourceMetrics))
	for _, rm := range req.ResourceMetrics {
		groups = append(groups, convertResourceMetrics(rm))
	}
	return groups, nil
}

type metricBatchBuilder struct {
	batch *columnar.RecordBatch
	minTS minTracker
	rows  int
}

func convertResourceMetrics(rm otlp.ResourceMetrics) Group {
	extracted := extractResourceAttrs(rm.Resource.Attributes)
	resourceAttrsJSON := attributesToJSON(extracted.remaining)
	serviceName := extracted.resolvedServiceName()

	builders := map[otlp.MetricType]*metricBatchBuilder{}
	builderFor := func(t otlp.MetricType, schema *columnar.Schema) *metricBatchBuilder {
		b, ok := builders[t]
		if !ok {
			b = &metricBatchBuilder{batch: columnar.NewRecordBatch(schema, 16)}
			builders[t] = b
		}
		return b
	}

	var overallMinTS minTracker
	totalRows := 0

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Type {
			case otlp.MetricTypeGauge:
				b := builderFor(m.Type, columnar.GaugeSchema)
				for _, dp := range m.Gauge {
					appendMetricBase(b.batch, serviceName, resourceAttrsJSON, sm.Scope, m, dp.Attributes, dp.TimeUnixNano)
					b.batch.Column("Value").AppendFloat64(numberValue(dp))
					b.batch.CommitRow()
					ts := timestampMicros(dp.TimeUnixNano)
					b.minTS.observe(ts)
					overallMinTS.observe(ts)
					b.rows++
					totalRows++
				}
			case otlp.MetricTypeSum:
				b := builderFor(m.Type, columnar.SumSchema)
				for _, dp := range m.Sum {
					appendMetricBase(b.batch, serviceName, resourceAttrsJSON, sm.Scope, m, dp.Attributes, dp.TimeUnixNano)
					b.batch.Column("Value").AppendFloat64(numberValue(dp))
					b.batch.Column("AggregationTemporality").AppendInt32(m.SumTemporality)
					b.batch.Column("IsMonotonic").AppendBool(m.SumIsMonotonic)
					b.batch.CommitRow()
					ts := timestampMicros(dp.TimeUnixNano)
					b.minTS.observe(ts)
					overallMinTS.observe(ts)
					b.rows++
					totalRows++
				}
			case otlp.MetricTypeHistogram:
				b := builderFor(m.Type, columnar.HistogramSchema)
				for _, dp := range m.Histogram {
					appendMetricBase(b.batch, serviceName, resourceAttrsJSON, sm.Scope, m, dp.Attributes, dp.TimeUnixNano)
					b.batch.Column("Count").AppendInt64(int64(dp.Count))
					b.batch.Column("Sum").AppendFloat64(derefFloat(dp.Sum))
					b.batch.Column("BucketCounts").AppendListInt64(uint64sToInt64s(dp.BucketCounts))
					b.batch.Column("ExplicitBounds").AppendListFloat64(dp.ExplicitBounds)
					appendNullableFloat(b.batch.Column("Min"), dp.Min)
					appendNullableFloat(b.batch.Column("Max"), dp.Max)
					b.batch.CommitRow()
					ts := timestampMicros(dp.TimeUnixNano)
					b.minTS.observe(ts)
					overallMinTS.observe(ts)
					b.rows++
					totalRows++
				}
			case otlp.MetricTypeExponentialHistogram:
				b := builderFor(m.Type, columnar.ExponentialHistogramSchema)
				for _, dp := range m.ExponentialHistogram {
					appendMetricBase(b.batch, serviceName, resourceAttrsJSON, sm.Scope, m, dp.Attributes, dp.TimeUnixNano)
					b.batch.Column("Count").AppendInt64(int64(dp.Count))
					b.batch.Column("Sum").AppendFloat64(derefFloat(dp.Sum))
					b.batch.Column("Scale").AppendInt32(dp.Scale)
					b.batch.Column("ZeroCount").AppendInt64(int64(dp.ZeroCount))
					b.batch.Column("PositiveOffset").AppendInt32(dp.Positive.Offset)
					b.batch.Column("PositiveBucketCounts").AppendListInt64(uint64sToInt64s(dp.Positive.BucketCounts))
					b.batch.Column("NegativeOffset").AppendInt32(dp.Negative.Offset)
					b.batch.Column("NegativeBucketCounts").AppendListInt64(uint64sToInt64s(dp.Negative.BucketCounts))
					appendNullableFloat(b.batch.Column("Min"), dp.Min)
					appendNullableFloat(b.batch.Column("Max"), dp.Max)
					b.batch.CommitRow()
					ts := timestampMicros(dp.TimeUnixNano)
					b.minTS.observe(ts)
					overallMinTS.observe(ts)
					b.rows++
					totalRows++
				}
			case otlp.MetricTypeSummary:
				b := builderFor(m.Type, columnar.SummarySchema)
				for _, dp := range m.Summary {
					appendMetricBase(b.batch, serviceName, resourceAttrsJSON, sm.Scope, m, dp.Attributes, dp.TimeUnixNano)
					b.batch.Column("Count").AppendInt64(int64(dp.Count))
					b.batch.Column("Sum").AppendFloat64(dp.Sum)
					values := make([]float64, len(dp.QuantileValues))
					quantiles := make([]float64, len(dp.QuantileValues))
					for i, q := range dp.QuantileValues {
						quantiles[i] = q.Quantile
						values[i] = q.Value
					}
					b.batch.Column("QuantileValues").AppendListFloat64(values)
					b.batch.Column("QuantileQuantiles").AppendListFloat64(quantiles)
					b.batch.CommitRow()
					ts := timestampMicros(dp.TimeUnixNano)
					b.minTS.observe(ts)
					overallMinTS.observe(ts)
					b.rows++
					totalRows++
				}
			}
		}
	}

	batches := make([]*columnar.RecordBatch, 0, len(builders))
	for _, t := range []otlp.MetricType{
		otlp.MetricTypeGauge, otlp.MetricTypeSum, otlp.MetricTypeHistogram,
		otlp.MetricTypeExponentialHistogram, otlp.MetricTypeSummary,
	} {
		if b, ok := builders[t]; ok {
			batches = append(batches, b.batch)
		}
	}

	return Group{
		Metadata: Metadata{
			ServiceName:        serviceName,
			MinTimestampMicros: overallMinTS.result(),
			RecordCount:        totalRows,
		},
		Batches: batches,
	}
}

func appendMetricBase(
	batch *columnar.RecordBatch,
	serviceName, resourceAttrsJSON string,
	scope otlp.Scope,
	m otlp.Metric,
	pointAttrs []otlp.KeyValue,
	timeUnixNano uint64,
) {
	batch.Column("Timestamp").AppendTimestampMicros(timestampMicros(timeUnixNano))
	batch.Column("ServiceName").AppendUtf8(serviceName)
	batch.Column("ResourceAttributes").AppendUtf8(resourceAttrsJSON)
	appendNullableUtf8(batch.Column("ScopeName"), scope.Name)
	appendNullableUtf8(batch.Column("ScopeVersion"), scope.Version)
	batch.Column("MetricName").AppendUtf8(m.Name)
	appendNullableUtf8(batch.Column("MetricDescription"), m.Description)
	appendNullableUtf8(batch.Column("MetricUnit"), m.Unit)
	batch.Column("Attributes").AppendUtf8(attributesToJSON(pointAttrs))
}

func numberValue(dp otlp.NumberDataPoint) float64 {
	if dp.IsInt {
		return float64(dp.AsInt)
	}
	return dp.AsDouble
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func appendNullableFloat(col *columnar.Column, v *float64) {
	if v == nil {
		col.AppendNull(columnar.TypeFloat64)
		return
	}
	col.AppendFloat64(*v)
}

func uint64sToInt64s(in []uint64) []int64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
