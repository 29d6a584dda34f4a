package convert

import (
	"testing"

	"otlp2parquet/internal/otlp"
)

func gaugeMetric(value float64, ts uint64) otlp.Metric {
	return otlp.Metric{
		Name: "cpu.utilization",
		Type: otlp.MetricTypeGauge,
		Gauge: []otlp.NumberDataPoint{
			{TimeUnixNano: ts, IsInt: false, AsDouble: value},
		},
	}
}

func sumMetric(value int64, ts uint64) otlp.Metric {
	return otlp.Metric{
		Name:           "requests.count",
		Type:           otlp.MetricTypeSum,
		SumTemporality: 2,
		SumIsMonotonic: true,
		Sum: []otlp.NumberDataPoint{
			{TimeUnixNano: ts, IsInt: true, AsInt: value},
		},
	}
}

func TestConvertMixedMetricTypesProduceSeparateBatches(t *testing.T) {
	req := &otlp.MetricsRequest{
		ResourceMetrics: []otlp.ResourceMetrics{
			{
				Resource: otlp.Resource{Attributes: []otlp.KeyValue{
					{Key: "service.name", Value: otlp.AnyValue{Kind: otlp.AnyValueString, Str: "svc-C"}},
				}},
				ScopeMetrics: []otlp.ScopeMetrics{
					{
						Metrics: []otlp.Metric{
							gaugeMetric(42.5, 1_700_000_000_000_000_000),
							sumMetric(7, 1_700_000_000_100_000_000),
						},
					},
				},
			},
		},
	}

	groups, err := Metrics(req)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Metadata.ServiceName != "svc-C" {
		t.Errorf("ServiceName = %q, want svc-C", g.Metadata.ServiceName)
	}
	if len(g.Batches) != 2 {
		t.Fatalf("expected 2 batches (gauge + sum), got %d", len(g.Batches))
	}
	if g.Metadata.RecordCount != 2 {
		t.Errorf("RecordCount = %d, want 2", g.Metadata.RecordCount)
	}

	gaugeBatch := g.Batches[0]
	if gaugeBatch.Schema.Name != "metrics.gauge" {
		t.Fatalf("first batch schema = %q, want metrics.gauge", gaugeBatch.Schema.Name)
	}
	if got := gaugeBatch.Column("Value").Float64Values[0]; got != 42.5 {
		t.Errorf("gauge Value = %v, want 42.5", got)
	}

	sumBatch := g.Batches[1]
	if sumBatch.Schema.Name != "metrics.sum" {
		t.Fatalf("second batch schema = %q, want metrics.sum", sumBatch.Schema.Name)
	}
	if got := sumBatch.Column("Value").Float64Values[0]; got != 7 {
		t.Errorf("sum Value = %v, want 7", got)
	}
	if !sumBatch.Column("IsMonotonic").BoolValues[0] {
		t.Errorf("IsMonotonic = false, want true")
	}
}

func TestConvertHistogramMetric(t *testing.T) {
	min, max := 1.0, 99.0
	req := &otlp.MetricsRequest{
		ResourceMetrics: []otlp.ResourceMetrics{
			{
				ScopeMetrics: []otlp.ScopeMetrics{
					{
						Metrics: []otlp.Metric{
							{
								Name: "latency",
								Type: otlp.MetricTypeHistogram,
								Histogram: []otlp.HistogramDataPoint{
									{
										TimeUnixNano:   1_700_000_000_000_000_000,
										Count:          10,
										BucketCounts:   []uint64{1, 2, 3, 4},
										ExplicitBounds: []float64{10, 50, 100},
										Min:            &min,
										Max:            &max,
									},
								},
							},
						},
					},
				},
			},
		},
	}

	groups, err := Metrics(req)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	batch := groups[0].Batches[0]
	if batch.Schema.Name != "metrics.histogram" {
		t.Fatalf("schema = %q, want metrics.histogram", batch.Schema.Name)
	}
	if got := batch.Column("Count").Int64Values[0]; got != 10 {
		t.Errorf("Count = %d, want 10", got)
	}
	if got := batch.Column("BucketCounts").ListI64Values[0]; len(got) != 4 {
		t.Errorf("BucketCounts len = %d, want 4", len(got))
	}
	if got := batch.Column("Min").Float64Values[0]; got != 1.0 {
		t.Errorf("Min = %v, want 1.0", got)
	}
}

func TestConvertMetricsEmptyResourceProducesNoBatches(t *testing.T) {
	req := &otlp.MetricsRequest{
		ResourceMetrics: []otlp.ResourceMetrics{{}},
	}
	groups, err := Metrics(req)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if len(groups[0].Batches) != 0 {
		t.Errorf("expected 0 batches for an empty resource, got %d", len(groups[0].Batches))
	}
	if groups[0].Metadata.RecordCount != 0 {
		t.Errorf("RecordCount = %d, want 0", groups[0].Metadata.RecordCount)
	}
}
