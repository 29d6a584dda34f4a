package parquetio

import (
	"otlp2parquet/internal/batch"
	"otlp2parquet/internal/columnar"
)

// EncodeCompleted splits a flushed buffer's batches by schema name — a
// Completed buffer can hold batches of several distinct schemas at once
// (e.g. Gauge and Sum metrics accumulated under the same key) — and
// encodes one Parquet file per distinct schema.
func EncodeCompleted(c batch.Completed) ([]*Encoded, error) {
	order := make([]string, 0, len(c.Batches))
	bySchema := make(map[string][]*columnar.RecordBatch)
	for _, rb := range c.Batches {
		name := rb.Schema.Name
		if _, ok := bySchema[name]; !ok {
			order = append(order, name)
		}
		bySchema[name] = append(bySchema[name], rb)
	}

	encoded := make([]*Encoded, 0, len(order))
	for _, name := range order {
		group := bySchema[name]
		enc, err := Encode(group[0].Schema, group)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, enc)
	}
	return encoded, nil
}
