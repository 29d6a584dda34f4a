// Package parquetio encodes columnar.RecordBatch values into Apache
// Parquet files, computes their Blake3-256 content hash in the same pass,
// and generates the deterministic, content-addressed object paths they
// are written under.
package parquetio

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"otlp2parquet/internal/columnar"
)

// buildParquetSchema translates a frozen columnar.Schema into a
// parquet-go schema, annotating every leaf with its stable field id
// (spec §4.3/§9: "every schema field carries its id as column metadata").
func buildParquetSchema(schema *columnar.Schema) *parquet.Schema {
	group := make(parquet.Group, len(schema.Fields))
	for _, f := range schema.Fields {
		group[f.Name] = parquet.FieldID(f.FieldID, leafNode(f))
	}
	return parquet.NewSchema(schema.Name, group)
}

func leafNode(f columnar.Field) parquet.Node {
	var node parquet.Node
	switch f.Type {
	case columnar.TypeTimestampMicros:
		node = parquet.Timestamp(parquet.Microsecond)
	case columnar.TypeInt32:
		node = parquet.Int(32)
	case columnar.TypeInt64:
		node = parquet.Int(64)
	case columnar.TypeUint32:
		node = parquet.Uint(32)
	case columnar.TypeUint64:
		node = parquet.Uint(64)
	case columnar.TypeFloat64:
		node = parquet.Leaf(parquet.DoubleType)
	case columnar.TypeUtf8:
		node = parquet.String()
	case columnar.TypeBinary:
		node = parquet.Leaf(parquet.ByteArrayType)
	case columnar.TypeBool:
		node = parquet.Leaf(parquet.BooleanType)
	case columnar.TypeListInt64:
		node = parquet.List(parquet.Int(64))
	case columnar.TypeListFloat64:
		node = parquet.List(parquet.Leaf(parquet.DoubleType))
	default:
		panic(fmt.Sprintf("parquetio: unhandled field type %v for %s", f.Type, f.Name))
	}
	if f.Nullable {
		node = parquet.Optional(node)
	}
	return node
}
