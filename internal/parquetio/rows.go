package parquetio

import "otlp2parquet/internal/columnar"

// rowAt builds the generic row map parquet-go's writer expects for row i
// of batch, keyed by column name. Null values are omitted entirely
// (parquet-go treats a missing map key on an optional field as null)
// rather than written as a Go nil, matching the library's dynamic-schema
// convention.
func rowAt(batch *columnar.RecordBatch, i int) map[string]any {
	row := make(map[string]any, len(batch.Schema.Fields))
	for _, f := range batch.Schema.Fields {
		col := batch.Column(f.Name)
		if f.Nullable && !col.IsValid(i) {
			continue
		}
		row[f.Name] = columnValue(col, f.Type, i)
	}
	return row
}

func columnValue(col *columnar.Column, typ columnar.FieldType, i int) any {
	switch typ {
	case columnar.TypeTimestampMicros:
		return col.TimestampMicros[i]
	case columnar.TypeInt32:
		return col.Int32Values[i]
	case columnar.TypeInt64:
		return col.Int64Values[i]
	case columnar.TypeUint32:
		return col.Uint32Values[i]
	case columnar.TypeUint64:
		return col.Uint64Values[i]
	case columnar.TypeFloat64:
		return col.Float64Values[i]
	case columnar.TypeUtf8:
		return col.Utf8Values[i]
	case columnar.TypeBinary:
		return col.BinaryValues[i]
	case columnar.TypeBool:
		return col.BoolValues[i]
	case columnar.TypeListInt64:
		return col.ListI64Values[i]
	case columnar.TypeListFloat64:
		return col.ListF64Values[i]
	default:
		return nil
	}
}
