package parquetio

import (
	"bytes"
	"testing"

	"otlp2parquet/internal/batch"
	"otlp2parquet/internal/columnar"
)

func sampleLogBatch(rows int) *columnar.RecordBatch {
	b := columnar.NewRecordBatch(columnar.LogsSchema, rows)
	for i := 0; i < rows; i++ {
		for _, f := range columnar.LogsSchema.Fields {
			col := b.Column(f.Name)
			switch f.Type {
			case columnar.TypeTimestampMicros:
				col.AppendTimestampMicros(int64(1_700_000_000_000_000 + i))
			case columnar.TypeInt32:
				col.AppendInt32(9)
			case columnar.TypeUint32:
				col.AppendUint32(0)
			case columnar.TypeUtf8:
				if f.Nullable {
					col.AppendNull(columnar.TypeUtf8)
				} else {
					col.AppendUtf8("x")
				}
			case columnar.TypeBinary:
				col.AppendBinary(make([]byte, 16))
			default:
				col.AppendNull(f.Type)
			}
		}
		b.CommitRow()
	}
	return b
}

func TestEncodeProducesNonEmptyBytesAndDeterministicHash(t *testing.T) {
	batchA := sampleLogBatch(3)
	batchB := sampleLogBatch(3)

	encA, err := Encode(columnar.LogsSchema, []*columnar.RecordBatch{batchA})
	if err != nil {
		t.Fatalf("Encode A: %v", err)
	}
	encB, err := Encode(columnar.LogsSchema, []*columnar.RecordBatch{batchB})
	if err != nil {
		t.Fatalf("Encode B: %v", err)
	}

	if len(encA.Bytes) == 0 {
		t.Fatal("encoded bytes are empty")
	}
	if encA.Hash != encB.Hash {
		t.Errorf("hash not deterministic: %x != %x", encA.Hash, encB.Hash)
	}
	if !bytes.Equal(encA.Bytes, encB.Bytes) {
		t.Error("encoding identical input twice produced different bytes")
	}
	if encA.Rows != 3 {
		t.Errorf("Rows = %d, want 3", encA.Rows)
	}
}

func TestEncodeDifferentRowCountsProduceDifferentHashes(t *testing.T) {
	encA, err := Encode(columnar.LogsSchema, []*columnar.RecordBatch{sampleLogBatch(2)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	encB, err := Encode(columnar.LogsSchema, []*columnar.RecordBatch{sampleLogBatch(5)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if encA.Hash == encB.Hash {
		t.Error("expected different row counts to hash differently")
	}
}

func TestEncodeCompletedSplitsMixedSchemas(t *testing.T) {
	gaugeBatch := columnar.NewRecordBatch(columnar.GaugeSchema, 1)
	for _, f := range columnar.GaugeSchema.Fields {
		gaugeBatch.Column(f.Name).AppendNull(f.Type)
	}
	gaugeBatch.CommitRow()

	sumBatch := columnar.NewRecordBatch(columnar.SumSchema, 1)
	for _, f := range columnar.SumSchema.Fields {
		sumBatch.Column(f.Name).AppendNull(f.Type)
	}
	sumBatch.CommitRow()

	completed := batch.Completed{
		ServiceName: "svc",
		RecordCount: 2,
		Batches:     []*columnar.RecordBatch{gaugeBatch, sumBatch},
	}

	encoded, err := EncodeCompleted(completed)
	if err != nil {
		t.Fatalf("EncodeCompleted: %v", err)
	}
	if len(encoded) != 2 {
		t.Fatalf("expected 2 encoded files (gauge, sum), got %d", len(encoded))
	}
	if encoded[0].Schema.Name != "metrics.gauge" || encoded[1].Schema.Name != "metrics.sum" {
		t.Errorf("unexpected schema order: %s, %s", encoded[0].Schema.Name, encoded[1].Schema.Name)
	}
}
