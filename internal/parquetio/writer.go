package parquetio

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/parquet-go/parquet-go"
	"lukechampine.com/blake3"

	"otlp2parquet/internal/columnar"
)

const (
	defaultRowGroupSize = 32 * 1024
	dataPageSizeLimit   = 256 * 1024

	// writeBatchSize bounds how many rows accumulate in a Go slice before
	// a single call to the underlying writer (spec §4.5: "Write batch
	// size: 32 Ki rows"), rather than the previous one-row-per-call
	// pattern.
	writeBatchSize = 32 * 1024
)

var (
	rowGroupSizeOnce sync.Once
	rowGroupSize     int64 = defaultRowGroupSize
	rowGroupSizeSet  atomic.Bool
)

// SetRowGroupSize configures the max row-group row count process-wide.
// It may only be set once and ignores a zero value, matching the
// original implementation's OnceLock-guarded configuration knob (spec
// §4.5: "configurable at process start; not mutable after first writer
// creation").
func SetRowGroupSize(rows int) {
	if rows <= 0 || rowGroupSizeSet.Load() {
		return
	}
	rowGroupSizeOnce.Do(func() {
		rowGroupSize = int64(rows)
		rowGroupSizeSet.Store(true)
	})
}

// RowGroupSize returns the effective max row-group size, locking in the
// current value against any later SetRowGroupSize call (the first writer
// creation freezes it, per spec).
func RowGroupSize() int64 {
	rowGroupSizeSet.Store(true)
	return rowGroupSize
}

// fileMetadataOptions flattens a columnar.Schema's Metadata map into
// parquet-go's repeated KeyValueMetadata option form.
func fileMetadataOptions(md map[string]string) []parquet.WriterOption {
	opts := make([]parquet.WriterOption, 0, len(md))
	for k, v := range md {
		opts = append(opts, parquet.KeyValueMetadata(k, v))
	}
	return opts
}

// HashingBuffer accumulates encoded bytes and their Blake3-256 hash in a
// single pass, mirroring the original Rust encoder's HashingBuffer (spec
// §4.5: "computed with a hashing sink that also accumulates the buffer").
type HashingBuffer struct {
	buf    bytes.Buffer
	hasher *blake3.Hasher
}

// NewHashingBuffer returns an empty HashingBuffer ready to be used as an
// io.Writer.
func NewHashingBuffer() *HashingBuffer {
	return &HashingBuffer{hasher: blake3.New(256/8, nil)}
}

func (h *HashingBuffer) Write(p []byte) (int, error) {
	h.hasher.Write(p)
	return h.buf.Write(p)
}

// Finish returns the accumulated bytes and their Blake3-256 digest.
func (h *HashingBuffer) Finish() ([]byte, [32]byte) {
	var sum [32]byte
	copy(sum[:], h.hasher.Sum(nil))
	return h.buf.Bytes(), sum
}

// Encoded is one Parquet file's encoded bytes alongside its content hash
// and the schema it was written against.
type Encoded struct {
	Schema *columnar.Schema
	Bytes  []byte
	Hash   [32]byte
	Rows   int
}

// Encode writes every batch sharing a schema into a single Parquet file,
// one row group per input RecordBatch (so accumulator-level flush
// boundaries are visible as Parquet row-group boundaries), and returns
// the encoded bytes plus their content hash.
func Encode(schema *columnar.Schema, batches []*columnar.RecordBatch) (*Encoded, error) {
	parquetSchema := buildParquetSchema(schema)

	hashBuf := NewHashingBuffer()
	opts := []parquet.WriterOption{
		parquet.Compression(compressionCodec()),
		parquet.DataPageStatistics(true),
		parquet.PageBufferSize(dataPageSizeLimit),
		parquet.MaxRowsPerRowGroup(RowGroupSize()),
	}
	opts = append(opts, fileMetadataOptions(schema.Metadata)...)

	writer := parquet.NewGenericWriter[map[string]any](hashBuf, parquetSchema, opts...)

	totalRows := 0
	rowBuf := make([]map[string]any, 0, writeBatchSize)
	for _, batch := range batches {
		rows := batch.Rows()
		for i := 0; i < rows; i++ {
			rowBuf = append(rowBuf, rowAt(batch, i))
			if len(rowBuf) == writeBatchSize {
				if _, err := writer.Write(rowBuf); err != nil {
					return nil, fmt.Errorf("parquetio: write rows: %w", err)
				}
				rowBuf = rowBuf[:0]
			}
		}
		if len(rowBuf) > 0 {
			if _, err := writer.Write(rowBuf); err != nil {
				return nil, fmt.Errorf("parquetio: write rows: %w", err)
			}
			rowBuf = rowBuf[:0]
		}
		totalRows += rows
		if err := writer.Flush(); err != nil {
			return nil, fmt.Errorf("parquetio: flush row group: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("parquetio: close writer: %w", err)
	}

	data, hash := hashBuf.Finish()
	return &Encoded{Schema: schema, Bytes: data, Hash: hash, Rows: totalRows}, nil
}
