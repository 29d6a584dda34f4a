package columnar

// RecordBatch is an immutable (once built), column-oriented row set bound
// to a fixed Schema — the unit of conversion output and of Parquet
// row-group writes. Columns share no backing storage across batches,
// matching the "owning" (not reference-counted-shared) model: the
// accumulator merges batches by appending whole RecordBatch values to a
// buffer rather than by copying column data, so no aliasing hazard exists
// once a batch is built.
type RecordBatch struct {
	Schema  *Schema
	Columns []*Column
	rows    int
}

// NewRecordBatch allocates an empty, column-aligned batch for schema with
// each column pre-sized to capacityHint rows.
func NewRecordBatch(schema *Schema, capacityHint int) *RecordBatch {
	cols := make([]*Column, len(schema.Fields))
	for i, f := range schema.Fields {
		cols[i] = NewColumn(f.Type, f.Nullable, capacityHint)
	}
	return &RecordBatch{Schema: schema, Columns: cols}
}

// Rows returns the number of rows committed via CommitRow.
func (b *RecordBatch) Rows() int {
	return b.rows
}

// Column returns the column for the named field, or nil if absent.
func (b *RecordBatch) Column(name string) *Column {
	idx := b.Schema.FieldIndex(name)
	if idx < 0 {
		return nil
	}
	return b.Columns[idx]
}

// CommitRow increments the row counter after a caller has appended
// exactly one value (or null) to every column in field order. It does
// not itself append data — callers build a row by calling the typed
// Append* methods on each Column in schema order, then call CommitRow to
// mark the row complete.
func (b *RecordBatch) CommitRow() {
	b.rows++
}

// EstimatedBytes gives a cheap approximation of the batch's in-memory
// footprint, used by the batch accumulator for its byte-based flush
// threshold. It intentionally over-counts rather than walking every
// string/slice precisely — exactness isn't required for a soft limit.
func (b *RecordBatch) EstimatedBytes() int {
	const perScalar = 8
	const perStringOverhead = 16
	total := 0
	for _, col := range b.Columns {
		n := col.Len()
		total += n * perScalar
		for _, s := range col.Utf8Values {
			total += len(s) + perStringOverhead
		}
		for _, bs := range col.BinaryValues {
			total += len(bs)
		}
		for _, l := range col.ListI64Values {
			total += len(l) * 8
		}
		for _, l := range col.ListF64Values {
			total += len(l) * 8
		}
	}
	return total
}
