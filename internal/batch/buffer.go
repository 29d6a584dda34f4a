package batch

import (
	"time"

	"otlp2parquet/internal/columnar"
	"otlp2parquet/internal/convert"
)

// Config holds the accumulator's flush thresholds (spec §4.4).
type Config struct {
	MaxRows  int
	MaxBytes int
	MaxAge   time.Duration
	Enabled  bool
}

// DefaultConfig matches the specification's stated defaults.
func DefaultConfig() Config {
	return Config{
		MaxRows:  200_000,
		MaxBytes: 128 * 1024 * 1024,
		MaxAge:   10 * time.Second,
		Enabled:  true,
	}
}

// buffer accumulates converted batches for one Key until flushed. It is
// never accessed outside the Accumulator's mutex.
type buffer struct {
	key          Key
	serviceName  string
	groups       []convert.Group
	totalRows    int
	totalBytes   int
	createdAt    time.Time
	firstTSMicro int64
}

func newBuffer(key Key, g convert.Group, now time.Time) *buffer {
	b := &buffer{
		key:          key,
		serviceName:  g.Metadata.ServiceName,
		createdAt:    now,
		firstTSMicro: g.Metadata.MinTimestampMicros,
	}
	b.add(g)
	return b
}

func (b *buffer) add(g convert.Group) {
	b.groups = append(b.groups, g)
	b.totalRows += g.Metadata.RecordCount
	for _, rb := range g.Batches {
		b.totalBytes += rb.EstimatedBytes()
	}
	if g.Metadata.MinTimestampMicros != 0 && (b.firstTSMicro == 0 || g.Metadata.MinTimestampMicros < b.firstTSMicro) {
		b.firstTSMicro = g.Metadata.MinTimestampMicros
	}
}

// shouldFlush reports whether any of the three flush conditions in spec
// §4.4 step 5 hold as of now.
func (b *buffer) shouldFlush(cfg Config, now time.Time) bool {
	return b.totalRows >= cfg.MaxRows ||
		b.totalBytes >= cfg.MaxBytes ||
		now.Sub(b.createdAt) >= cfg.MaxAge
}

// Completed is a flushed buffer ready for the Parquet writer, carrying
// every RecordBatch merged into it in ingest order. Batches of different
// schemas may be interleaved; parquetio.EncodeCompleted groups them by
// schema so the writer can emit one Parquet object per distinct schema.
type Completed struct {
	Key          Key
	ServiceName  string
	RecordCount  int
	Batches      []*columnar.RecordBatch
	FirstTSMicro int64
}

// passthrough converts a single group directly into a Completed without
// ever creating a buffer, used by Accumulator.Ingest when batching is
// disabled (spec §4.4 passthrough mode: one file per request).
func passthrough(g convert.Group) Completed {
	return Completed{
		Key:          KeyFor(g.Metadata.ServiceName, g.Metadata.MinTimestampMicros),
		ServiceName:  g.Metadata.ServiceName,
		RecordCount:  g.Metadata.RecordCount,
		Batches:      g.Batches,
		FirstTSMicro: g.Metadata.MinTimestampMicros,
	}
}

func (b *buffer) finalize() Completed {
	var batches []*columnar.RecordBatch
	for _, g := range b.groups {
		batches = append(batches, g.Batches...)
	}
	return Completed{
		Key:          b.key,
		ServiceName:  b.serviceName,
		RecordCount:  b.totalRows,
		Batches:      batches,
		FirstTSMicro: b.firstTSMicro,
	}
}
