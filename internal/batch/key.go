// Package batch implements the Batch Accumulator: it groups converted
// record batches by (service, minute) key, merges them until a flush
// threshold is crossed, and hands completed groups to the Parquet writer.
package batch

// Key identifies a buffer: the service name and the minute bucket its
// rows' timestamps fall into. Bucket is 0 when the group carried no
// usable timestamp (spec §9's authoritative choice between hour- and
// minute-bucketing, recorded in DESIGN.md).
type Key struct {
	Service string
	Bucket  int64
}

const bucketWidthMicros = 60_000_000

// KeyFor derives a Key from a converted group's metadata.
func KeyFor(serviceName string, minTimestampMicros int64) Key {
	if minTimestampMicros <= 0 {
		return Key{Service: serviceName, Bucket: 0}
	}
	return Key{Service: serviceName, Bucket: minTimestampMicros / bucketWidthMicros}
}
