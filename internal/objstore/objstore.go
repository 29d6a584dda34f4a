// Package objstore provides a uniform write/read/list/exists facade over
// the filesystem and S3-compatible object storage backends (spec §6:
// "STORAGE_BACKEND ∈ {fs, s3, r2}").
package objstore

import (
	"context"
	"io"
)

// Store is the storage-backend-agnostic facade every signal writer uses
// to persist a finished Parquet object and every readiness probe uses to
// confirm connectivity.
type Store interface {
	// Write uploads data under key, overwriting nothing (files are
	// immutable and content-addressed by path; spec §4.5: "never
	// overwritten; no tombstones").
	Write(ctx context.Context, key string, data []byte) error

	// Read fetches the object stored under key.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// List enumerates keys sharing prefix, used by the readiness probe
	// and by offline tooling — never by the ingest hot path.
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
