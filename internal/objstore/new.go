package objstore

import (
	"context"
	"fmt"

	"otlp2parquet/internal/config"
)

// New constructs the Store selected by cfg.Backend ("fs", "s3", or
// "r2" — r2 is simply S3Store pointed at Cloudflare's S3-compatible
// endpoint).
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "fs":
		return NewFSStore(cfg.BaseDir)
	case "s3", "r2":
		return NewS3Store(ctx, S3Config{
			Bucket:      cfg.Bucket,
			Region:      cfg.Region,
			Endpoint:    cfg.Endpoint,
			AccessKeyID: cfg.AccessKeyID,
			SecretKey:   cfg.SecretKey,
			PathPrefix:  cfg.PathPrefix,
		})
	default:
		return nil, fmt.Errorf("objstore: unrecognized backend %q", cfg.Backend)
	}
}
