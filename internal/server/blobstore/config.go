package blobstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/server/config"
)

// s3KeyPrefix namespaces blob objects inside the bucket.
const s3KeyPrefix = "files"

// FromConfig returns the backend selected by cfg.StorageBackend.
func FromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal, "":
		return NewLocalStore(cfg.FolderPath), nil
	case config.StorageS3:
		return NewS3Store(ctx, S3Options{
			Region:       cfg.S3Region,
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Bucket:       cfg.S3Bucket,
			Prefix:       s3KeyPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
