// Package blobstore persists raw file contents under opaque names.
package blobstore

import (
	"context"
)

// Store writes and reads blobs. Paths returned by Save are opaque to callers
// and are stored verbatim in file records; thumbnails are written next to
// them with Put.
type Store interface {
	// Save writes data under a fresh unique name and returns its path.
	Save(ctx context.Context, data []byte) (string, error)
	// Put writes data at path, replacing any previous content.
	Put(ctx context.Context, path string, data []byte) error
	// Get returns the content at path, or common.ErrorNotFound.
	Get(ctx context.Context, path string) ([]byte, error)
	// Remove deletes path. Removing a missing path is not an error.
	Remove(ctx context.Context, path string) error
}
