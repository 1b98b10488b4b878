// Package blob is the pipeline's minimal object-storage contract: full or
// prefix reads for sniffing and download, writes for the conversion
// artifacts. Real backends (S3, MinIO) live behind the same interface
// outside this module; the package ships a directory-backed store for local
// operation and an in-memory store for tests.
package blob

import (
	"context"
	"fmt"
	"strings"
)

// Store is the collaborator contract consumed by the conversion pipeline.
type Store interface {
	// Get reads a whole object.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	// GetRange reads at most length leading bytes of an object. A short
	// object yields a short (possibly empty) slice, not an error.
	GetRange(ctx context.Context, bucket, key string, length int) ([]byte, error)
	// Put writes an object, replacing any previous version.
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// validName rejects empty names and path traversal so bucket/key pairs map
// safely onto directory-backed storage.
func validName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}
