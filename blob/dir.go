package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Dir is a Store backed by a directory tree: one subdirectory per bucket,
// one file per key. Content types are accepted and discarded — the
// filesystem has nowhere to keep them.
type Dir struct {
	root string
}

// NewDir returns a Dir rooted at the given directory. The directory is
// created lazily on the first Put.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) path(bucket, key string) (string, error) {
	if err := validName(bucket); err != nil {
		return "", fmt.Errorf("bucket: %w", err)
	}
	if err := validName(key); err != nil {
		return "", fmt.Errorf("key: %w", err)
	}
	return filepath.Join(d.root, bucket, filepath.FromSlash(key)), nil
}

func (d *Dir) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := d.path(bucket, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

func (d *Dir) GetRange(ctx context.Context, bucket, key string, length int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := d.path(bucket, key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("get range %s/%s: %w", bucket, key, err)
	}
	defer f.Close()

	buf := make([]byte, length)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("get range %s/%s: %w", bucket, key, err)
	}
	return buf[:n], nil
}

func (d *Dir) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := d.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}
