package blob

import (
	"context"
	"fmt"
	"sync"
)

// Mem is an in-memory Store for tests. Safe for concurrent use.
type Mem struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	data        []byte
	contentType string
}

// NewMem returns an empty in-memory store.
func NewMem() *Mem {
	return &Mem{objects: make(map[string]memObject)}
}

func memKey(bucket, key string) string { return bucket + "/" + key }

func (m *Mem) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[memKey(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("get %s/%s: object not found", bucket, key)
	}
	out := make([]byte, len(obj.data))
	copy(out, obj.data)
	return out, nil
}

func (m *Mem) GetRange(ctx context.Context, bucket, key string, length int) ([]byte, error) {
	data, err := m.Get(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	if length < len(data) {
		data = data[:length]
	}
	return data, nil
}

func (m *Mem) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(bucket); err != nil {
		return fmt.Errorf("bucket: %w", err)
	}
	if err := validName(key); err != nil {
		return fmt.Errorf("key: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[memKey(bucket, key)] = memObject{data: stored, contentType: contentType}
	return nil
}

// ContentType reports the content type an object was stored with, for test
// assertions.
func (m *Mem) ContentType(bucket, key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.objects[memKey(bucket, key)].contentType
}
