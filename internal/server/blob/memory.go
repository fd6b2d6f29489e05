package blob

import (
	"context"
	"sync"

	"github.com/LeadConsult/alx-files-manager/internal/common"
)

// MemoryStorage is an in-memory Storage used in tests and local runs
// without an object-storage backend.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: map[string][]byte{}}
}

func (s *MemoryStorage) Write(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[key] = cp
	return nil
}

func (s *MemoryStorage) WriteVariant(ctx context.Context, key string, size int, data []byte) error {
	return s.Write(ctx, VariantKey(key, size), data)
}

func (s *MemoryStorage) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *MemoryStorage) ReadVariant(ctx context.Context, key string, size int) ([]byte, error) {
	return s.Read(ctx, VariantKey(key, size))
}

func (s *MemoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[key]
	return ok, nil
}

// Delete removes a blob. Test helper; the serving core never deletes.
func (s *MemoryStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
}
