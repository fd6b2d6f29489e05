// Package blob stores raw content bytes and their resized variants under
// opaque keys. Keys are generated server-side at file-creation time and are
// never derived from user-supplied names.
package blob

import (
	"context"
	"fmt"
)

// Storage reads and writes content blobs and thumbnail variants.
type Storage interface {
	Write(ctx context.Context, key string, data []byte) error
	WriteVariant(ctx context.Context, key string, size int, data []byte) error

	// Read returns the blob bytes or common.ErrorNotFound. "never written"
	// and "deleted" are indistinguishable.
	Read(ctx context.Context, key string) ([]byte, error)
	ReadVariant(ctx context.Context, key string, size int) ([]byte, error)

	Exists(ctx context.Context, key string) (bool, error)
}

// VariantKey derives the storage key of a resized variant.
func VariantKey(key string, size int) string {
	return fmt.Sprintf("%s_%d", key, size)
}
