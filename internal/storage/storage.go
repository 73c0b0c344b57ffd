package storage

import "context"

// Backend persists the state store's collections. Each collection is one
// independently serialized value under its own key, so a missing or corrupt
// key never affects the others.
type Backend interface {
	// Read returns the serialized value for key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write stores the serialized value for key.
	Write(ctx context.Context, key string, data []byte) error
	// Reset removes every key owned by this backend.
	Reset(ctx context.Context) error
}
