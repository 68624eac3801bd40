package ports

import (
	"context"
	"time"
)

// KVStore defines the contract for the key/value backing store shared by
// the configuration store and the reference-data store. A missing key is
// not itself an error: Get returns (nil, nil) when key is absent.
type KVStore interface {
	// Get returns the raw value stored at key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value at key. ttl of zero means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying connection resources.
	Close() error
}
