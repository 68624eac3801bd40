// Package kvredis implements ports.KVStore on top of Redis, backing both
// internal/configstore and internal/refdata's persisted documents.
//
// Grounded on BbangMxn-worker/worker_server/pkg/cache/worker_redis_cache.go:
// a thin wrapper over *redis.Client. Narrowed here to the four KVStore
// methods the reference-data and configuration stores actually need — this package carries no
// JSON-helper surface of its own since configstore/refdata already own
// their own (de)serialization (see internal/configstore, which uses
// goccy/go-json the same way BbangMxn-worker's cache wrapper does).
package kvredis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store adapts a *redis.Client to ports.KVStore.
type Store struct {
	client *redis.Client
}

// New constructs a Store from a pre-built redis client, so callers control
// connection pooling, TLS, and auth the same way they configure any other
// go-redis consumer.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get returns nil, nil for an absent key rather than surfacing redis.Nil,
// matching ports.KVStore's documented "missing key is not an error"
// contract.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set writes value at key. ttl of zero means no expiry, matching
// redis.Client.Set's own "0 means no expiration" convention.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes key; deleting an absent key is a no-op success in Redis
// already, so no special-casing is needed here.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
