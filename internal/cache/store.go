package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss reports that a key is absent from the cache. Kept distinct from
// backend failures so callers can tell "not cached" from "cache is down".
var ErrMiss = errors.New("cache: miss")

// Store is a key-value cache with per-key expiry. Set and Delete are
// best-effort: the backing store remains the source of truth and entries
// self-heal via TTL, so callers log failures instead of propagating them.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
