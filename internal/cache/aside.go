package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ecomcore/order-service/internal/observability"
)

// Accessor implements the read-through half of the cache protocol: check the
// store, fall back to the authoritative loader on miss, repopulate the store
// without blocking the caller.
type Accessor struct {
	store   Store
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewAccessor(store Store, logger *zap.Logger, metrics observability.Metrics) *Accessor {
	return &Accessor{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Loader performs the authoritative fetch on a cache miss.
type Loader[T any] func(ctx context.Context) (T, error)

// Lookup returns the cached value for key, or invokes load and caches its
// result for ttl. A loader error (domain.ErrNotFound included) is returned
// as-is and nothing is cached, so absence stays visible to the very next
// read. An empty result that is not an error IS cached. The cache write runs
// detached; its failure is logged, never surfaced to the caller.
func Lookup[T any](ctx context.Context, a *Accessor, key string, ttl time.Duration, load Loader[T]) (T, error) {
	t0 := time.Now()
	if b, err := a.store.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			a.metrics.IncCacheHit()
			a.metrics.ObserveLookup(observability.SourceCache, sinceMs(t0))
			return v, nil
		}
		a.logger.Warn("discarding undecodable cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
	} else if !errors.Is(err, ErrMiss) {
		a.logger.Warn("cache read failed, falling back to store",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	a.metrics.IncCacheMiss()

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	a.metrics.ObserveLookup(observability.SourceDB, sinceMs(t0))

	b, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("cache encode failed", zap.String("key", key), zap.Error(err))
		return v, nil
	}
	wctx := context.WithoutCancel(ctx)
	go func() {
		if err := a.store.Set(wctx, key, b, ttl); err != nil {
			a.logger.Warn("cache populate failed", zap.String("key", key), zap.Error(err))
		}
	}()
	return v, nil
}

func sinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
