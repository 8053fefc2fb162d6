package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ecomcore/order-service/internal/observability"
)

// Invalidation describes what a write changed; the Invalidator maps it to
// the exact key set whose cached results the write could have affected.
type Invalidation struct {
	Product bool
	Order   bool
	Admin   bool

	UserID     string
	OrderID    string
	ProductIDs []string
}

// Keys expands the invalidation into cache keys. Any order change blows away
// the global admin list; partial (pagination-aware) invalidation is
// deliberately not attempted.
func (iv Invalidation) Keys() []string {
	var keys []string
	if iv.Order {
		keys = append(keys, KeyAllOrders)
		if iv.UserID != "" {
			keys = append(keys, KeyMyOrders(iv.UserID))
		}
		if iv.OrderID != "" {
			keys = append(keys, KeyOrder(iv.OrderID))
		}
	}
	if iv.Product {
		keys = append(keys, KeyLatestProducts, KeyCategories, KeyAllProducts)
		for _, id := range iv.ProductIDs {
			keys = append(keys, KeyProduct(id))
		}
	}
	if iv.Admin {
		keys = append(keys, KeyAdminStats, KeyAdminPieCharts, KeyAdminBarCharts, KeyAdminLineCharts)
	}
	return keys
}

// Invalidator purges cache entries after writes so staleness is bounded by
// the write path, with TTL expiry as the backstop.
type Invalidator struct {
	store   Store
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewInvalidator(store Store, logger *zap.Logger, metrics observability.Metrics) *Invalidator {
	return &Invalidator{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Invalidate deletes every key implied by iv. Deletes run concurrently and
// each key is attempted even when others fail; a missing key is a no-op.
// Individual failures are logged and swallowed. The call is idempotent.
func (i *Invalidator) Invalidate(ctx context.Context, iv Invalidation) {
	keys := iv.Keys()
	if len(keys) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			if err := i.store.Delete(ctx, key); err != nil {
				i.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
			}
		}(key)
	}
	wg.Wait()
	i.metrics.ObserveInvalidation(len(keys))
}
