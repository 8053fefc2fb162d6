package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ecomcore/order-service/internal/cache"
	"github.com/ecomcore/order-service/internal/domain"
	"github.com/ecomcore/order-service/internal/pkg/pool"
)

//go:generate mockgen -source service.go -destination service_mock_test.go -package service

type Repository interface {
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
}

type Stock interface {
	Reduce(ctx context.Context, items []domain.OrderItem) error
}

// Service orchestrates the six order operations, composing the cache-aside
// accessor and the invalidation coordinator around the repository.
type Service struct {
	repo        Repository
	stock       Stock
	accessor    *cache.Accessor
	invalidator *cache.Invalidator
	tasks       *pool.Pool
	ttl         time.Duration
	logger      *zap.Logger
}

func New(
	repo Repository,
	stock Stock,
	accessor *cache.Accessor,
	invalidator *cache.Invalidator,
	tasks *pool.Pool,
	ttl time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:        repo,
		stock:       stock,
		accessor:    accessor,
		invalidator: invalidator,
		tasks:       tasks,
		ttl:         ttl,
		logger:      logger,
	}
}

// MyOrders lists one user's orders. An empty list is a valid, cacheable
// result.
func (s *Service) MyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return cache.Lookup(ctx, s.accessor, cache.KeyMyOrders(userID), s.ttl,
		func(ctx context.Context) ([]domain.Order, error) {
			return s.repo.FindByUser(ctx, userID)
		})
}

// AllOrders lists every order with user names joined, for the admin view.
func (s *Service) AllOrders(ctx context.Context) ([]domain.Order, error) {
	return cache.Lookup(ctx, s.accessor, cache.KeyAllOrders, s.ttl,
		func(ctx context.Context) ([]domain.Order, error) {
			return s.repo.FindAll(ctx)
		})
}

// GetSingleOrder fetches one order with the user name joined. ErrNotFound
// propagates to the caller and is never written to the cache.
func (s *Service) GetSingleOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return cache.Lookup(ctx, s.accessor, cache.KeyOrder(orderID), s.ttl,
		func(ctx context.Context) (*domain.Order, error) {
			return s.repo.FindByID(ctx, orderID)
		})
}

// NewOrder validates the input, creates the order, then detaches the stock
// reduction and the cache purge. Once the create has succeeded the operation
// is a success: both side effects are attempted independently and failures
// are logged, never surfaced.
func (s *Service) NewOrder(ctx context.Context, in domain.NewOrderInput) (*domain.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:          in.UserID,
		Items:           in.Items,
		Shipping:        in.Shipping,
		Subtotal:        in.Subtotal,
		Tax:             in.Tax,
		ShippingCharges: in.ShippingCharges,
		Discount:        in.Discount,
		Total:           in.Total,
		Status:          domain.StatusProcessing,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	items := order.Items
	iv := cache.Invalidation{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     order.UserID,
		ProductIDs: productIDs(items),
	}
	orderID := order.ID
	bg := context.WithoutCancel(ctx)
	s.tasks.Submit(func() {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := s.stock.Reduce(bg, items); err != nil {
				s.logger.Error("stock reduction failed",
					zap.String("order_id", orderID),
					zap.Error(err),
				)
			}
		}()
		go func() {
			defer wg.Done()
			s.invalidator.Invalidate(bg, iv)
		}()
		wg.Wait()
	})

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
	)
	return order, nil
}

// ProcessOrder advances the fulfillment status along the two forward edges.
// An order outside Processing/Shipped keeps its status but is still re-saved
// and still triggers invalidation. The invalidation is awaited, so a success
// response never leaves a stale entry for this order behind.
func (s *Service) ProcessOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = order.Status.Next()
	if err := s.repo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.Invalidation{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})

	s.logger.Info("order processed",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
	)
	return order, nil
}

// DeleteOrder removes the order for good; no tombstone is kept. As with
// ProcessOrder, the invalidation is awaited before returning.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, order.ID); err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx, cache.Invalidation{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})

	s.logger.Info("order deleted", zap.String("order_id", order.ID))
	return nil
}

func productIDs(items []domain.OrderItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}
