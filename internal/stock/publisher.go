package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ecomcore/order-service/internal/config"
	"github.com/ecomcore/order-service/internal/domain"
	"github.com/ecomcore/order-service/internal/pkg/breaker"
	"github.com/ecomcore/order-service/internal/pkg/retry"
)

// Writer is the part of kafka-go's Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type reduceEvent struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Publisher emits stock-reduction events for ordered items. Inventory is
// owned by a sibling service; delivery is best-effort and callers treat a
// failure here as non-fatal to the order itself.
type Publisher struct {
	writer  Writer
	breaker *breaker.Breaker
	policy  config.Retry
	logger  *zap.Logger
}

func NewPublisher(writer Writer, brk *breaker.Breaker, policy config.Retry, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer:  writer,
		breaker: brk,
		policy:  policy,
		logger:  logger,
	}
}

func NewWriter(cfg config.Kafka) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// Reduce publishes one message per item, keyed by product id so events for
// the same product land on the same partition.
func (p *Publisher) Reduce(ctx context.Context, items []domain.OrderItem) error {
	if err := p.breaker.Allow(); err != nil {
		return fmt.Errorf("stock publish rejected: %w", err)
	}

	msgs := make([]kafkago.Message, 0, len(items))
	for _, it := range items {
		b, err := json.Marshal(reduceEvent{ProductID: it.ProductID, Quantity: it.Quantity})
		if err != nil {
			return err
		}
		msgs = append(msgs, kafkago.Message{Key: []byte(it.ProductID), Value: b})
	}

	if err := retry.Do(ctx, p.policy, func() error {
		return p.writer.WriteMessages(ctx, msgs...)
	}); err != nil {
		p.breaker.Failure()
		return err
	}
	p.breaker.Success()

	p.logger.Info("stock reduction published", zap.Int("items", len(msgs)))
	return nil
}
