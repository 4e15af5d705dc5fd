package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/imrishuroy/go-storefront/internal/aws"
	"github.com/imrishuroy/go-storefront/internal/checkout"
	"github.com/imrishuroy/go-storefront/internal/idempotency"
	"github.com/imrishuroy/go-storefront/internal/orders"
)

// settleDelay stands in for the payment provider round trip.
const settleDelay = 1500 * time.Millisecond

// ProcessorConfig names the tables and metrics namespace the worker uses.
type ProcessorConfig struct {
	OrdersTable      string
	IdempotencyTable string
	IdempotencyTTL   time.Duration
	MetricsNamespace string
}

// Processor handles SQS messages and performs order lifecycle transitions.
type Processor struct {
	orderStore *orders.Store
	idempStore *idempotency.Store
	metrics    *aws.Metrics
	settle     func(ctx context.Context, o *orders.Order) error
}

// NewProcessor creates a new worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, cfg ProcessorConfig) *Processor {
	return &Processor{
		orderStore: orders.NewStore(clients.DynamoDB, cfg.OrdersTable),
		idempStore: idempotency.NewStore(clients.DynamoDB, cfg.IdempotencyTable, cfg.IdempotencyTTL),
		metrics:    aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace),
		settle:     simulatedSettle,
	}
}

// simulatedSettle accepts every payment after a short delay.
func simulatedSettle(ctx context.Context, _ *orders.Order) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(settleDelay):
		return nil
	}
}

// Handle receives an SQS batch event and processes each message. The first
// error stops the batch so that Lambda retries it.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("message_id", rec.MessageId).Msg("worker error")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg checkout.Message
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if msg.OrderID == "" || msg.IdempotencyKey == "" {
		return errors.New("invalid message body: missing order_id or idempotency_key")
	}

	logger := log.Ctx(ctx).With().
		Str("component", "worker").
		Str("order_id", msg.OrderID).
		Str("idempotency_key", msg.IdempotencyKey).
		Str("correlation_id", msg.CorrelationID).
		Logger()
	logger.Info().Msg("received order")

	order, err := p.orderStore.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("fetch order: %w", err)
	}
	if order == nil {
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}

	if err := p.orderStore.IncrementAttempts(ctx, msg.OrderID); err != nil {
		logger.Warn().Err(err).Msg("increment attempts")
	}

	err = p.orderStore.UpdateStatus(ctx, msg.OrderID, orders.StatusPending, orders.StatusProcessing)
	if errors.Is(err, orders.ErrStatusMismatch) {
		o2, gerr := p.orderStore.Get(ctx, msg.OrderID)
		if gerr != nil {
			return fmt.Errorf("re-read order %s: %w", msg.OrderID, gerr)
		}
		if o2 == nil {
			return fmt.Errorf("order vanished: %s", msg.OrderID)
		}
		switch o2.Status {
		case orders.StatusCompleted:
			logger.Info().Msg("already completed")
			return nil
		case orders.StatusFailed:
			logger.Warn().Msg("order already failed")
			return nil
		case orders.StatusProcessing:
			// another delivery of the same message holds the order
			logger.Info().Msg("duplicate processing event")
			return nil
		default:
			return fmt.Errorf("unexpected status for order=%s: %s", msg.OrderID, o2.Status)
		}
	}
	if err != nil {
		return fmt.Errorf("update status to PROCESSING: %w", err)
	}

	if err := p.settle(ctx, order); err != nil {
		logger.Warn().Err(err).Msg("settlement failed")
		return p.fail(ctx, msg, err)
	}

	if err := p.orderStore.UpdateStatus(ctx, msg.OrderID, orders.StatusProcessing, orders.StatusCompleted); err != nil {
		return fmt.Errorf("update status to COMPLETED: %w", err)
	}

	if err := p.idempStore.MarkDone(ctx, msg.IdempotencyKey); err != nil {
		if !errors.Is(err, idempotency.ErrRecordMissing) {
			return fmt.Errorf("mark idempotency done: %w", err)
		}
		logger.Warn().Err(err).Msg("idempotency record gone, order completed anyway")
	}

	if err := p.metrics.PutCheckout(ctx, order.Amount, order.ItemCount()); err != nil {
		logger.Warn().Err(err).Msg("publish checkout metrics")
	}

	logger.Info().Float64("amount", order.Amount).Int("items", order.ItemCount()).Msg("completed order")
	return nil
}

// fail marks the order and its idempotency record FAILED. Retrying a declined
// payment does not help, so the message is acknowledged.
func (p *Processor) fail(ctx context.Context, msg checkout.Message, cause error) error {
	if err := p.orderStore.UpdateStatus(ctx, msg.OrderID, orders.StatusProcessing, orders.StatusFailed); err != nil {
		return fmt.Errorf("update status to FAILED: %w", err)
	}
	if err := p.idempStore.MarkFailed(ctx, msg.IdempotencyKey, fmt.Sprintf("settlement_failed: %v", cause)); err != nil &&
		!errors.Is(err, idempotency.ErrRecordMissing) {
		return fmt.Errorf("mark idempotency failed: %w", err)
	}
	return nil
}
