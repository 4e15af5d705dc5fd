// Package checkout turns a session cart into a persisted order and hands it to
// the worker. Each attempt is guarded by a client-supplied idempotency key.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/imrishuroy/go-storefront/internal/idempotency"
	"github.com/imrishuroy/go-storefront/internal/orders"
	"github.com/imrishuroy/go-storefront/internal/validation"
)

type OrderWriter interface {
	CreateWithIdempotency(ctx context.Context, idempotencyTable string, idempotencyItem any, order orders.Order) error
}

type IdempotencyStore interface {
	TableName() string
	NewRecord(key, orderID, sessionID string) idempotency.Record
	Get(ctx context.Context, key string) (*idempotency.Record, error)
	SaveResponse(ctx context.Context, key, responseBody string, responseStatus int) error
	MarkFailed(ctx context.Context, key, note string) error
}

type Publisher interface {
	Publish(ctx context.Context, msg any, attributes map[string]string) (string, error)
}

// Service runs checkouts.
type Service struct {
	orders    OrderWriter
	idem      IdempotencyStore
	publisher Publisher
	validate  *validatorv10.Validate
	newID     func() string
}

func NewService(o OrderWriter, idem IdempotencyStore, p Publisher, v *validatorv10.Validate) *Service {
	return &Service{orders: o, idem: idem, publisher: p, validate: v, newID: uuid.NewString}
}

// Checkout writes the order and its idempotency record atomically, enqueues
// the order for the worker and clears the cart. A key seen before is answered
// from the stored record without touching the cart.
func (s *Service) Checkout(ctx context.Context, req Request) (Result, error) {
	logger := log.Ctx(ctx).With().Str("component", "checkout").Str("idempotency_key", req.Key).Logger()

	if req.Key == "" {
		return Result{}, ErrMissingKey
	}

	if res, ok, err := s.replay(ctx, req); ok || err != nil {
		return res, err
	}

	if req.Cart.Len() == 0 {
		return Result{}, ErrEmptyCart
	}

	lines := req.Cart.Items()
	amount := req.Cart.TotalAmount().Round(2).InexactFloat64()
	snap := validation.OrderSnapshot{Amount: amount}
	items := make([]orders.LineItem, 0, len(lines))
	for _, l := range lines {
		snap.Lines = append(snap.Lines, validation.OrderLine{
			ProductID: l.ID, Title: l.Title, Quantity: l.Quantity, Price: l.Price,
		})
		items = append(items, orders.LineItem{
			ProductID: l.ID, Title: l.Title, Quantity: l.Quantity, Price: l.Price,
		})
	}
	if err := s.validate.Struct(snap); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	orderID := s.newID()
	order := orders.Order{
		OrderID:   orderID,
		SessionID: req.SessionID,
		Email:     req.Card.Email,
		UserID:    req.UserID,
		Status:    orders.StatusPending,
		Amount:    amount,
		Items:     items,
		Metadata: map[string]string{
			"card_last4": validation.LastFour(req.Card.CardNumber),
			"card_name":  req.Card.CardName,
		},
	}
	rec := s.idem.NewRecord(req.Key, orderID, req.SessionID)

	if err := s.orders.CreateWithIdempotency(ctx, s.idem.TableName(), rec, order); err != nil {
		if errors.Is(err, orders.ErrDuplicate) {
			// lost a race with a concurrent request carrying the same key
			if res, ok, rerr := s.replay(ctx, req); ok || rerr != nil {
				return res, rerr
			}
		}
		return Result{}, fmt.Errorf("create order: %w", err)
	}

	msg := Message{OrderID: orderID, IdempotencyKey: req.Key, CorrelationID: req.CorrelationID}
	attrs := map[string]string{
		"idempotency_key": req.Key,
		"order_id":        orderID,
	}
	if req.CorrelationID != "" {
		attrs["correlation_id"] = req.CorrelationID
	}
	if _, err := s.publisher.Publish(ctx, msg, attrs); err != nil {
		if merr := s.idem.MarkFailed(ctx, req.Key, fmt.Sprintf("sqs_send_failed: %v", err)); merr != nil {
			logger.Error().Err(merr).Msg("mark idempotency failed")
		}
		return Result{}, fmt.Errorf("%w: %w", ErrEnqueue, err)
	}

	resp := Response{OrderID: orderID, Status: orders.StatusPending, Amount: amount}
	body, err := json.Marshal(resp)
	if err != nil {
		return Result{}, fmt.Errorf("marshal response: %w", err)
	}
	if err := s.idem.SaveResponse(ctx, req.Key, string(body), http.StatusCreated); err != nil {
		logger.Warn().Err(err).Str("order_id", orderID).Msg("store checkout response")
	}

	req.Cart.ClearCart()
	logger.Info().Str("order_id", orderID).Float64("amount", amount).Int("lines", len(items)).Msg("order accepted")

	return Result{HTTPStatus: http.StatusCreated, Response: resp, Body: body}, nil
}

// replay answers from an existing idempotency record. ok is false when the key
// has not been seen.
func (s *Service) replay(ctx context.Context, req Request) (Result, bool, error) {
	rec, err := s.idem.Get(ctx, req.Key)
	if err != nil {
		return Result{}, false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if rec == nil {
		return Result{}, false, nil
	}
	if rec.SessionID != "" && rec.SessionID != req.SessionID {
		return Result{}, true, ErrKeyReused
	}

	switch rec.Status {
	case idempotency.StatusFailed:
		return Result{}, true, ErrPreviousAttemptFailed
	case idempotency.StatusInProgress, idempotency.StatusDone:
		if rec.ResponseBody != "" && json.Valid([]byte(rec.ResponseBody)) {
			status := rec.ResponseStatus
			if status == 0 {
				status = http.StatusOK
			}
			return Result{HTTPStatus: status, Body: []byte(rec.ResponseBody), Replayed: true}, true, nil
		}
		if rec.Status == idempotency.StatusDone {
			resp := Response{OrderID: rec.OrderID, Status: orders.StatusCompleted}
			return Result{HTTPStatus: http.StatusOK, Response: resp, Replayed: true}, true, nil
		}
		resp := Response{OrderID: rec.OrderID, Status: orders.StatusPending}
		return Result{HTTPStatus: http.StatusAccepted, Response: resp, Replayed: true}, true, nil
	default:
		return Result{}, true, fmt.Errorf("unknown idempotency status %q", rec.Status)
	}
}
