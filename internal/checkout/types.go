package checkout

import (
	"errors"

	"github.com/imrishuroy/go-storefront/internal/cart"
	"github.com/imrishuroy/go-storefront/internal/validation"
)

var (
	ErrMissingKey            = errors.New("missing idempotency key")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidOrder          = errors.New("order snapshot is inconsistent")
	ErrKeyReused             = errors.New("idempotency key belongs to another session")
	ErrPreviousAttemptFailed = errors.New("previous checkout attempt failed")
	ErrEnqueue               = errors.New("could not enqueue order")
)

// Message is the payload sent from the API to the worker over SQS.
type Message struct {
	OrderID        string `json:"order_id"`
	IdempotencyKey string `json:"idempotency_key"`
	CorrelationID  string `json:"correlation_id,omitempty"`
}

// Request is one checkout attempt. Card must already be normalized and validated.
type Request struct {
	Key           string
	SessionID     string
	CorrelationID string
	UserID        int
	Card          validation.CardForm
	Cart          *cart.Store
}

// Response is the body returned to the caller and stored for replays.
type Response struct {
	OrderID string  `json:"order_id"`
	Status  string  `json:"status"`
	Amount  float64 `json:"amount,omitempty"`
}

// Result is the outcome of Checkout. Body is set for replays of a stored response.
type Result struct {
	HTTPStatus int
	Response   Response
	Body       []byte
	Replayed   bool
}
