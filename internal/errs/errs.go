// Package errs maps domain errors onto HTTP status codes and response codes.
package errs

import (
	"errors"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/imrishuroy/go-storefront/internal/admin"
	"github.com/imrishuroy/go-storefront/internal/auth"
	"github.com/imrishuroy/go-storefront/internal/catalog"
	"github.com/imrishuroy/go-storefront/internal/checkout"
	"github.com/imrishuroy/go-storefront/internal/orders"
)

type mapping struct {
	err    error
	status int
	code   string
}

// order matters: wrapped errors can match several entries
var mappings = []mapping{
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{auth.ErrNotAuthenticated, http.StatusUnauthorized, "not_authenticated"},
	{auth.ErrProfile, http.StatusBadGateway, "profile_unavailable"},
	{admin.ErrForbidden, http.StatusForbidden, "forbidden"},
	{admin.ErrEmailTaken, http.StatusConflict, "email_taken"},
	{checkout.ErrMissingKey, http.StatusBadRequest, "missing_idempotency_key"},
	{checkout.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
	{checkout.ErrInvalidOrder, http.StatusBadRequest, "invalid_order"},
	{checkout.ErrKeyReused, http.StatusConflict, "idempotency_key_reused"},
	{checkout.ErrPreviousAttemptFailed, http.StatusConflict, "previous_attempt_failed"},
	{checkout.ErrEnqueue, http.StatusBadGateway, "enqueue_failed"},
	{catalog.ErrNotFound, http.StatusNotFound, "not_found"},
	{orders.ErrNotFound, http.StatusNotFound, "order_not_found"},
	{catalog.ErrUnauthorized, http.StatusUnauthorized, "catalog_unauthorized"},
	{gobreaker.ErrOpenState, http.StatusServiceUnavailable, "catalog_unavailable"},
	{gobreaker.ErrTooManyRequests, http.StatusServiceUnavailable, "catalog_unavailable"},
	{catalog.ErrUnexpectedStatus, http.StatusBadGateway, "catalog_error"},
}

// StatusCode returns the HTTP status and short code for err. Unknown errors are 500.
func StatusCode(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}
