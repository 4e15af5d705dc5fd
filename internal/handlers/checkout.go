package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-storefront/internal/checkout"
	"github.com/imrishuroy/go-storefront/internal/orders"
	"github.com/imrishuroy/go-storefront/internal/session"
	"github.com/imrishuroy/go-storefront/internal/validation"
)

const idempotencyKeyHeader = "Idempotency-Key"

func (h *handler) checkout(c *gin.Context) {
	var form validation.CardForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "detail": err.Error()})
		return
	}
	form.Normalize()
	if err := validation.Validate(c, &form, h.Validate); err != nil {
		return
	}

	var res checkout.Result
	err := h.withSession(c, func(s *session.Session) error {
		req := checkout.Request{
			Key:           c.GetHeader(idempotencyKeyHeader),
			SessionID:     s.ID,
			CorrelationID: c.GetString(requestIDKey),
			Card:          form,
			Cart:          s.Cart,
		}
		if u := s.Auth.User(); u != nil && s.Auth.IsAuthenticated() {
			req.UserID = u.ID
		}
		var err error
		res, err = h.Checkout.Checkout(c.Request.Context(), req)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if res.HTTPStatus == http.StatusCreated && !res.Replayed {
		c.Header("Location", fmt.Sprintf("/orders/%s", res.Response.OrderID))
	}
	if res.Body != nil {
		c.Data(res.HTTPStatus, "application/json; charset=utf-8", res.Body)
		return
	}
	c.JSON(res.HTTPStatus, res.Response)
}

// getOrder returns an order placed from the caller's session. Orders of other
// sessions are reported as missing.
func (h *handler) getOrder(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id", "detail": "id must be an order id"})
		return
	}
	if h.Orders == nil {
		writeError(c, fmt.Errorf("order %s: %w", id, orders.ErrNotFound))
		return
	}

	o, err := h.Orders.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, fmt.Errorf("get order %s: %w", id, err))
		return
	}
	if o == nil || o.SessionID != c.GetString(sessionIDKey) {
		writeError(c, fmt.Errorf("order %s: %w", id, orders.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id":   o.OrderID,
		"status":     o.Status,
		"amount":     o.Amount,
		"items":      o.Items,
		"created_at": o.CreatedAt,
		"updated_at": o.UpdatedAt,
	})
}
