package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront/internal/cart"
	"github.com/imrishuroy/go-storefront/internal/catalog"
	"github.com/imrishuroy/go-storefront/internal/session"
	"github.com/imrishuroy/go-storefront/internal/validation"
)

type cartView struct {
	Items       []cart.LineItem `json:"items"`
	TotalAmount float64         `json:"total_amount"`
	TotalItems  int             `json:"total_items"`
}

func viewOf(s *cart.Store) cartView {
	return cartView{
		Items:       s.Items(),
		TotalAmount: s.TotalAmount().Round(2).InexactFloat64(),
		TotalItems:  s.TotalItemCount(),
	}
}

// respondCart runs fn against the session cart and replies with the cart view.
func (h *handler) respondCart(c *gin.Context, status int, fn func(*cart.Store) error) {
	var view cartView
	err := h.withSession(c, func(s *session.Session) error {
		if err := fn(s.Cart); err != nil {
			return err
		}
		view = viewOf(s.Cart)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, view)
}

func (h *handler) getCart(c *gin.Context) {
	h.respondCart(c, http.StatusOK, func(*cart.Store) error { return nil })
}

func (h *handler) addCartItem(c *gin.Context) {
	var req validation.AddCartItemRequest
	if err := validation.BindAndValidate(c, &req, h.Validate); err != nil {
		return
	}
	if !h.ensureCatalog(c) {
		return
	}
	p, ok := h.Catalog.Product(req.ID)
	if !ok {
		writeError(c, fmt.Errorf("product %d: %w", req.ID, catalog.ErrNotFound))
		return
	}
	h.respondCart(c, http.StatusOK, func(s *cart.Store) error {
		s.AddToCart(cart.Item{ID: p.ID, Title: p.Title, Price: p.Price, Images: p.Images})
		return nil
	})
}

func (h *handler) updateCartItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req validation.UpdateQuantityRequest
	if err := validation.BindAndValidate(c, &req, h.Validate); err != nil {
		return
	}
	h.respondCart(c, http.StatusOK, func(s *cart.Store) error {
		s.UpdateQuantity(id, *req.Quantity)
		return nil
	})
}

func (h *handler) removeCartItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respondCart(c, http.StatusOK, func(s *cart.Store) error {
		s.RemoveFromCart(id)
		return nil
	})
}

func (h *handler) clearCart(c *gin.Context) {
	h.respondCart(c, http.StatusOK, func(s *cart.Store) error {
		s.ClearCart()
		return nil
	})
}
