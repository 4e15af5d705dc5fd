package cart

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Store owns the line items of a single cart.
//
// Line items keep first-added order; updates never reorder them. A Store is
// not safe for concurrent use: the owner (one session) serialises access.
type Store struct {
	items []LineItem
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.items, func(li LineItem) bool { return li.ID == id })
}

// AddToCart increments the quantity of an existing line item or appends a new
// one with quantity 1. Title, price and images of an existing line are kept as
// first seen.
func (s *Store) AddToCart(item Item) {
	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity++
		return
	}
	s.items = append(s.items, LineItem{
		ID:       item.ID,
		Title:    item.Title,
		Price:    item.Price,
		Images:   append([]string(nil), item.Images...),
		Quantity: 1,
	})
}

// RemoveFromCart drops the line item with the given id. Missing ids are a no-op.
func (s *Store) RemoveFromCart(id int) {
	s.items = slices.DeleteFunc(s.items, func(li LineItem) bool { return li.ID == id })
}

// UpdateQuantity sets the absolute quantity of a line item. A quantity <= 0
// removes the line.
func (s *Store) UpdateQuantity(id, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(id)
		return
	}
	if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity = quantity
	}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.items = nil
}

// Items returns a copy of the line items in cart order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, 0, len(s.items))
	for _, li := range s.items {
		out = append(out, li.clone())
	}
	return out
}

// Get returns a copy of the line item with the given id.
func (s *Store) Get(id int) (LineItem, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].clone(), true
	}
	return LineItem{}, false
}

// Len is the number of distinct line items.
func (s *Store) Len() int {
	return len(s.items)
}

// TotalAmount is Σ price×quantity, recomputed on every call.
func (s *Store) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, li := range s.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// TotalItemCount is Σ quantity.
func (s *Store) TotalItemCount() int {
	n := 0
	for _, li := range s.items {
		n += li.Quantity
	}
	return n
}
