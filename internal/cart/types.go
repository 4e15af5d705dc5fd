package cart

import "github.com/shopspring/decimal"

// Item is the product snapshot handed to AddToCart.
type Item struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
}

// LineItem is one row of the cart. ID is the product id.
type LineItem struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Price    float64  `json:"price"`
	Images   []string `json:"images"`
	Quantity int      `json:"quantity"` // always >= 1
}

// Subtotal returns price×quantity for the line.
func (li LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func (li LineItem) clone() LineItem {
	out := li
	if li.Images != nil {
		out.Images = append([]string(nil), li.Images...)
	}
	return out
}
