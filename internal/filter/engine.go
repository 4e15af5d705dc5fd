// Package filter derives the visible product list from the catalog and the
// shopper's filter criteria.
package filter

import (
	"strings"

	"github.com/imrishuroy/go-storefront/internal/catalog"
)

// Match reports whether p satisfies every predicate of c.
func (c Criteria) Match(p catalog.Product) bool {
	if c.TitleQuery != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(c.TitleQuery)) {
		return false
	}
	if c.CategoryID != nil && p.CategoryID != *c.CategoryID {
		return false
	}
	return p.Price >= c.PriceFloor && p.Price <= c.PriceCeiling
}

// Apply returns the products matching c in catalog order. It never fails: an
// inverted price range simply matches nothing.
func Apply(products []catalog.Product, c Criteria) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if c.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
