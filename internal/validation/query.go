package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/imrishuroy/go-storefront/internal/filter"
)

// ProductQuery is the query string of GET /products. Every field is optional
// and kept as text so that garbage input degrades to "no constraint".
type ProductQuery struct {
	Title      string `form:"title"`
	CategoryID string `form:"category_id"`
	MinPrice   string `form:"min_price"`
	MaxPrice   string `form:"max_price"`
	RangeMin   string `form:"range_min"`
	RangeMax   string `form:"range_max"`
}

// Criteria builds filter criteria starting from the defaults for maxPrice.
// Typed bounds are applied first, then the slider range when both ends are given.
func (q ProductQuery) Criteria(maxPrice float64) filter.Criteria {
	c := filter.Defaults(maxPrice).
		WithTitle(q.Title).
		WithCategory(parseCategory(q.CategoryID))

	minP, maxP := parsePrice(q.MinPrice), parsePrice(q.MaxPrice)
	if minP != nil || maxP != nil {
		c = c.WithTypedBounds(minP, maxP, maxPrice)
	}

	lo, hi := parsePrice(q.RangeMin), parsePrice(q.RangeMax)
	if lo != nil && hi != nil {
		c = c.WithSliderBounds(*lo, *hi, maxPrice)
	}
	return c
}

func parseCategory(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
