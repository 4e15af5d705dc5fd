package filter

import "math"

const (
	// DefaultCeiling is the price ceiling used when the catalog gives no maximum.
	DefaultCeiling = 1000.0
	// SliderStep is the granularity of the price range slider.
	SliderStep = 10.0
)

// Criteria is the canonical filter state. Typed min/max inputs and the range
// slider both write into the same PriceFloor/PriceCeiling pair.
type Criteria struct {
	TitleQuery   string  `json:"title"`
	CategoryID   *int    `json:"category_id"`
	PriceFloor   float64 `json:"price_floor"`
	PriceCeiling float64 `json:"price_ceiling"`
}

func ceilingOrDefault(maxPrice float64) float64 {
	if maxPrice <= 0 || math.IsNaN(maxPrice) {
		return DefaultCeiling
	}
	return maxPrice
}

// Defaults returns the reset state for a catalog whose most expensive product
// costs maxPrice.
func Defaults(maxPrice float64) Criteria {
	return Criteria{PriceCeiling: ceilingOrDefault(maxPrice)}
}

// WithTitle sets the title substring query.
func (c Criteria) WithTitle(q string) Criteria {
	c.TitleQuery = q
	return c
}

// WithCategory sets the category; nil selects all categories.
func (c Criteria) WithCategory(id *int) Criteria {
	if id == nil {
		c.CategoryID = nil
		return c
	}
	v := *id
	c.CategoryID = &v
	return c
}

// WithTypedBounds applies the typed min/max inputs. A missing or negative
// min means 0; a missing or non-positive max means maxPrice.
func (c Criteria) WithTypedBounds(min, max *float64, maxPrice float64) Criteria {
	c.PriceFloor = 0
	if min != nil && *min > 0 {
		c.PriceFloor = *min
	}
	c.PriceCeiling = ceilingOrDefault(maxPrice)
	if max != nil && *max > 0 {
		c.PriceCeiling = *max
	}
	return c
}

// WithSliderBounds applies the range slider. Values snap to SliderStep and are
// clamped to [0, maxPrice]; thumbs never cross.
func (c Criteria) WithSliderBounds(lo, hi, maxPrice float64) Criteria {
	top := ceilingOrDefault(maxPrice)
	lo, hi = snap(lo, top), snap(hi, top)
	if lo > hi {
		lo, hi = hi, lo
	}
	c.PriceFloor = lo
	c.PriceCeiling = hi
	return c
}

func snap(v, top float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v/SliderStep) * SliderStep
	return math.Min(math.Max(v, 0), top)
}

// Active reports whether c narrows the catalog compared to Defaults(maxPrice).
func Active(c Criteria, maxPrice float64) bool {
	return c.TitleQuery != "" ||
		c.CategoryID != nil ||
		c.PriceFloor > 0 ||
		c.PriceCeiling < ceilingOrDefault(maxPrice)
}
