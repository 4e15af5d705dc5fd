package catalog

import "strings"

// Sanitize converts upstream products into catalog products. Entries without
// a usable image or with a non-positive price are dropped; order is kept.
func Sanitize(raw []RawProduct) []Product {
	out := make([]Product, 0, len(raw))
	for _, r := range raw {
		if p, ok := sanitizeOne(r); ok {
			out = append(out, p)
		}
	}
	return out
}

func sanitizeOne(r RawProduct) (Product, bool) {
	if r.Price <= 0 {
		return Product{}, false
	}
	images := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		return Product{}, false
	}
	return Product{
		ID:           r.ID,
		Title:        r.Title,
		Price:        r.Price,
		Description:  r.Description,
		CategoryID:   r.Category.ID,
		CategoryName: r.Category.Name,
		Images:       images,
	}, true
}
