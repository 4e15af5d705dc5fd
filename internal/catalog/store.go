package catalog

import (
	"slices"
	"sync"
)

// DefaultCategoryLimit is how many categories the storefront exposes.
const DefaultCategoryLimit = 15

// Catalog is the in-memory snapshot of products and categories shared by all
// sessions. Returned slices are copies.
type Catalog struct {
	mu            sync.RWMutex
	products      []Product
	categories    []Category
	categoryLimit int
	loaded        bool
}

// NewCatalog returns an empty catalog. categoryLimit <= 0 uses DefaultCategoryLimit.
func NewCatalog(categoryLimit int) *Catalog {
	if categoryLimit <= 0 {
		categoryLimit = DefaultCategoryLimit
	}
	return &Catalog{categoryLimit: categoryLimit}
}

// Replace swaps the whole snapshot.
func (c *Catalog) Replace(products []Product, categories []Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = slices.Clone(products)
	c.categories = slices.Clone(categories)
	c.loaded = true
}

// Loaded reports whether a snapshot has been installed.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Catalog) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns at most the configured number of categories.
func (c *Catalog) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := min(len(c.categories), c.categoryLimit)
	out := make([]Category, n)
	copy(out, c.categories[:n])
	return out
}

func (c *Catalog) Product(id int) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := slices.IndexFunc(c.products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, false
	}
	return c.products[i], true
}

// MaxPrice is the highest product price, or 1000 for an empty catalog.
func (c *Catalog) MaxPrice() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.products) == 0 {
		return 1000
	}
	top := 0.0
	for _, p := range c.products {
		top = max(top, p.Price)
	}
	return top
}

// Upsert replaces the product with the same id in place or prepends a new one.
// A product that no longer passes ingestion rules is removed instead.
func (c *Catalog) Upsert(raw RawProduct) {
	p, ok := sanitizeOne(raw)
	if !ok {
		c.Remove(raw.ID)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := slices.IndexFunc(c.products, func(x Product) bool { return x.ID == p.ID }); i >= 0 {
		c.products[i] = p
		return
	}
	c.products = slices.Insert(c.products, 0, p)
}

func (c *Catalog) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = slices.DeleteFunc(c.products, func(p Product) bool { return p.ID == id })
}

// UpsertCategory replaces a category in place or appends it, and renames it
// on every product that belongs to it.
func (c *Catalog) UpsertCategory(cat Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].CategoryID == cat.ID {
			c.products[i].CategoryName = cat.Name
		}
	}
	if i := slices.IndexFunc(c.categories, func(x Category) bool { return x.ID == cat.ID }); i >= 0 {
		c.categories[i] = cat
		return
	}
	c.categories = append(c.categories, cat)
}

// RemoveCategory drops the category together with its products.
func (c *Catalog) RemoveCategory(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = slices.DeleteFunc(c.categories, func(x Category) bool { return x.ID == id })
	c.products = slices.DeleteFunc(c.products, func(p Product) bool { return p.CategoryID == id })
}
