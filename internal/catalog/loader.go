package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Source is the read side of the catalog API used by Loader.
type Source interface {
	ListProducts(ctx context.Context, limit int) ([]RawProduct, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// Loader fills a Catalog from a Source.
type Loader struct {
	Source  Source
	Catalog *Catalog
	Limit   int
}

// Refresh fetches products and categories concurrently and installs both only
// if both succeed. On error the previous snapshot stays in place.
func (l *Loader) Refresh(ctx context.Context) error {
	var (
		wg         sync.WaitGroup
		raw        []RawProduct
		categories []Category
		prodErr    error
		catErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		raw, prodErr = l.Source.ListProducts(ctx, l.Limit)
	}()
	go func() {
		defer wg.Done()
		categories, catErr = l.Source.ListCategories(ctx)
	}()
	wg.Wait()

	if prodErr != nil {
		return fmt.Errorf("load products: %w", prodErr)
	}
	if catErr != nil {
		return fmt.Errorf("load categories: %w", catErr)
	}

	products := Sanitize(raw)
	l.Catalog.Replace(products, categories)

	log.Ctx(ctx).Info().
		Str("component", "catalog").
		Int("fetched", len(raw)).
		Int("kept", len(products)).
		Int("categories", len(categories)).
		Msg("catalog refreshed")
	return nil
}
