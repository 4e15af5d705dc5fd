package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_DropsUnusableProducts(t *testing.T) {
	raw := []RawProduct{
		{ID: 1, Price: 10, Images: []string{"a"}},
		{ID: 2, Price: 0, Images: []string{"a"}},
		{ID: 3, Price: 5},
		{ID: 4, Price: 5, Images: []string{"  ", ""}},
		{ID: 5, Price: 7, Images: []string{"b", " "}, Category: Category{ID: 9, Name: "Misc"}},
	}

	got := Sanitize(raw)

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 5, got[1].ID)
	assert.Equal(t, []string{"b"}, got[1].Images)
	assert.Equal(t, 9, got[1].CategoryID)
	assert.Equal(t, "Misc", got[1].CategoryName)
}

func TestCatalog_MaxPrice(t *testing.T) {
	c := NewCatalog(0)
	assert.Equal(t, 1000.0, c.MaxPrice())

	c.Replace([]Product{{ID: 1, Price: 40}, {ID: 2, Price: 310}}, nil)
	assert.Equal(t, 310.0, c.MaxPrice())
}

func TestCatalog_CategoriesCapped(t *testing.T) {
	cats := make([]Category, 20)
	for i := range cats {
		cats[i] = Category{ID: i + 1}
	}
	c := NewCatalog(0)
	c.Replace(nil, cats)

	got := c.Categories()

	assert.Len(t, got, DefaultCategoryLimit)
	assert.Equal(t, 1, got[0].ID)
}

func TestCatalog_UpsertAndRemove(t *testing.T) {
	c := NewCatalog(0)
	c.Replace([]Product{{ID: 1, Title: "a", Price: 1, Images: []string{"x"}}}, nil)

	c.Upsert(RawProduct{ID: 2, Title: "b", Price: 3, Images: []string{"y"}})
	c.Upsert(RawProduct{ID: 1, Title: "a2", Price: 2, Images: []string{"x"}})

	ps := c.Products()
	require.Len(t, ps, 2)
	assert.Equal(t, 2, ps[0].ID, "new products go first")
	assert.Equal(t, "a2", ps[1].Title)

	c.Upsert(RawProduct{ID: 2, Title: "b", Price: 0, Images: []string{"y"}})
	_, ok := c.Product(2)
	assert.False(t, ok, "invalid update drops the product")

	c.Remove(1)
	assert.Empty(t, c.Products())
}

func TestCatalog_CategoryReconcile(t *testing.T) {
	c := NewCatalog(0)
	c.UpsertCategory(Category{ID: 1, Name: "A"})
	c.UpsertCategory(Category{ID: 2, Name: "B"})
	c.UpsertCategory(Category{ID: 1, Name: "A2"})
	c.RemoveCategory(2)

	assert.Equal(t, []Category{{ID: 1, Name: "A2"}}, c.Categories())
}

func TestCatalog_CategoryChangesReachProducts(t *testing.T) {
	c := NewCatalog(0)
	c.Replace([]Product{
		{ID: 1, Price: 1, CategoryID: 1, CategoryName: "Shoes"},
		{ID: 2, Price: 2, CategoryID: 2, CategoryName: "Hats"},
		{ID: 3, Price: 3, CategoryID: 1, CategoryName: "Shoes"},
	}, []Category{{ID: 1, Name: "Shoes"}, {ID: 2, Name: "Hats"}})

	c.UpsertCategory(Category{ID: 1, Name: "Sneakers"})
	p, _ := c.Product(3)
	assert.Equal(t, "Sneakers", p.CategoryName)
	p, _ = c.Product(2)
	assert.Equal(t, "Hats", p.CategoryName)

	c.RemoveCategory(2)
	_, ok := c.Product(2)
	assert.False(t, ok, "products of a deleted category are dropped")
	assert.Len(t, c.Products(), 2)
}

type fakeSource struct {
	products   []RawProduct
	categories []Category
	prodErr    error
	catErr     error
}

func (f *fakeSource) ListProducts(context.Context, int) ([]RawProduct, error) {
	return f.products, f.prodErr
}

func (f *fakeSource) ListCategories(context.Context) ([]Category, error) {
	return f.categories, f.catErr
}

func TestLoader_Refresh(t *testing.T) {
	src := &fakeSource{
		products:   []RawProduct{{ID: 1, Price: 5, Images: []string{"x"}}, {ID: 2, Price: -1}},
		categories: []Category{{ID: 1, Name: "A"}},
	}
	cat := NewCatalog(0)
	l := &Loader{Source: src, Catalog: cat}

	require.NoError(t, l.Refresh(context.Background()))

	assert.True(t, cat.Loaded())
	assert.Len(t, cat.Products(), 1)
	assert.Len(t, cat.Categories(), 1)
}

func TestLoader_FailureKeepsPreviousSnapshot(t *testing.T) {
	cat := NewCatalog(0)
	cat.Replace([]Product{{ID: 9, Price: 1}}, []Category{{ID: 3}})
	src := &fakeSource{
		products: []RawProduct{{ID: 1, Price: 5, Images: []string{"x"}}},
		catErr:   errors.New("boom"),
	}
	l := &Loader{Source: src, Catalog: cat}

	err := l.Refresh(context.Background())

	require.Error(t, err)
	ps := cat.Products()
	require.Len(t, ps, 1)
	assert.Equal(t, 9, ps[0].ID)
}
