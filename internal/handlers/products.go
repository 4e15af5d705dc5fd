package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront/internal/catalog"
	"github.com/imrishuroy/go-storefront/internal/filter"
	"github.com/imrishuroy/go-storefront/internal/validation"
)

// ensureCatalog loads the catalog on first use when a Loader is configured.
func (h *handler) ensureCatalog(c *gin.Context) bool {
	if h.Catalog.Loaded() || h.Loader == nil {
		return true
	}
	if err := h.Loader.Refresh(c.Request.Context()); err != nil {
		writeError(c, err)
		return false
	}
	return true
}

func (h *handler) listProducts(c *gin.Context) {
	if !h.ensureCatalog(c) {
		return
	}
	var q validation.ProductQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_query", "detail": err.Error()})
		return
	}

	maxPrice := h.Catalog.MaxPrice()
	criteria := q.Criteria(maxPrice)
	products := filter.Apply(h.Catalog.Products(), criteria)

	c.JSON(http.StatusOK, gin.H{
		"products":  products,
		"count":     len(products),
		"max_price": maxPrice,
		"criteria":  criteria,
		"active":    filter.Active(criteria, maxPrice),
	})
}

func (h *handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok || !h.ensureCatalog(c) {
		return
	}
	p, found := h.Catalog.Product(id)
	if !found {
		writeError(c, fmt.Errorf("product %d: %w", id, catalog.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) listCategories(c *gin.Context) {
	if !h.ensureCatalog(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": h.Catalog.Categories()})
}
