package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront/internal/admin"
	"github.com/imrishuroy/go-storefront/internal/session"
	"github.com/imrishuroy/go-storefront/internal/validation"
)

// asAdmin runs fn with the session's login state and writes its result.
func (h *handler) asAdmin(c *gin.Context, status int, fn func(ctx context.Context, p admin.Principal) (any, error)) {
	var out any
	err := h.withSession(c, func(s *session.Session) error {
		var err error
		out, err = fn(c.Request.Context(), s.Auth)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if out == nil {
		c.Status(status)
		return
	}
	c.JSON(status, out)
}

func (h *handler) adminListProducts(c *gin.Context) {
	h.asAdmin(c, http.StatusOK, func(_ context.Context, p admin.Principal) (any, error) {
		ps, err := h.Admin.ListProducts(p)
		return gin.H{"products": ps}, err
	})
}

func (h *handler) adminCreateProduct(c *gin.Context) {
	var form validation.ProductForm
	if err := validation.BindAndValidate(c, &form, h.Validate); err != nil {
		return
	}
	h.asAdmin(c, http.StatusCreated, func(ctx context.Context, p admin.Principal) (any, error) {
		return h.Admin.CreateProduct(ctx, p, form)
	})
}

func (h *handler) adminUpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var form validation.ProductUpdateForm
	if err := validation.BindAndValidate(c, &form, h.Validate); err != nil {
		return
	}
	h.asAdmin(c, http.StatusOK, func(ctx context.Context, p admin.Principal) (any, error) {
		return h.Admin.UpdateProduct(ctx, p, id, form)
	})
}

func (h *handler) adminDeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.asAdmin(c, http.StatusNoContent, func(ctx context.Context, p admin.Principal) (any, error) {
		return nil, h.Admin.DeleteProduct(ctx, p, id)
	})
}

func (h *handler) adminListCategories(c *gin.Context) {
	h.asAdmin(c, http.StatusOK, func(ctx context.Context, p admin.Principal) (any, error) {
		cats, err := h.Admin.ListCategories(ctx, p)
		return gin.H{"categories": cats}, err
	})
}

func (h *handler) adminCreateCategory(c *gin.Context) {
	var form validation.CategoryForm
	if err := validation.BindAndValidate(c, &form, h.Validate); err != nil {
		return
	}
	h.asAdmin(c, http.StatusCreated, func(ctx context.Context, p admin.Principal) (any, error) {
		return h.Admin.CreateCategory(ctx, p, form)
	})
}

func (h *handler) adminUpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var form validation.CategoryUpdateForm
	if err := validation.BindAndValidate(c, &form, h.Validate); err != nil {
		return
	}
	h.asAdmin(c, http.StatusOK, func(ctx context.Context, p admin.Principal) (any, error) {
		return h.Admin.UpdateCategory(ctx, p, id, form)
	})
}

func (h *handler) adminDeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.asAdmin(c, http.StatusNoContent, func(ctx context.Context, p admin.Principal) (any, error) {
		return nil, h.Admin.DeleteCategory(ctx, p, id)
	})
}

func (h *handler) adminListUsers(c *gin.Context) {
	h.asAdmin(c, http.StatusOK, func(ctx context.Context, p admin.Principal) (any, error) {
		users, err := h.Admin.ListUsers(ctx, p)
		return gin.H{"users": users}, err
	})
}

func (h *handler) adminCreateUser(c *gin.Context) {
	var form validation.UserForm
	if err := validation.BindAndValidate(c, &form, h.Validate); err != nil {
		return
	}
	h.asAdmin(c, http.StatusCreated, func(ctx context.Context, p admin.Principal) (any, error) {
		return h.Admin.CreateUser(ctx, p, form)
	})
}

func (h *handler) adminUpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var form validation.UserUpdateForm
	if err := validation.BindAndValidate(c, &form, h.Validate); err != nil {
		return
	}
	h.asAdmin(c, http.StatusOK, func(ctx context.Context, p admin.Principal) (any, error) {
		return h.Admin.UpdateUser(ctx, p, id, form)
	})
}

// adminRefreshCatalog re-fetches the whole catalog from the API.
func (h *handler) adminRefreshCatalog(c *gin.Context) {
	h.asAdmin(c, http.StatusOK, func(ctx context.Context, p admin.Principal) (any, error) {
		if _, err := h.Admin.ListProducts(p); err != nil {
			return nil, err
		}
		if h.Loader == nil {
			return gin.H{"refreshed": false}, nil
		}
		if err := h.Loader.Refresh(ctx); err != nil {
			return nil, err
		}
		return gin.H{"refreshed": true, "count": len(h.Catalog.Products())}, nil
	})
}
