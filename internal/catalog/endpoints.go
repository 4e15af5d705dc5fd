package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultLimit is how many products the storefront fetches. Filtering happens
// in memory, so the catalog is expected to stay in the low hundreds.
const DefaultLimit = 100

// ListProducts fetches up to limit raw products in catalog order.
func (c *Client) ListProducts(ctx context.Context, limit int) ([]RawProduct, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}, "offset": {"0"}}
	var out []RawProduct
	if err := c.do(ctx, http.MethodGet, "/products?"+q.Encode(), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct fetches one product.
func (c *Client) GetProduct(ctx context.Context, id int) (RawProduct, error) {
	var out RawProduct
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), "", nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) (RawProduct, error) {
	var out RawProduct
	err := c.do(ctx, http.MethodPost, "/products", token, in, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int, in ProductInput) (RawProduct, error) {
	var out RawProduct
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), token, in, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil)
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/categories", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, in CategoryInput) (Category, error) {
	var out Category
	err := c.do(ctx, http.MethodPost, "/categories", token, in, &out)
	return out, err
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int, in CategoryInput) (Category, error) {
	var out Category
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), token, in, &out)
	return out, err
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), token, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, in UserInput) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPost, "/users", token, in, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int, in UserInput) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), token, in, &out)
	return out, err
}

// IsEmailAvailable asks the API whether email can be used for a new account.
func (c *Client) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	var out struct {
		IsAvailable bool `json:"isAvailable"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/is-available", "", map[string]string{"email": email}, &out); err != nil {
		return false, err
	}
	return out.IsAvailable, nil
}

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, email, password string) (Tokens, error) {
	var out Tokens
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return Tokens{}, err
	}
	return out, nil
}

// Profile returns the account behind token.
func (c *Client) Profile(ctx context.Context, token string) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, &out)
	return out, err
}
