// Package admin implements catalog management for admin sessions. Writes go
// to the catalog API first and are then mirrored into the in-memory catalog.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/imrishuroy/go-storefront/internal/auth"
	"github.com/imrishuroy/go-storefront/internal/catalog"
	"github.com/imrishuroy/go-storefront/internal/validation"
)

// DefaultAvatar is used for new users created without an avatar.
const DefaultAvatar = "https://api.lorem.space/image/face?w=640&h=480"

var (
	ErrForbidden  = errors.New("admin role required")
	ErrEmailTaken = errors.New("email is already registered")
)

// API is the catalog API surface used by the admin screens.
type API interface {
	CreateProduct(ctx context.Context, token string, in catalog.ProductInput) (catalog.RawProduct, error)
	UpdateProduct(ctx context.Context, token string, id int, in catalog.ProductInput) (catalog.RawProduct, error)
	DeleteProduct(ctx context.Context, token string, id int) error
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CreateCategory(ctx context.Context, token string, in catalog.CategoryInput) (catalog.Category, error)
	UpdateCategory(ctx context.Context, token string, id int, in catalog.CategoryInput) (catalog.Category, error)
	DeleteCategory(ctx context.Context, token string, id int) error
	ListUsers(ctx context.Context, token string) ([]catalog.User, error)
	CreateUser(ctx context.Context, token string, in catalog.UserInput) (catalog.User, error)
	UpdateUser(ctx context.Context, token string, id int, in catalog.UserInput) (catalog.User, error)
	IsEmailAvailable(ctx context.Context, email string) (bool, error)
}

// Principal is the caller's login state.
type Principal interface {
	IsAuthenticated() bool
	IsAdmin() bool
	Token() string
}

var _ Principal = (*auth.Session)(nil)

type Service struct {
	api     API
	catalog *catalog.Catalog
}

func NewService(api API, c *catalog.Catalog) *Service {
	return &Service{api: api, catalog: c}
}

func requireAdmin(p Principal) (string, error) {
	if !p.IsAuthenticated() {
		return "", auth.ErrNotAuthenticated
	}
	if !p.IsAdmin() {
		return "", ErrForbidden
	}
	return p.Token(), nil
}

// nonBlank keeps the entries that are not empty after trimming.
func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ListProducts returns the catalog as the storefront sees it.
func (s *Service) ListProducts(p Principal) ([]catalog.Product, error) {
	if _, err := requireAdmin(p); err != nil {
		return nil, err
	}
	return s.catalog.Products(), nil
}

func (s *Service) CreateProduct(ctx context.Context, p Principal, form validation.ProductForm) (catalog.RawProduct, error) {
	token, err := requireAdmin(p)
	if err != nil {
		return catalog.RawProduct{}, err
	}
	created, err := s.api.CreateProduct(ctx, token, catalog.ProductInput{
		Title:       strings.TrimSpace(form.Title),
		Price:       form.Price,
		Description: form.Description,
		CategoryID:  form.CategoryID,
		Images:      nonBlank(form.Images),
	})
	if err != nil {
		return catalog.RawProduct{}, fmt.Errorf("create product: %w", err)
	}
	s.catalog.Upsert(created)
	log.Ctx(ctx).Info().Str("component", "admin").Int("product_id", created.ID).Msg("product created")
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, p Principal, id int, form validation.ProductUpdateForm) (catalog.RawProduct, error) {
	token, err := requireAdmin(p)
	if err != nil {
		return catalog.RawProduct{}, err
	}
	in := catalog.ProductInput{
		Title:       strings.TrimSpace(form.Title),
		Price:       form.Price,
		Description: form.Description,
		CategoryID:  form.CategoryID,
	}
	if form.Images != nil {
		in.Images = nonBlank(form.Images)
	}
	updated, err := s.api.UpdateProduct(ctx, token, id, in)
	if err != nil {
		return catalog.RawProduct{}, fmt.Errorf("update product %d: %w", id, err)
	}
	s.catalog.Upsert(updated)
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, p Principal, id int) error {
	token, err := requireAdmin(p)
	if err != nil {
		return err
	}
	if err := s.api.DeleteProduct(ctx, token, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.catalog.Remove(id)
	log.Ctx(ctx).Info().Str("component", "admin").Int("product_id", id).Msg("product deleted")
	return nil
}

// ListCategories returns every category from the API, not only the ones the
// storefront shows.
func (s *Service) ListCategories(ctx context.Context, p Principal) ([]catalog.Category, error) {
	if _, err := requireAdmin(p); err != nil {
		return nil, err
	}
	cats, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *Service) CreateCategory(ctx context.Context, p Principal, form validation.CategoryForm) (catalog.Category, error) {
	token, err := requireAdmin(p)
	if err != nil {
		return catalog.Category{}, err
	}
	created, err := s.api.CreateCategory(ctx, token, catalog.CategoryInput{
		Name:  strings.TrimSpace(form.Name),
		Image: form.Image,
	})
	if err != nil {
		return catalog.Category{}, fmt.Errorf("create category: %w", err)
	}
	s.catalog.UpsertCategory(created)
	return created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, p Principal, id int, form validation.CategoryUpdateForm) (catalog.Category, error) {
	token, err := requireAdmin(p)
	if err != nil {
		return catalog.Category{}, err
	}
	updated, err := s.api.UpdateCategory(ctx, token, id, catalog.CategoryInput{
		Name:  strings.TrimSpace(form.Name),
		Image: form.Image,
	})
	if err != nil {
		return catalog.Category{}, fmt.Errorf("update category %d: %w", id, err)
	}
	s.catalog.UpsertCategory(updated)
	return updated, nil
}

func (s *Service) DeleteCategory(ctx context.Context, p Principal, id int) error {
	token, err := requireAdmin(p)
	if err != nil {
		return err
	}
	if err := s.api.DeleteCategory(ctx, token, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	s.catalog.RemoveCategory(id)
	return nil
}

func (s *Service) ListUsers(ctx context.Context, p Principal) ([]catalog.User, error) {
	token, err := requireAdmin(p)
	if err != nil {
		return nil, err
	}
	users, err := s.api.ListUsers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser registers a user after checking that the email is free.
func (s *Service) CreateUser(ctx context.Context, p Principal, form validation.UserForm) (catalog.User, error) {
	token, err := requireAdmin(p)
	if err != nil {
		return catalog.User{}, err
	}
	email := strings.TrimSpace(form.Email)
	ok, err := s.api.IsEmailAvailable(ctx, email)
	if err != nil {
		return catalog.User{}, fmt.Errorf("check email: %w", err)
	}
	if !ok {
		return catalog.User{}, ErrEmailTaken
	}
	avatar := strings.TrimSpace(form.Avatar)
	if avatar == "" {
		avatar = DefaultAvatar
	}
	created, err := s.api.CreateUser(ctx, token, catalog.UserInput{
		Email:    email,
		Name:     strings.TrimSpace(form.Name),
		Password: form.Password,
		Avatar:   avatar,
	})
	if err != nil {
		return catalog.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// UpdateUser sends only the fields that are set.
func (s *Service) UpdateUser(ctx context.Context, p Principal, id int, form validation.UserUpdateForm) (catalog.User, error) {
	token, err := requireAdmin(p)
	if err != nil {
		return catalog.User{}, err
	}
	updated, err := s.api.UpdateUser(ctx, token, id, catalog.UserInput{
		Email:    strings.TrimSpace(form.Email),
		Name:     strings.TrimSpace(form.Name),
		Password: form.Password,
		Avatar:   strings.TrimSpace(form.Avatar),
	})
	if err != nil {
		return catalog.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return updated, nil
}
