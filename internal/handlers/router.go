package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/imrishuroy/go-storefront/internal/admin"
	"github.com/imrishuroy/go-storefront/internal/catalog"
	"github.com/imrishuroy/go-storefront/internal/checkout"
	"github.com/imrishuroy/go-storefront/internal/orders"
	"github.com/imrishuroy/go-storefront/internal/ratelimit"
	"github.com/imrishuroy/go-storefront/internal/session"
)

// HandlerConfig groups the dependencies of the HTTP API.
type HandlerConfig struct {
	Catalog      *catalog.Catalog
	Loader       *catalog.Loader // optional; used to load the catalog on first read
	Sessions     *session.Registry
	Admin        *admin.Service
	Checkout     *checkout.Service
	Orders       OrderReader
	LoginLimiter *ratelimit.Limiter // optional
	Validate     *validatorv10.Validate

	// TrustedProxies may set X-Forwarded-For; nil trusts none.
	TrustedProxies []string
	// TrustedPlatform names a header the deployment sets itself with the
	// caller's address. It wins over every other source.
	TrustedPlatform string
}

// OrderReader loads a stored order.
type OrderReader interface {
	Get(ctx context.Context, orderID string) (*orders.Order, error)
}

type handler struct {
	HandlerConfig
}

// NewRouter builds the gin engine with every storefront route.
func NewRouter(cfg HandlerConfig) *gin.Engine {
	h := &handler{HandlerConfig: cfg}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.TrustedPlatform = cfg.TrustedPlatform
	// the logger sits outside Recovery so panics still get an access line
	r.Use(RequestLogger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "catalog_loaded": cfg.Catalog.Loaded()})
	})

	r.GET("/products", h.listProducts)
	r.GET("/products/:id", h.getProduct)
	r.GET("/categories", h.listCategories)

	s := r.Group("/", SessionMiddleware())

	s.GET("/cart", h.getCart)
	s.POST("/cart/items", h.addCartItem)
	s.PATCH("/cart/items/:id", h.updateCartItem)
	s.DELETE("/cart/items/:id", h.removeCartItem)
	s.DELETE("/cart", h.clearCart)

	login := []gin.HandlerFunc{h.login}
	if cfg.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{cfg.LoginLimiter.Middleware()}, login...)
	}
	s.POST("/auth/login", login...)
	s.POST("/auth/logout", h.logout)
	s.GET("/auth/me", h.me)

	a := s.Group("/admin")
	a.GET("/products", h.adminListProducts)
	a.POST("/products", h.adminCreateProduct)
	a.PUT("/products/:id", h.adminUpdateProduct)
	a.DELETE("/products/:id", h.adminDeleteProduct)
	a.GET("/categories", h.adminListCategories)
	a.POST("/categories", h.adminCreateCategory)
	a.PUT("/categories/:id", h.adminUpdateCategory)
	a.DELETE("/categories/:id", h.adminDeleteCategory)
	a.GET("/users", h.adminListUsers)
	a.POST("/users", h.adminCreateUser)
	a.PUT("/users/:id", h.adminUpdateUser)
	a.POST("/catalog/refresh", h.adminRefreshCatalog)

	s.POST("/checkout", h.checkout)
	s.GET("/orders/:id", h.getOrder)

	return r
}
