package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront/internal/auth"
	"github.com/imrishuroy/go-storefront/internal/catalog"
	"github.com/imrishuroy/go-storefront/internal/session"
	"github.com/imrishuroy/go-storefront/internal/validation"
)

func (h *handler) login(c *gin.Context) {
	var req validation.LoginRequest
	if err := validation.BindAndValidate(c, &req, h.Validate); err != nil {
		return
	}
	var (
		user    catalog.User
		isAdmin bool
	)
	err := h.withSession(c, func(s *session.Session) error {
		u, err := s.Auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			return err
		}
		user, isAdmin = u, s.Auth.IsAdmin()
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "is_admin": isAdmin})
}

func (h *handler) logout(c *gin.Context) {
	err := h.withSession(c, func(s *session.Session) error {
		return s.Auth.Logout(c.Request.Context())
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) me(c *gin.Context) {
	var (
		user    *catalog.User
		isAdmin bool
	)
	err := h.withSession(c, func(s *session.Session) error {
		if !s.Auth.IsAuthenticated() {
			return auth.ErrNotAuthenticated
		}
		user, isAdmin = s.Auth.User(), s.Auth.IsAdmin()
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "is_admin": isAdmin})
}
