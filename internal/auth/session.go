// Package auth holds the per-browser login state: the bearer token issued by
// the catalog API and the profile behind it.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/imrishuroy/go-storefront/internal/catalog"
)

// Authenticator is the catalog API surface needed to log in.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (catalog.Tokens, error)
	Profile(ctx context.Context, token string) (catalog.User, error)
}

// Session is the login state of one browser session. It is not safe for
// concurrent use; the session registry serializes access.
type Session struct {
	id      string
	api     Authenticator
	store   SessionStore
	token   string
	user    *catalog.User
	nowFunc func() time.Time
}

func NewSession(id string, api Authenticator, store SessionStore) *Session {
	return &Session{id: id, api: api, store: store, nowFunc: time.Now}
}

// Login exchanges credentials for a token, loads the profile and persists the
// result. On any failure the session is left unchanged.
func (s *Session) Login(ctx context.Context, email, password string) (catalog.User, error) {
	tokens, err := s.api.Login(ctx, email, password)
	if err != nil {
		return catalog.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	user, err := s.api.Profile(ctx, tokens.AccessToken)
	if err != nil {
		return catalog.User{}, fmt.Errorf("%w: %w", ErrProfile, err)
	}

	now := s.nowFunc()
	expires := now.Add(DefaultTTL)
	if exp, ok := tokenExpiry(tokens.AccessToken); ok {
		expires = exp
	}
	rec := Record{
		SessionID: s.id,
		Token:     tokens.AccessToken,
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Avatar:    user.Avatar,
		CreatedAt: now,
		ExpiresAt: expires.Unix(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return catalog.User{}, fmt.Errorf("persist session: %w", err)
	}

	s.token = tokens.AccessToken
	s.user = &user
	log.Ctx(ctx).Info().Str("component", "auth").Int("user_id", user.ID).Str("role", user.Role).Msg("logged in")
	return user, nil
}

// Logout clears the in-memory state and the persisted record.
func (s *Session) Logout(ctx context.Context) error {
	s.token = ""
	s.user = nil
	if err := s.store.Delete(ctx, s.id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Restore reloads a persisted login. Expired records are deleted and leave the
// session logged out.
func (s *Session) Restore(ctx context.Context) error {
	rec, err := s.store.Load(ctx, s.id)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if rec == nil {
		return nil
	}
	if rec.ExpiresAt <= s.nowFunc().Unix() {
		return s.store.Delete(ctx, s.id)
	}
	s.token = rec.Token
	s.user = &catalog.User{
		ID:     rec.UserID,
		Email:  rec.Email,
		Name:   rec.Name,
		Role:   rec.Role,
		Avatar: rec.Avatar,
	}
	return nil
}

func (s *Session) Token() string { return s.token }

// User returns the logged-in profile, or nil.
func (s *Session) User() *catalog.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a token is held and, if it is a JWT with an
// exp claim, not yet expired.
func (s *Session) IsAuthenticated() bool {
	if s.token == "" {
		return false
	}
	if exp, ok := tokenExpiry(s.token); ok {
		return s.nowFunc().Before(exp)
	}
	return true
}

func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.user != nil && s.user.Role == RoleAdmin
}

// tokenExpiry reads the exp claim without verifying the signature; the token
// is only ever checked by the catalog API that issued it.
func tokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
