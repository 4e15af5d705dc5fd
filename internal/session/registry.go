// Package session maps browser sessions to their cart and login state.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/imrishuroy/go-storefront/internal/auth"
	"github.com/imrishuroy/go-storefront/internal/cart"
)

// Header carries the session id between the browser and the API.
const Header = "X-Session-Id"

// DefaultIdleTTL is how long an untouched session is kept in memory.
const DefaultIdleTTL = 2 * time.Hour

// Session is one browser session. Fields must only be touched inside
// Registry.WithCart.
type Session struct {
	ID   string
	Cart *cart.Store
	Auth *auth.Session

	mu       sync.Mutex
	restored bool
	lastSeen time.Time // guarded by Registry.mu
}

// Registry owns every live session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	api      auth.Authenticator
	store    auth.SessionStore
	idleTTL  time.Duration
	nowFunc  func() time.Time
}

func NewRegistry(api auth.Authenticator, store auth.SessionStore, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Registry{
		sessions: map[string]*Session{},
		api:      api,
		store:    store,
		idleTTL:  idleTTL,
		nowFunc:  time.Now,
	}
}

// NewID returns a fresh session id.
func NewID() string { return uuid.NewString() }

// WithCart runs fn with exclusive access to the session id, creating it (and
// restoring any persisted login) on first use.
func (r *Registry) WithCart(ctx context.Context, id string, fn func(*Session) error) error {
	s := r.acquire(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.restored {
		s.restored = true
		if err := s.Auth.Restore(ctx); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "session").Str("session_id", id).Msg("restore login failed")
		}
	}
	return fn(s)
}

func (r *Registry) acquire(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		// touched before r.mu is released so Sweep cannot evict it on the way to fn
		s.lastSeen = r.nowFunc()
		return s
	}
	s := &Session{
		ID:       id,
		Cart:     cart.NewStore(),
		Auth:     auth.NewSession(id, r.api, r.store),
		lastSeen: r.nowFunc(),
	}
	r.sessions[id] = s
	return s
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were
// removed. Persisted logins survive and are restored on the next request.
func (r *Registry) Sweep() int {
	cutoff := r.nowFunc().Add(-r.idleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if !s.lastSeen.Before(cutoff) || !s.mu.TryLock() {
			continue
		}
		s.mu.Unlock()
		delete(r.sessions, id)
		removed++
	}
	return removed
}
