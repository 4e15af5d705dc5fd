package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-storefront/internal/auth"
	"github.com/imrishuroy/go-storefront/internal/cart"
	"github.com/imrishuroy/go-storefront/internal/catalog"
)

type noAuth struct{}

func (noAuth) Login(context.Context, string, string) (catalog.Tokens, error) {
	return catalog.Tokens{}, nil
}

func (noAuth) Profile(context.Context, string) (catalog.User, error) {
	return catalog.User{}, nil
}

func TestRegistry_SeparateCartsPerSession(t *testing.T) {
	r := NewRegistry(noAuth{}, auth.NewMemorySessionStore(), 0)
	ctx := context.Background()

	require.NoError(t, r.WithCart(ctx, "a", func(s *Session) error {
		s.Cart.AddToCart(cart.Item{ID: 1, Price: 5})
		return nil
	}))
	require.NoError(t, r.WithCart(ctx, "b", func(s *Session) error {
		assert.Equal(t, 0, s.Cart.Len())
		return nil
	}))
	require.NoError(t, r.WithCart(ctx, "a", func(s *Session) error {
		assert.Equal(t, 1, s.Cart.TotalItemCount())
		return nil
	}))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_SerializesAccess(t *testing.T) {
	r := NewRegistry(noAuth{}, auth.NewMemorySessionStore(), 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.WithCart(ctx, "shared", func(s *Session) error {
				s.Cart.AddToCart(cart.Item{ID: 7, Price: 1})
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, r.WithCart(ctx, "shared", func(s *Session) error {
		line, ok := s.Cart.Get(7)
		require.True(t, ok)
		assert.Equal(t, 50, line.Quantity)
		return nil
	}))
}

func TestRegistry_RestoresPersistedLogin(t *testing.T) {
	store := auth.NewMemorySessionStore()
	require.NoError(t, store.Save(context.Background(), auth.Record{
		SessionID: "s-1",
		Token:     "opaque",
		UserID:    1,
		Role:      auth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}))
	r := NewRegistry(noAuth{}, store, 0)

	require.NoError(t, r.WithCart(context.Background(), "s-1", func(s *Session) error {
		assert.True(t, s.Auth.IsAdmin())
		return nil
	}))
}

func TestRegistry_SweepEvictsIdle(t *testing.T) {
	r := NewRegistry(noAuth{}, auth.NewMemorySessionStore(), time.Minute)
	now := time.Now()
	r.nowFunc = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, r.WithCart(ctx, "old", func(*Session) error { return nil }))
	now = now.Add(2 * time.Minute)
	require.NoError(t, r.WithCart(ctx, "new", func(*Session) error { return nil }))

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SweepKeepsSessionBeingAcquired(t *testing.T) {
	r := NewRegistry(noAuth{}, auth.NewMemorySessionStore(), time.Minute)
	now := time.Now()
	r.nowFunc = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, r.WithCart(ctx, "a", func(s *Session) error {
		s.Cart.AddToCart(cart.Item{ID: 1, Price: 5})
		return nil
	}))
	now = now.Add(2 * time.Minute)

	// a request has looked the session up but not yet locked it
	held := r.acquire("a")
	assert.Equal(t, 0, r.Sweep())

	require.NoError(t, r.WithCart(ctx, "a", func(s *Session) error {
		assert.Same(t, held, s)
		s.Cart.AddToCart(cart.Item{ID: 2, Price: 5})
		return nil
	}))
	require.NoError(t, r.WithCart(ctx, "a", func(s *Session) error {
		assert.Equal(t, 2, s.Cart.Len())
		return nil
	}))
}

func TestRegistry_SweepSkipsSessionInUse(t *testing.T) {
	r := NewRegistry(noAuth{}, auth.NewMemorySessionStore(), time.Minute)
	now := time.Now()
	r.nowFunc = func() time.Time { return now }

	require.NoError(t, r.WithCart(context.Background(), "busy", func(s *Session) error {
		now = now.Add(2 * time.Minute)
		assert.Equal(t, 0, r.Sweep())
		return nil
	}))
	assert.Equal(t, 1, r.Len())
}
