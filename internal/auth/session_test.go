package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-storefront/internal/catalog"
)

type fakeAuthAPI struct {
	token      string
	user       catalog.User
	loginErr   error
	profileErr error
}

func (f *fakeAuthAPI) Login(_ context.Context, email, password string) (catalog.Tokens, error) {
	if f.loginErr != nil {
		return catalog.Tokens{}, f.loginErr
	}
	return catalog.Tokens{AccessToken: f.token}, nil
}

func (f *fakeAuthAPI) Profile(_ context.Context, token string) (catalog.User, error) {
	if f.profileErr != nil {
		return catalog.User{}, f.profileErr
	}
	return f.user, nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 1, "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestSession_LoginAdmin(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	api := &fakeAuthAPI{
		token: signedToken(t, exp),
		user:  catalog.User{ID: 1, Email: "admin@mail.com", Role: RoleAdmin},
	}
	store := NewMemorySessionStore()
	s := NewSession("sess-1", api, store)

	u, err := s.Login(context.Background(), "admin@mail.com", "admin123")

	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())

	rec, err := store.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, exp.Unix(), rec.ExpiresAt)
}

func TestSession_LoginFailureLeavesStateUnchanged(t *testing.T) {
	api := &fakeAuthAPI{loginErr: &catalog.APIError{Status: 401}}
	s := NewSession("sess-1", api, NewMemorySessionStore())

	_, err := s.Login(context.Background(), "x@y.z", "bad")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, catalog.ErrUnauthorized)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestSession_ProfileFailure(t *testing.T) {
	api := &fakeAuthAPI{token: "opaque", profileErr: errors.New("down")}
	s := NewSession("sess-1", api, NewMemorySessionStore())

	_, err := s.Login(context.Background(), "x@y.z", "pw")

	assert.ErrorIs(t, err, ErrProfile)
	assert.Empty(t, s.Token())
}

func TestSession_OpaqueTokenIsAuthenticated(t *testing.T) {
	api := &fakeAuthAPI{token: "opaque", user: catalog.User{ID: 2, Role: "customer"}}
	s := NewSession("sess-1", api, NewMemorySessionStore())

	_, err := s.Login(context.Background(), "c@mail.com", "pw")

	require.NoError(t, err)
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
}

func TestSession_ExpiredTokenIsNotAuthenticated(t *testing.T) {
	api := &fakeAuthAPI{
		token: signedToken(t, time.Now().Add(-time.Minute)),
		user:  catalog.User{ID: 1, Role: RoleAdmin},
	}
	s := NewSession("sess-1", api, NewMemorySessionStore())

	_, err := s.Login(context.Background(), "a@b.c", "pw")

	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
}

func TestSession_LogoutAndRestore(t *testing.T) {
	store := NewMemorySessionStore()
	api := &fakeAuthAPI{token: "opaque", user: catalog.User{ID: 3, Email: "u@mail.com", Role: "customer"}}

	s := NewSession("sess-1", api, store)
	_, err := s.Login(context.Background(), "u@mail.com", "pw")
	require.NoError(t, err)

	restored := NewSession("sess-1", api, store)
	require.NoError(t, restored.Restore(context.Background()))
	require.NotNil(t, restored.User())
	assert.Equal(t, "u@mail.com", restored.User().Email)

	require.NoError(t, restored.Logout(context.Background()))
	assert.False(t, restored.IsAuthenticated())

	again := NewSession("sess-1", api, store)
	require.NoError(t, again.Restore(context.Background()))
	assert.False(t, again.IsAuthenticated())
}

func TestSession_RestoreDropsExpiredRecord(t *testing.T) {
	store := NewMemorySessionStore()
	require.NoError(t, store.Save(context.Background(), Record{
		SessionID: "sess-1",
		Token:     "opaque",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}))

	s := NewSession("sess-1", &fakeAuthAPI{}, store)
	require.NoError(t, s.Restore(context.Background()))

	assert.False(t, s.IsAuthenticated())
	rec, err := store.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}
