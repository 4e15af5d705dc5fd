package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client())
}

func TestClient_ListProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode([]RawProduct{
			{ID: 1, Title: "Hat", Price: 12, Category: Category{ID: 2, Name: "Clothes"}, Images: []string{"a"}},
		})
	})

	got, err := c.ListProducts(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Clothes", got[0].Category.Name)
}

func TestClient_NotFoundMapsToSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	})

	_, err := c.GetProduct(context.Background(), 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(User{ID: 7, Email: "a@b.c", Role: "admin"})
	})

	u, err := c.Profile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)

	_, err = c.Profile(context.Background(), "other")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_LoginPostsCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "john@mail.com", body["email"])
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Tokens{AccessToken: "acc", RefreshToken: "ref"})
	})

	tok, err := c.Login(context.Background(), "john@mail.com", "changeme")

	require.NoError(t, err)
	assert.Equal(t, "acc", tok.AccessToken)
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	for range 10 {
		_, err := c.ListCategories(context.Background())
		require.ErrorIs(t, err, ErrUnexpectedStatus)
	}
	assert.Equal(t, gobreaker.StateClosed, c.breaker.State())
}

func TestClient_ServerErrorsOpenBreaker(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	for range 3 {
		_, err := c.ListCategories(context.Background())
		require.Error(t, err)
	}
	_, err := c.ListCategories(context.Background())

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, calls)
}

func TestClient_IsEmailAvailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/is-available", r.URL.Path)
		_, _ = w.Write([]byte(`{"isAvailable":false}`))
	})

	ok, err := c.IsEmailAvailable(context.Background(), "taken@mail.com")

	require.NoError(t, err)
	assert.False(t, ok)
}
