package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regrada-ai/regrada-auth/internal/config"
	"github.com/regrada-ai/regrada-auth/internal/storage"
	"github.com/regrada-ai/regrada-auth/internal/storage/memory"
)

func testConfig(domain string) *config.Config {
	return &config.Config{
		ClientID:       "client-123",
		CognitoDomain:  domain,
		RedirectSignIn: "http://localhost:3000/callback",
	}
}

func newTestController(t *testing.T, domain string) (*Controller, *storage.TokenStore) {
	t.Helper()
	store := storage.NewTokenStore(memory.NewBackend(), "session-1")
	ctrl := NewController(testConfig(domain), NewMockIdentity(""), http.DefaultClient).WithStore(store)
	return ctrl, store
}

type recordingNavigator struct {
	targets []string
}

func (n *recordingNavigator) Redirect(target string) {
	n.targets = append(n.targets, target)
}

func readAll(t *testing.T, store *storage.TokenStore) map[storage.Field]string {
	t.Helper()
	out := make(map[storage.Field]string)
	for _, field := range []storage.Field{storage.FieldIDToken, storage.FieldAccessToken, storage.FieldRefreshToken} {
		value, present, err := store.Read(context.Background(), field)
		require.NoError(t, err)
		if present {
			out[field] = value
		}
	}
	return out
}

func TestFederatedSignInURL(t *testing.T) {
	t.Parallel()

	ctrl := NewController(testConfig("auth.example.com"), NewMockIdentity(""), nil)
	raw := ctrl.FederatedSignInURL()

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "https", parsed.Scheme)
	require.Equal(t, "auth.example.com", parsed.Host)
	require.Equal(t, "/oauth2/authorize", parsed.Path)

	require.Equal(t, url.Values{
		"identity_provider": {"Google"},
		"redirect_uri":      {"http://localhost:3000/callback"},
		"response_type":     {"code"},
		"client_id":         {"client-123"},
		"scope":             {"openid"},
	}, parsed.Query())

	nav := &recordingNavigator{}
	ctrl.InitiateFederatedSignIn(nav)
	require.Equal(t, []string{raw}, nav.targets)
}

func TestExchangeAuthorizationCode(t *testing.T) {
	t.Parallel()

	t.Run("success stores all three tokens", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/oauth2/token", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			assert.Equal(t, "client-123", r.PostForm.Get("client_id"))
			assert.Equal(t, "abc123", r.PostForm.Get("code"))
			assert.Equal(t, "http://localhost:3000/callback", r.PostForm.Get("redirect_uri"))
			_, _, hasBasic := r.BasicAuth()
			assert.False(t, hasBasic)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id_token":"A","access_token":"B","refresh_token":"C","token_type":"Bearer"}`))
		}))
		defer srv.Close()

		ctrl, store := newTestController(t, srv.URL)
		tokens, err := ctrl.ExchangeAuthorizationCode(context.Background(), "abc123")
		require.NoError(t, err)
		require.Equal(t, storage.TokenSet{IDToken: "A", AccessToken: "B", RefreshToken: "C"}, tokens)

		require.Equal(t, map[storage.Field]string{
			storage.FieldIDToken:      "A",
			storage.FieldAccessToken:  "B",
			storage.FieldRefreshToken: "C",
		}, readAll(t, store))
	})

	t.Run("absent fields default to empty", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id_token":"A"}`))
		}))
		defer srv.Close()

		ctrl, store := newTestController(t, srv.URL)
		tokens, err := ctrl.ExchangeAuthorizationCode(context.Background(), "code")
		require.NoError(t, err)
		require.Equal(t, storage.TokenSet{IDToken: "A"}, tokens)

		require.Equal(t, map[storage.Field]string{
			storage.FieldIDToken:      "A",
			storage.FieldAccessToken:  "",
			storage.FieldRefreshToken: "",
		}, readAll(t, store))
	})

	t.Run("provider error leaves store unchanged", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"code already used"}`))
		}))
		defer srv.Close()

		ctrl, store := newTestController(t, srv.URL)
		_, err := ctrl.ExchangeAuthorizationCode(context.Background(), "xyz")
		require.ErrorIs(t, err, ErrTokenExchangeFailed)
		require.Equal(t, "invalid_grant", err.Error())

		var exErr *TokenExchangeError
		require.True(t, errors.As(err, &exErr))
		require.Equal(t, http.StatusBadRequest, exErr.StatusCode)
		require.Equal(t, "invalid_grant", exErr.Code)
		require.Equal(t, "code already used", exErr.Description)
		require.Equal(t, "invalid_grant", ProviderCode(err))

		require.Empty(t, readAll(t, store))
	})

	t.Run("unparseable error body uses generic message", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		}))
		defer srv.Close()

		ctrl, store := newTestController(t, srv.URL)
		_, err := ctrl.ExchangeAuthorizationCode(context.Background(), "xyz")
		require.ErrorIs(t, err, ErrTokenExchangeFailed)
		require.Equal(t, "Failed to exchange code for tokens", err.Error())
		require.Empty(t, readAll(t, store))
	})

	t.Run("network failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		ctrl, store := newTestController(t, srv.URL)
		_, err := ctrl.ExchangeAuthorizationCode(context.Background(), "xyz")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrTokenExchangeFailed)
		require.Empty(t, readAll(t, store))
	})

	t.Run("client secret is sent with basic auth", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client-123", user)
			assert.Equal(t, "s3cret", pass)
			_, _ = w.Write([]byte(`{"id_token":"A","access_token":"B","refresh_token":"C"}`))
		}))
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.ClientSecret = "s3cret"
		store := storage.NewTokenStore(memory.NewBackend(), "s")
		ctrl := NewController(cfg, NewMockIdentity(""), srv.Client()).WithStore(store)

		_, err := ctrl.ExchangeAuthorizationCode(context.Background(), "code")
		require.NoError(t, err)
	})
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, store *storage.TokenStore) {
		t.Helper()
		require.NoError(t, store.Save(context.Background(), storage.TokenSet{
			IDToken:      "A",
			AccessToken:  "B",
			RefreshToken: "C",
		}))
	}

	t.Run("revokes refresh token then clears", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			assert.Equal(t, "/oauth2/revoke", r.URL.Path)
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "C", r.PostForm.Get("token"))
			assert.Equal(t, "client-123", r.PostForm.Get("client_id"))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ctrl, store := newTestController(t, srv.URL)
		seed(t, store)

		ctrl.SignOut(context.Background())
		require.EqualValues(t, 1, calls.Load())
		require.Empty(t, readAll(t, store))
	})

	t.Run("non-2xx revocation still clears", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		ctrl, store := newTestController(t, srv.URL)
		seed(t, store)

		ctrl.SignOut(context.Background())
		require.Empty(t, readAll(t, store))
	})

	t.Run("network failure still clears", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		ctrl, store := newTestController(t, srv.URL)
		seed(t, store)

		ctrl.SignOut(context.Background())
		require.Empty(t, readAll(t, store))
	})

	t.Run("no refresh token skips revocation", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		ctrl, store := newTestController(t, srv.URL)
		require.NoError(t, store.Save(context.Background(), storage.TokenSet{AccessToken: "B"}))

		ctrl.SignOut(context.Background())
		require.Zero(t, calls.Load())
		require.Empty(t, readAll(t, store))
	})
}

func TestRevoke(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	ctrl, _ := newTestController(t, srv.URL)
	err := ctrl.revoke(context.Background(), "token")
	require.ErrorIs(t, err, ErrRevocationFailed)
	require.Contains(t, err.Error(), "status 400")
}
