package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/faregate/internal/auth"
	"github.com/dharmasatrya/faregate/internal/models"
	"github.com/dharmasatrya/faregate/internal/upstream"
)

func TestPasswordGrantFetcher(t *testing.T) {
	t.Run("posts password grant with subscription key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, upstream.TokenPath, r.URL.Path)
			assert.Equal(t, "sub-key", r.Header.Get(upstream.SubscriptionKeyHeader))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "password", r.PostForm.Get("grant_type"))
			assert.Equal(t, "agent", r.PostForm.Get("username"))
			assert.Equal(t, "s3cret", r.PostForm.Get("password"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"abc123","token_type":"bearer","expires_in":3600}`))
		}))
		defer srv.Close()

		f := auth.NewPasswordGrantFetcher(auth.FetcherConfig{
			BaseURL: srv.URL,
			Credentials: auth.Credentials{
				Username:        "agent",
				Password:        "s3cret",
				SubscriptionKey: "sub-key",
			},
		})

		cred, err := f.FetchToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc123", cred.AccessToken)
		assert.Equal(t, "bearer", cred.TokenType)
		assert.Equal(t, 3600, cred.ExpiresIn)
	})

	t.Run("rejection is an AuthError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer srv.Close()

		f := auth.NewPasswordGrantFetcher(auth.FetcherConfig{
			BaseURL:     srv.URL,
			Credentials: auth.Credentials{Username: "a", Password: "b", SubscriptionKey: "c"},
		})

		_, err := f.FetchToken(context.Background())
		var authErr *models.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("missing credentials never reach the network", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		f := auth.NewPasswordGrantFetcher(auth.FetcherConfig{
			BaseURL:     srv.URL,
			Credentials: auth.Credentials{Username: "a"},
		})

		_, err := f.FetchToken(context.Background())
		var cfgErr *models.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, []string{"password", "subscription key"}, cfgErr.Missing)
		assert.False(t, called)
	})
}
