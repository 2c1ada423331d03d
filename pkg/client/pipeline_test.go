package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seedTokens(t *testing.T, c *Client, access, refresh string) {
	t.Helper()
	err := c.vault.SetTokens(&TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  time.Now().Add(15 * time.Minute),
		RefreshExpiresAt: time.Now().Add(168 * time.Hour),
	})
	require.NoError(t, err)
}

func TestDoRefreshesOnceOn401(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "old-refresh", body["refresh_token"])

		json.NewEncoder(w).Encode(TokenPair{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
		})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer new-access" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"error": true, "message": "Invalid or expired token"})
			return
		}
		json.NewEncoder(w).Encode(Identity{ID: "u1", Name: "Ada", Role: "patient"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, NewMemStorage())
	seedTokens(t, c, "stale-access", "old-refresh")

	identity, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", identity.ID)
	require.Equal(t, int32(1), refreshCalls.Load())

	// The rotated pair must be durable before the replay returned.
	pair, err := c.vault.Tokens()
	require.NoError(t, err)
	require.Equal(t, "new-refresh", pair.RefreshToken)
}

func TestDoFailsWithSessionExpiredWhenRefreshRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"error": true, "message": "Invalid refresh token"})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"error": true, "message": "Invalid or expired token"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, NewMemStorage())
	seedTokens(t, c, "stale", "revoked")
	c.session.set(&Identity{ID: "u1"})

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)

	// Terminal failure wipes the vault and the session.
	pair, err := c.vault.Tokens()
	require.NoError(t, err)
	require.Nil(t, pair)
	require.False(t, c.session.IsAuthenticated())
}

func TestDoDoesNotRetryAfterSecond401(t *testing.T) {
	var meCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "still-bad", RefreshToken: "r2"})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"error": true, "message": "Invalid or expired token"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, NewMemStorage())
	seedTokens(t, c, "a", "r")

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)
	require.Equal(t, int32(2), meCalls.Load())
}

func TestConcurrentRequestsShareOneRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		time.Sleep(50 * time.Millisecond)
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "fresh", RefreshToken: "fresh-r"})
	})
	mux.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"error": true, "message": "Invalid or expired token"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": []Appointment{}, "count": 0})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, NewMemStorage())
	seedTokens(t, c, "stale", "r1")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Appointments(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), refreshCalls.Load())
}

func TestDoWithoutStoredTokens(t *testing.T) {
	c := New("http://127.0.0.1:0", NewMemStorage())

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoginAdoptsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(authResponse{
			User:   Identity{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "patient"},
			Tokens: TokenPair{AccessToken: "a1", RefreshToken: "r1"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	storage := NewMemStorage()
	c := New(srv.URL, storage)

	identity, err := c.Login(context.Background(), "ada@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "patient", identity.Role)
	require.True(t, c.session.IsAuthenticated())

	// A second client over the same storage hydrates without a round trip.
	c2 := New(srv.URL, storage)
	require.True(t, c2.Session().IsAuthenticated())
	require.Equal(t, "u1", c2.Session().Identity().ID)
}

func TestLogin401DoesNotTriggerRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"error": true, "message": "Invalid email or password"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, NewMemStorage())

	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid email or password", apiErr.Message)
	require.Equal(t, int32(0), refreshCalls.Load())
}

func TestNetworkFailureIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, NewMemStorage())
	seedTokens(t, c, "a", "r")

	_, err := c.Appointments(context.Background())
	require.True(t, IsNetworkError(err))
	require.False(t, errors.Is(err, ErrSessionExpired))
}
