package client

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

// Client is the request pipeline: it attaches the bearer token to every
// outbound call, performs at most one refresh-and-retry cycle on a 401, and
// keeps the vault and session consistent with the outcome.
type Client struct {
	http    *resty.Client
	vault   *TokenVault
	storage Storage
	session *Session

	// Coalesces concurrent refresh attempts into one round trip. A Client
	// holds one identity, so a single key suffices.
	refresh singleflight.Group
}

// New builds a client over the given durable storage. baseURL includes the
// API prefix, e.g. "https://host/api".
func New(baseURL string, storage Storage) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{
		http:    httpClient,
		vault:   NewTokenVault(storage),
		storage: storage,
		session: &Session{},
	}
	c.hydrate()
	return c
}

// hydrate restores the session from the vault at process start.
func (c *Client) hydrate() {
	pair, err := c.vault.Tokens()
	if err != nil || pair == nil {
		return
	}
	identity, err := c.vault.Identity()
	if err != nil || identity == nil {
		return
	}
	c.session.set(identity)
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) Vault() *TokenVault {
	return c.vault
}

// do runs one authenticated call. On a 401 it refreshes once and replays the
// call once; a second 401 fails with ErrSessionExpired rather than looping.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	pair, err := c.vault.Tokens()
	if err != nil {
		return err
	}
	if pair == nil {
		return ErrNotAuthenticated
	}

	status, message, err := c.exec(ctx, method, path, body, result, pair.AccessToken)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if status == http.StatusUnauthorized {
		newAccess, err := c.refreshTokens(ctx)
		if err != nil {
			return err
		}

		// The new pair is already persisted; the replay never races a stale token.
		status, message, err = c.exec(ctx, method, path, body, result, newAccess)
		if err != nil {
			return &NetworkError{Err: err}
		}
		if status == http.StatusUnauthorized {
			return ErrSessionExpired
		}
	}

	if status >= 400 {
		return &APIError{Status: status, Message: message}
	}
	return nil
}

// public runs an unauthenticated call (register, login, refresh). A 401 here
// is a real answer, not a stale token, so it never triggers refresh.
func (c *Client) public(ctx context.Context, method, path string, body, result any) error {
	status, message, err := c.exec(ctx, method, path, body, result, "")
	if err != nil {
		return &NetworkError{Err: err}
	}
	if status >= 400 {
		return &APIError{Status: status, Message: message}
	}
	return nil
}

func (c *Client) exec(ctx context.Context, method, path string, body, result any, access string) (int, string, error) {
	req := c.http.R().SetContext(ctx)
	if access != "" {
		req.SetHeader("Authorization", "Bearer "+access)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	var apiErr errorResponse
	req.SetError(&apiErr)

	resp, err := req.Execute(method, path)
	if err != nil {
		return 0, "", err
	}
	return resp.StatusCode(), apiErr.Message, nil
}

// refreshTokens rotates the pair, persisting the new one before returning so
// no caller retries with a stale token. Concurrent callers share one flight.
// Any refresh failure is terminal for the session: the vault is cleared and
// callers get ErrSessionExpired.
func (c *Client) refreshTokens(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		pair, err := c.vault.Tokens()
		if err != nil || pair == nil || pair.RefreshToken == "" {
			c.expireSession()
			return nil, ErrSessionExpired
		}

		var next TokenPair
		status, _, err := c.exec(ctx, http.MethodPost, "/auth/refresh",
			map[string]string{"refresh_token": pair.RefreshToken}, &next, "")
		if err != nil || status >= 400 {
			c.expireSession()
			return nil, ErrSessionExpired
		}

		if err := c.vault.SetTokens(&next); err != nil {
			return nil, err
		}
		return next.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) expireSession() {
	_ = c.vault.Clear()
	c.session.clear()
}
