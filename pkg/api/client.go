package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

// TokenSource yields the current access token. An empty string means
// the viewer is unauthenticated; the call then goes out bare.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Refresher exchanges stored credentials for a fresh token pair.
type Refresher interface {
	Refresh(ctx context.Context) (data.Token, error)
}

// DefaultRetryBudget is the number of refresh-and-retry rounds one
// logical call gets. The budget is per call, never carried across
// calls.
const DefaultRetryBudget = 1

// Client is the request pipeline: it attaches the current access
// token, executes the call, and on a credential rejection refreshes
// the token and retries, bounded by the retry budget.
type Client struct {
	transport *Transport
	tokens    TokenSource
	refresher Refresher
	budget    int
}

type Option func(*Client)

// WithRetryBudget overrides the per-call refresh budget.
func WithRetryBudget(n int) Option {
	return func(c *Client) { c.budget = n }
}

func NewClient(transport *Transport, tokens TokenSource, refresher Refresher, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		tokens:    tokens,
		refresher: refresher,
		budget:    DefaultRetryBudget,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get executes an authenticated GET and decodes the body into out.
func (c *Client) Get(ctx context.Context, route string, out any) error {
	return c.call(ctx, http.MethodGet, route, nil, out)
}

// Post executes an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, route string, body, out any) error {
	return c.call(ctx, http.MethodPost, route, body, out)
}

func (c *Client) call(ctx context.Context, method, route string, body, out any) error {
	var token string
	if c.tokens != nil {
		t, err := c.tokens.AccessToken(ctx)
		if err != nil {
			log.Printf("api: read access token: %v", err)
		} else {
			token = t
		}
	}

	refreshes := 0
	for {
		raw, err := c.transport.Do(ctx, method, route, body, token)
		if err == nil {
			if out == nil {
				return nil
			}
			if derr := json.Unmarshal(raw, out); derr != nil {
				log.Printf("api: %s %s: decode: %v", method, route, derr)
				return ErrRequestFailed
			}
			return nil
		}

		if token != "" && refreshes < c.budget && isAuthStatus(err) && c.refresher != nil {
			refreshes++
			pair, rerr := c.refresher.Refresh(ctx)
			if rerr != nil {
				// Fail-closed: the session is gone, surface the auth error.
				log.Printf("api: %s %s: refresh: %v", method, route, rerr)
				return rerr
			}
			token = pair.AccessToken
			continue
		}

		log.Printf("api: %s %s: %v", method, route, err)
		return ErrRequestFailed
	}
}
