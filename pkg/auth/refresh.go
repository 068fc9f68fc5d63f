package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/api"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/secrets"
)

// ErrAuth marks a dead session: no refresh token, or the remote
// rejected it. Callers route the viewer back to login.
var ErrAuth = errors.New("session invalid, login required")

// Refresher exchanges the stored refresh token for a new pair through
// the transport, bypassing the request pipeline so a refresh can never
// trigger another refresh.
//
// Fail closed: any failure wipes the locally stored session.
type Refresher struct {
	transport *api.Transport
	session   *secrets.Session
}

func NewRefresher(transport *api.Transport, session *secrets.Session) *Refresher {
	return &Refresher{transport: transport, session: session}
}

// Refresh implements api.Refresher.
func (r *Refresher) Refresh(ctx context.Context) (data.Token, error) {
	refreshToken, err := r.session.RefreshToken(ctx)
	if err != nil {
		return data.Token{}, r.failClosed(ctx, fmt.Errorf("read refresh token: %w", err))
	}
	if refreshToken == "" {
		return data.Token{}, r.failClosed(ctx, errors.New("no refresh token stored"))
	}

	raw, err := r.transport.Do(ctx, http.MethodPost, "/auth/refresh", nil, refreshToken)
	if err != nil {
		return data.Token{}, r.failClosed(ctx, err)
	}

	var pair data.Token
	if err := json.Unmarshal(raw, &pair); err != nil {
		return data.Token{}, r.failClosed(ctx, fmt.Errorf("decode token pair: %w", err))
	}
	if pair.AccessToken == "" {
		return data.Token{}, r.failClosed(ctx, errors.New("refresh returned no access token"))
	}

	if err := r.session.SetToken(ctx, pair); err != nil {
		return data.Token{}, r.failClosed(ctx, fmt.Errorf("persist token pair: %w", err))
	}

	return pair, nil
}

// failClosed wipes the stored session and returns ErrAuth. The cause
// is logged only.
func (r *Refresher) failClosed(ctx context.Context, cause error) error {
	log.Printf("auth: refresh failed: %v", cause)
	if err := r.session.Clear(ctx); err != nil {
		log.Printf("auth: session wipe failed: %v", err)
	}
	return ErrAuth
}
