package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

// Session persists and restores the viewer's identity through the
// secret store: user profile as JSON plus the opaque token pair.
type Session struct {
	store Store
}

func NewSession(store Store) *Session {
	return &Session{store: store}
}

// Save writes whatever parts of the session are present. A nil user or
// empty token leaves the stored value untouched, mirroring a
// tokens-only refresh.
func (s *Session) Save(ctx context.Context, user *data.User, token data.Token) error {
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		if err := s.store.Set(ctx, KeyUser, string(raw)); err != nil {
			return err
		}
	}
	if token.AccessToken != "" {
		if err := s.store.Set(ctx, KeyAccessToken, token.AccessToken); err != nil {
			return err
		}
	}
	if token.RefreshToken != "" {
		if err := s.store.Set(ctx, KeyRefreshToken, token.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

// SetToken persists a fresh token pair after a refresh.
func (s *Session) SetToken(ctx context.Context, token data.Token) error {
	return s.Save(ctx, nil, token)
}

// Load restores the stored session. Absent pieces come back as nil
// user / empty tokens, never an error.
func (s *Session) Load(ctx context.Context) (*data.User, data.Token, error) {
	rawUser, err := s.store.Get(ctx, KeyUser)
	if err != nil {
		return nil, data.Token{}, err
	}
	access, err := s.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return nil, data.Token{}, err
	}
	refresh, err := s.store.Get(ctx, KeyRefreshToken)
	if err != nil {
		return nil, data.Token{}, err
	}

	var user *data.User
	if rawUser != "" {
		user = &data.User{}
		if err := json.Unmarshal([]byte(rawUser), user); err != nil {
			// A corrupt profile does not invalidate the tokens.
			user = nil
		}
	}

	return user, data.Token{AccessToken: access, RefreshToken: refresh}, nil
}

// Clear wipes the whole session: user and both tokens.
func (s *Session) Clear(ctx context.Context) error {
	for _, key := range []string{KeyUser, KeyAccessToken, KeyRefreshToken} {
		if err := s.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// AccessToken satisfies the request pipeline's TokenSource.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	return s.store.Get(ctx, KeyAccessToken)
}

// RefreshToken returns the stored refresh credential.
func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	return s.store.Get(ctx, KeyRefreshToken)
}
