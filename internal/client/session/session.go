// Package session holds the credential context shared by the HTTP client and
// the managers. One Session is created at start-up and passed explicitly to
// every component that needs the current bearer token.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/juridik/internal/client/models"
	"github.com/dmitrijs2005/juridik/internal/client/tokenstore"
	"github.com/dmitrijs2005/juridik/internal/common"
)

type Session struct {
	store *tokenstore.Store

	mu           sync.RWMutex
	defaultToken string
}

func New(store *tokenstore.Store) *Session {
	return &Session{store: store}
}

// Token returns the credential to present: the in-memory default when set,
// else the persisted access token.
func (s *Session) Token(ctx context.Context) (string, bool) {
	s.mu.RLock()
	tok := s.defaultToken
	s.mu.RUnlock()

	if tok != "" {
		return tok, true
	}
	return s.store.Get(ctx, common.AccessTokenKey)
}

// StoredToken reads the persisted access token, ignoring the default.
func (s *Session) StoredToken(ctx context.Context) (string, bool) {
	return s.store.Get(ctx, common.AccessTokenKey)
}

func (s *Session) RefreshToken(ctx context.Context) (string, bool) {
	return s.store.Get(ctx, common.RefreshTokenKey)
}

func (s *Session) SetDefault(token string) {
	s.mu.Lock()
	s.defaultToken = token
	s.mu.Unlock()
}

func (s *Session) ClearDefault() {
	s.SetDefault("")
}

// Persist stores c and installs its access token as the default. An empty
// refresh token leaves the stored one untouched. A failed write is returned
// but the default is installed regardless, so the running process stays
// signed in.
func (s *Session) Persist(ctx context.Context, c models.Credential) error {
	s.SetDefault(c.AccessToken)

	if err := s.store.Set(ctx, common.AccessTokenKey, c.AccessToken); err != nil {
		return err
	}
	if c.RefreshToken != "" {
		if err := s.store.Set(ctx, common.RefreshTokenKey, c.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

// Forget drops the default and deletes both persisted tokens.
func (s *Session) Forget(ctx context.Context) {
	s.ClearDefault()
	s.store.Clear(ctx)
}
