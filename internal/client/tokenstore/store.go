package tokenstore

import (
	"context"
	"io"

	"github.com/dmitrijs2005/juridik/internal/common"
	"github.com/dmitrijs2005/juridik/internal/logging"
)

// Store is the fault-tolerant view over a Backend used by the rest of the
// client.
type Store struct {
	backend Backend
	kind    string
	log     logging.Logger
}

func NewStore(backend Backend, kind string, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{backend: backend, kind: kind, log: log.With("token_store", kind)}
}

// Kind names the selected backend ("secure", "sqlite" or "memory").
func (s *Store) Kind() string { return s.kind }

// Get returns the stored value and whether it was present. Storage faults
// are logged and reported as absent.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	v, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "token store read failed", "key", key, "error", err)
		return "", false
	}
	if len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.backend.Set(ctx, key, []byte(value)); err != nil {
		s.log.Warn(ctx, "token store write failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Delete never fails observably.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "token store delete failed", "key", key, "error", err)
	}
}

// Clear removes both session credentials, in one step where the backend
// supports it.
func (s *Store) Clear(ctx context.Context) {
	bd, ok := s.backend.(BatchDeleter)
	if !ok {
		s.Delete(ctx, common.AccessTokenKey)
		s.Delete(ctx, common.RefreshTokenKey)
		return
	}
	if err := bd.DeleteKeys(ctx, common.AccessTokenKey, common.RefreshTokenKey); err != nil {
		s.log.Warn(ctx, "token store clear failed", "error", err)
	}
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
