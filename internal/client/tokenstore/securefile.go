package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/juridik/internal/common"
	"github.com/dmitrijs2005/juridik/internal/cryptox"
)

const (
	machineKeyFile = "machine.key"
	sealedFile     = "tokens.sealed"
	machineKeySize = 32
)

var keySalt = []byte("juridik/tokenstore/v1")

// SecureFileBackend keeps every entry in one sealed JSON document. The
// sealing key is derived from a random machine key that never leaves the
// data directory.
type SecureFileBackend struct {
	dir string

	mu  sync.Mutex
	key []byte
}

// NewSecureFileBackend uses dir, which must already exist and be private.
func NewSecureFileBackend(dir string) *SecureFileBackend {
	return &SecureFileBackend{dir: dir}
}

func (s *SecureFileBackend) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	v, ok := entries[key]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

func (s *SecureFileBackend) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[key] = string(value)
	return s.save(entries)
}

func (s *SecureFileBackend) Delete(ctx context.Context, key string) error {
	return s.DeleteKeys(ctx, key)
}

// DeleteKeys rewrites the sealed file once; nothing is written when none of
// the keys is present.
func (s *SecureFileBackend) DeleteKeys(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	n := len(entries)
	for _, key := range keys {
		delete(entries, key)
	}
	if len(entries) == n {
		return nil
	}
	return s.save(entries)
}

func (s *SecureFileBackend) sealingKey() ([]byte, error) {
	if s.key != nil {
		return s.key, nil
	}

	path := filepath.Join(s.dir, machineKeyFile)
	secret, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		secret = common.GenerateRandByteArray(machineKeySize)
		if err := writeFileAtomic(path, secret); err != nil {
			return nil, fmt.Errorf("write machine key: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("read machine key: %w", err)
	}
	if len(secret) != machineKeySize {
		return nil, fmt.Errorf("machine key has %d bytes, want %d", len(secret), machineKeySize)
	}

	s.key = cryptox.DeriveKey(secret, keySalt)
	common.WipeByteArray(secret)
	return s.key, nil
}

func (s *SecureFileBackend) load() (map[string]string, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, sealedFile))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sealed store: %w", err)
	}

	key, err := s.sealingKey()
	if err != nil {
		return nil, err
	}

	plain, err := cryptox.Open(raw, key)
	if err != nil {
		return nil, fmt.Errorf("open sealed store: %w", err)
	}
	defer common.WipeByteArray(plain)

	entries := map[string]string{}
	if err := json.Unmarshal(plain, &entries); err != nil {
		return nil, fmt.Errorf("decode sealed store: %w", err)
	}
	return entries, nil
}

func (s *SecureFileBackend) save(entries map[string]string) error {
	key, err := s.sealingKey()
	if err != nil {
		return err
	}

	plain, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode sealed store: %w", err)
	}
	defer common.WipeByteArray(plain)

	sealed, err := cryptox.Seal(plain, key)
	if err != nil {
		return fmt.Errorf("seal store: %w", err)
	}
	return writeFileAtomic(filepath.Join(s.dir, sealedFile), sealed)
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never observe a torn file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
