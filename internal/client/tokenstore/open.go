package tokenstore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/juridik/internal/client/config"
	"github.com/dmitrijs2005/juridik/internal/filex"
	"github.com/dmitrijs2005/juridik/internal/logging"
)

const sqliteFile = "session.db"

// Open builds the Store selected by cfg.TokenStore. For "auto" the secure
// file backend is used when the data directory is private to the current
// user, SQLite otherwise. The decision is made once, before anything is
// written.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*Store, error) {
	kind := cfg.TokenStore
	if kind == config.TokenStoreMemory {
		return NewStore(NewMemoryBackend(), kind, log), nil
	}

	dir, err := filex.EnsurePrivateDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}

	if kind == config.TokenStoreAuto {
		kind = detect(dir)
	}

	switch kind {
	case config.TokenStoreSecure:
		if !filex.IsPrivateDir(dir) {
			return nil, fmt.Errorf("data dir %s is accessible by other users", dir)
		}
		return NewStore(NewSecureFileBackend(dir), kind, log), nil
	case config.TokenStoreSQLite:
		b, err := OpenSQLite(ctx, filepath.Join(dir, sqliteFile))
		if err != nil {
			return nil, err
		}
		return NewStore(b, kind, log), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", kind)
	}
}

func detect(dir string) string {
	if filex.IsPrivateDir(dir) {
		return config.TokenStoreSecure
	}
	return config.TokenStoreSQLite
}
