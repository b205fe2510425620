package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/juridik/internal/client/migrations"
	"github.com/dmitrijs2005/juridik/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type SQLiteBackend struct {
	db *sql.DB
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenSQLite opens (or creates) the database at dsn and migrates it.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	// one writer is all a credential table needs, and it keeps :memory:
	// databases on a single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite %s: %w", dsn, err)
	}
	return NewSQLiteBackend(db), nil
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (r *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteBackend) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

// DeleteKeys removes keys in a single transaction.
func (r *SQLiteBackend) DeleteKeys(ctx context.Context, keys ...string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
				return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (r *SQLiteBackend) Close() error {
	return r.db.Close()
}
