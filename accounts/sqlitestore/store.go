// Package sqlitestore provides a SQLite-backed accounts.Store. Each tenant
// owns its own database file, so account rows are never shared between
// tenants and email uniqueness is enforced by the storage engine itself.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-tenant-auth/accounts"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	locked        INTEGER NOT NULL DEFAULT 0,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL
);`

// Store persists one tenant's accounts in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ accounts.Store = (*Store)(nil)

// Open opens (creating if necessary) a SQLite account store at path and
// applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Create(ctx context.Context, email, password string) (*accounts.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := accounts.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &accounts.Account{
		ID:           uuid.New().String(),
		Email:        accounts.NormalizeEmail(email),
		PasswordHash: hash,
		Locked:       false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO accounts (id, email, password_hash, locked, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		account.ID, account.Email, account.PasswordHash, boolToInt(account.Locked),
		toMillis(account.CreatedAt), toMillis(account.UpdatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, accounts.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	return s.getOne(ctx,
		`SELECT id, email, password_hash, locked, created_at, updated_at
		 FROM accounts WHERE email = ?`, accounts.NormalizeEmail(email))
}

func (s *Store) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	return s.getOne(ctx,
		`SELECT id, email, password_hash, locked, created_at, updated_at
		 FROM accounts WHERE id = ?`, id)
}

func (s *Store) SetLocked(ctx context.Context, id string, locked bool) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE accounts SET locked = ?, updated_at = ? WHERE id = ?`,
		boolToInt(locked), toMillis(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("update locked: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (s *Store) getOne(ctx context.Context, query string, arg string) (*accounts.Account, error) {
	row := s.sqlDB.QueryRowContext(ctx, query, arg)

	var (
		account   accounts.Account
		locked    int
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&account.ID, &account.Email, &account.PasswordHash, &locked, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, accounts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	account.Locked = locked != 0
	account.CreatedAt = fromMillis(createdAt)
	account.UpdatedAt = fromMillis(updatedAt)
	return &account, nil
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
