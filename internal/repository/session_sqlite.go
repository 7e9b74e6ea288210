package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikolayk812/storefront/internal/db/sqlitedb"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/port"
	_ "modernc.org/sqlite"
)

type sqliteSessionRepository struct {
	q   *sqlitedb.Queries
	key string
}

// OpenSQLite opens (creating if needed) the local session database at path.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	conn.SetMaxOpenConns(1)

	scripts, err := migrations.SQLiteUp()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrations.SQLiteUp: %w", err)
	}

	for _, script := range scripts {
		if _, err := conn.ExecContext(ctx, script); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("conn.ExecContext: %w", err)
		}
	}

	return conn, nil
}

func NewSessionSQLite(conn *sql.DB) port.SessionStore {
	return &sqliteSessionRepository{
		q:   sqlitedb.New(conn),
		key: SessionKey,
	}
}

func NewSessionSQLiteWithTx(tx *sql.Tx) port.SessionStore {
	return &sqliteSessionRepository{
		q:   sqlitedb.New(tx),
		key: SessionKey,
	}
}

func (r *sqliteSessionRepository) Load(ctx context.Context) (*domain.User, error) {
	value, err := r.q.GetValue(ctx, r.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("q.GetValue: %w", err)
	}

	user, err := unmarshalUser(value)
	if err != nil {
		return nil, fmt.Errorf("unmarshalUser: %w", err)
	}

	return user, nil
}

func (r *sqliteSessionRepository) Save(ctx context.Context, user domain.User) error {
	value, err := marshalUser(user)
	if err != nil {
		return fmt.Errorf("marshalUser: %w", err)
	}

	err = r.q.PutValue(ctx, sqlitedb.PutValueParams{
		Key:   r.key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("q.PutValue: %w", err)
	}

	return nil
}

func (r *sqliteSessionRepository) Delete(ctx context.Context) error {
	if _, err := r.q.DeleteValue(ctx, r.key); err != nil {
		return fmt.Errorf("q.DeleteValue: %w", err)
	}

	return nil
}
