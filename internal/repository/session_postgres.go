package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/port"
)

type sessionRepository struct {
	q   *db.Queries
	key string
}

func NewSession(pool *pgxpool.Pool) port.SessionStore {
	return &sessionRepository{
		q:   db.New(pool),
		key: SessionKey,
	}
}

func NewSessionWithTx(tx pgx.Tx) port.SessionStore {
	return &sessionRepository{
		q:   db.New(tx),
		key: SessionKey,
	}
}

// Migrate applies the embedded schema. Every script is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	scripts, err := migrations.Up()
	if err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}

	for _, script := range scripts {
		if _, err := pool.Exec(ctx, script); err != nil {
			return fmt.Errorf("pool.Exec: %w", err)
		}
	}

	return nil
}

func (r *sessionRepository) Load(ctx context.Context) (*domain.User, error) {
	row, err := r.q.GetValue(ctx, r.key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("q.GetValue: %w", err)
	}

	user, err := unmarshalUser(row.Value)
	if err != nil {
		return nil, fmt.Errorf("unmarshalUser: %w", err)
	}

	return user, nil
}

func (r *sessionRepository) Save(ctx context.Context, user domain.User) error {
	value, err := marshalUser(user)
	if err != nil {
		return fmt.Errorf("marshalUser: %w", err)
	}

	err = r.q.PutValue(ctx, db.PutValueParams{
		Key:   r.key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("q.PutValue: %w", err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context) error {
	if _, err := r.q.DeleteValue(ctx, r.key); err != nil {
		return fmt.Errorf("q.DeleteValue: %w", err)
	}

	return nil
}
