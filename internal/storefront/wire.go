package storefront

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/api"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/order"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"go.uber.org/zap"
)

// Open builds a Storefront from configuration. The returned close func releases the session store.
func Open(ctx context.Context, cfg *config.Config, opener port.LinkOpener, logger *zap.Logger) (*Storefront, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("cfg.Validate: %w", err)
	}

	unit, err := cfg.GetCurrency()
	if err != nil {
		return nil, nil, fmt.Errorf("cfg.GetCurrency: %w", err)
	}

	timeout, err := cfg.GetAPITimeout()
	if err != nil {
		return nil, nil, fmt.Errorf("cfg.GetAPITimeout: %w", err)
	}

	client, err := api.NewClient(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Username: cfg.API.Username,
		Password: cfg.API.Password,
		Timeout:  timeout,
		Currency: unit,
		Logger:   logger.Named("api"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("api.NewClient: %w", err)
	}

	sessions, closeStore, err := OpenSessionStore(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("OpenSessionStore: %w", err)
	}

	sf := New(Deps{
		Catalog:  client,
		Auth:     client,
		Orders:   client,
		Sessions: sessions,
		Opener:   opener,
		Currency: unit,
		OrderOptions: order.Options{
			MessagingBaseURL: cfg.Messaging.BaseURL,
			Recipient:        cfg.Messaging.Recipient,
			CurrencySymbol:   cfg.Currency.Symbol,
		},
		Logger: logger,
	})

	return sf, closeStore, nil
}

// OpenSessionStore opens the configured session backend.
func OpenSessionStore(ctx context.Context, cfg config.StorageConfig) (port.SessionStore, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}

		if err := repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repository.Migrate: %w", err)
		}

		return repository.NewSession(pool), pool.Close, nil

	case config.DriverSQLite:
		conn, err := repository.OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.OpenSQLite: %w", err)
		}

		return repository.NewSessionSQLite(conn), func() { _ = conn.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
