// Package storefront owns the catalog, cart, session and order components of one running client.
package storefront

import (
	"context"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/order"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/session"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Deps struct {
	Catalog  port.CatalogAPI
	Auth     port.AuthAPI
	Orders   port.OrderAPI
	Sessions port.SessionStore
	Opener   port.LinkOpener

	Currency     currency.Unit
	OrderOptions order.Options
	Logger       *zap.Logger
}

// Storefront is single-owner state: every field is mutated in place and none is safe for concurrent use.
type Storefront struct {
	Catalog *catalog.Store
	Cart    *cart.Ledger
	Session *session.Manager
	Orders  *order.Service

	CurrencySymbol string
}

func New(d Deps) *Storefront {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := catalog.NewStore(d.Catalog, logger.Named("catalog"))
	ledger := cart.NewLedger(store, d.Currency, logger.Named("cart"))

	return &Storefront{
		Catalog:        store,
		Cart:           ledger,
		Session:        session.NewManager(d.Auth, d.Sessions, logger.Named("session")),
		Orders:         order.NewService(d.Orders, ledger, d.Opener, d.OrderOptions, logger.Named("order")),
		CurrencySymbol: d.OrderOptions.CurrencySymbol,
	}
}

// Start restores the saved session and loads the catalog.
// A catalog failure is returned but leaves the storefront usable with an empty catalog.
func (s *Storefront) Start(ctx context.Context) error {
	s.Session.Restore(ctx)
	return s.Catalog.Load(ctx)
}
