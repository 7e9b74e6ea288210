// Package catalog holds the products fetched from the remote API.
package catalog

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

// LoadError reports a failed catalog fetch. The previously loaded catalog stays in place.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog load: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store is owned by a single caller and is not safe for concurrent use.
type Store struct {
	api    port.CatalogAPI
	logger *zap.Logger

	products []domain.Product
	index    map[domain.ProductID]int
}

func NewStore(api port.CatalogAPI, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		api:    api,
		logger: logger,
		index:  map[domain.ProductID]int{},
	}
}

func (s *Store) Load(ctx context.Context) error {
	fetched, err := s.api.ListProducts(ctx)
	if err != nil {
		s.logger.Error("catalog load failed", zap.Error(err))
		return &LoadError{Err: fmt.Errorf("api.ListProducts: %w", err)}
	}

	products := make([]domain.Product, 0, len(fetched))
	index := make(map[domain.ProductID]int, len(fetched))

	for _, p := range fetched {
		if p.Price.IsNegative() {
			s.logger.Warn("skipping product with negative price",
				zap.Int64("product_id", int64(p.ID)),
				zap.String("price", p.Price.Amount.String()))
			continue
		}
		if _, dup := index[p.ID]; dup {
			s.logger.Warn("skipping duplicate product", zap.Int64("product_id", int64(p.ID)))
			continue
		}

		index[p.ID] = len(products)
		products = append(products, p)
	}

	s.products = products
	s.index = index

	s.logger.Info("catalog loaded", zap.Int("products", len(products)))

	return nil
}

// Reload replaces the catalog wholesale. Cart lines keep their price snapshots.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *Store) Products() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Product(id domain.ProductID) (domain.Product, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *Store) Len() int {
	return len(s.products)
}
