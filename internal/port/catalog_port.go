package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
