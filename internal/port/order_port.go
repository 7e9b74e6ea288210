package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderAPI interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error)
}

// LinkOpener hands a deep link over to whatever displays it to the user.
type LinkOpener interface {
	Open(ctx context.Context, link string) error
}
