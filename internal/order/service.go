// Package order submits the cart as an order and hands the summary to the messaging channel.
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/messaging"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderError reports an order the API did not accept. Cart and customer details are left as they were.
type OrderError struct {
	Err error
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("order submit: %v", e.Err)
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

type Options struct {
	// MessagingBaseURL defaults to messaging.DefaultBaseURL.
	MessagingBaseURL string
	Recipient        string
	CurrencySymbol   string
}

type Service struct {
	api    port.OrderAPI
	ledger *cart.Ledger
	opener port.LinkOpener
	opts   Options
	logger *zap.Logger
}

func NewService(api port.OrderAPI, ledger *cart.Ledger, opener port.LinkOpener, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		api:    api,
		ledger: ledger,
		opener: opener,
		opts:   opts,
		logger: logger,
	}
}

// Submit posts the current cart. The order counts as placed once the API acknowledges it:
// the ledger is cleared then, and the hand-off link is opened without waiting on the user.
func (s *Service) Submit(ctx context.Context, customer domain.Customer) (domain.OrderConfirmation, error) {
	lines := s.ledger.Lines()
	if len(lines) == 0 {
		return domain.OrderConfirmation{}, ErrEmptyCart
	}

	confirmation, err := s.api.CreateOrder(ctx, buildOrder(customer, lines))
	if err != nil {
		s.logger.Error("order rejected", zap.Error(err), zap.Int("lines", len(lines)))
		return domain.OrderConfirmation{}, &OrderError{Err: fmt.Errorf("api.CreateOrder: %w", err)}
	}

	confirmation.Summary = Summary(customer.Name, lines, s.opts.CurrencySymbol)
	confirmation.HandoffURL = messaging.Link(s.opts.MessagingBaseURL, s.opts.Recipient, confirmation.Summary)

	s.ledger.Clear()

	s.logger.Info("order placed",
		zap.String("request_id", confirmation.RequestID),
		zap.Int("lines", len(lines)))

	if s.opener != nil {
		if err := s.opener.Open(ctx, confirmation.HandoffURL); err != nil {
			s.logger.Warn("hand-off link not opened", zap.Error(err))
		}
	}

	return confirmation, nil
}

func buildOrder(customer domain.Customer, lines []domain.CartLine) domain.Order {
	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, domain.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	return domain.Order{
		Customer: customer,
		Lines:    orderLines,
	}
}
