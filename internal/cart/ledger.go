// Package cart keeps the user's product selections and derives their totals.
package cart

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

// ProductLookup resolves a product for a new cart line.
type ProductLookup interface {
	Product(id domain.ProductID) (domain.Product, bool)
}

// Ledger holds at most one line per product, in order of first selection.
// Totals are derived on every read. Not safe for concurrent use.
type Ledger struct {
	catalog  ProductLookup
	currency currency.Unit
	logger   *zap.Logger

	lines []domain.CartLine
}

func NewLedger(catalog ProductLookup, unit currency.Unit, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ledger{
		catalog:  catalog,
		currency: unit,
		logger:   logger,
	}
}

// SetQuantity never fails: negative quantities clamp to zero and unknown products are ignored.
// An existing line keeps the price it was created with.
func (l *Ledger) SetQuantity(id domain.ProductID, quantity int) {
	if quantity < 0 {
		quantity = 0
	}

	i := l.find(id)

	switch {
	case quantity == 0:
		if i >= 0 {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			l.logger.Debug("cart line removed", zap.Int64("product_id", int64(id)))
		}
	case i >= 0:
		l.lines[i].Quantity = quantity
	default:
		product, ok := l.catalog.Product(id)
		if !ok {
			l.logger.Debug("ignoring unknown product", zap.Int64("product_id", int64(id)))
			return
		}

		l.lines = append(l.lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
			ImageRef:  product.ImageRef,
		})
		l.logger.Debug("cart line added",
			zap.Int64("product_id", int64(id)),
			zap.String("unit_price", product.Price.Amount.String()))
	}
}

// Adjust applies a +/- step to the current quantity.
func (l *Ledger) Adjust(id domain.ProductID, delta int) {
	l.SetQuantity(id, l.Quantity(id)+delta)
}

func (l *Ledger) Quantity(id domain.ProductID) int {
	if i := l.find(id); i >= 0 {
		return l.lines[i].Quantity
	}
	return 0
}

func (l *Ledger) Clear() {
	l.lines = nil
}

func (l *Ledger) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Ledger) Total() domain.Money {
	total := domain.NewMoney(decimal.Zero, l.currency)
	for _, line := range l.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (l *Ledger) ItemCount() int {
	var n int
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

func (l *Ledger) Currency() currency.Unit {
	return l.currency
}

func (l *Ledger) find(id domain.ProductID) int {
	for i := range l.lines {
		if l.lines[i].ProductID == id {
			return i
		}
	}
	return -1
}
