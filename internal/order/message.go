package order

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary renders the order text sent over the messaging channel:
//
//	*Novo Pedido - <customer>*
//
//	• <product> - <qty>x - <symbol> <subtotal>
//
//	*Total: <symbol> <total>*
func Summary(customerName string, lines []domain.CartLine, symbol string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Novo Pedido - %s*\n\n", customerName)

	total := domain.Money{Amount: decimal.Zero}
	if len(lines) > 0 {
		total.Currency = lines[0].UnitPrice.Currency
	}

	for _, line := range lines {
		subtotal := line.Subtotal()
		total = total.Add(subtotal)

		fmt.Fprintf(&b, "• %s - %dx - %s\n", line.Name, line.Quantity, subtotal.Format(symbol))
	}

	fmt.Fprintf(&b, "\n*Total: %s*", total.Format(symbol))

	return b.String()
}
