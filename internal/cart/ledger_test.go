package cart_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

type fakeCatalog map[domain.ProductID]domain.Product

func (f fakeCatalog) Product(id domain.ProductID) (domain.Product, bool) {
	p, ok := f[id]
	return p, ok
}

func TestLedger_SetQuantity(t *testing.T) {
	catalog := fakeCatalog{
		1: product(1, "Widget", "10.00"),
		2: product(2, "Gadget", "2.50"),
	}

	type step struct {
		id  domain.ProductID
		qty int
	}

	tests := []struct {
		name      string
		steps     []step
		wantLines []domain.CartLine
		wantTotal string
		wantCount int
	}{
		{
			name:      "add product: ok",
			steps:     []step{{1, 2}},
			wantLines: []domain.CartLine{line(catalog[1], 2)},
			wantTotal: "20.00",
			wantCount: 2,
		},
		{
			name:      "add then remove: empty",
			steps:     []step{{1, 2}, {1, 0}},
			wantLines: []domain.CartLine{},
			wantTotal: "0",
			wantCount: 0,
		},
		{
			name:      "remove absent product: no-op",
			steps:     []step{{1, 0}},
			wantLines: []domain.CartLine{},
			wantTotal: "0",
		},
		{
			name:      "unknown product: no-op",
			steps:     []step{{99, 3}},
			wantLines: []domain.CartLine{},
			wantTotal: "0",
		},
		{
			name:      "negative quantity clamps to zero: removed",
			steps:     []step{{1, 3}, {1, -5}},
			wantLines: []domain.CartLine{},
			wantTotal: "0",
		},
		{
			name:      "update quantity in place: ok",
			steps:     []step{{1, 1}, {2, 4}, {1, 3}},
			wantLines: []domain.CartLine{line(catalog[1], 3), line(catalog[2], 4)},
			wantTotal: "40.00",
			wantCount: 7,
		},
		{
			name:      "insertion order is first selection: ok",
			steps:     []step{{2, 1}, {1, 1}, {2, 5}},
			wantLines: []domain.CartLine{line(catalog[2], 5), line(catalog[1], 1)},
			wantTotal: "22.50",
			wantCount: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := cart.NewLedger(catalog, currency.BRL, nil)

			for _, s := range tt.steps {
				ledger.SetQuantity(s.id, s.qty)
			}

			assert.Empty(t, cmp.Diff(tt.wantLines, ledger.Lines(), moneyComparer(), cmpopts.EquateEmpty()))
			assertMoney(t, tt.wantTotal, ledger.Total())
			assert.Equal(t, tt.wantCount, ledger.ItemCount())
		})
	}
}

func TestLedger_PriceSnapshot(t *testing.T) {
	catalog := fakeCatalog{1: product(1, "Widget", "10.00")}
	ledger := cart.NewLedger(catalog, currency.BRL, nil)

	ledger.SetQuantity(1, 2)

	// catalog reload changes the price
	catalog[1] = product(1, "Widget", "12.00")

	ledger.SetQuantity(1, 3)
	assertMoney(t, "30.00", ledger.Total())

	// dropping to zero and re-adding takes the current price
	ledger.SetQuantity(1, 0)
	ledger.SetQuantity(1, 1)
	assertMoney(t, "12.00", ledger.Total())
}

func TestLedger_Adjust(t *testing.T) {
	catalog := fakeCatalog{1: product(1, "Widget", "1.25")}
	ledger := cart.NewLedger(catalog, currency.BRL, nil)

	ledger.Adjust(1, -1)
	assert.Equal(t, 0, ledger.Quantity(1))
	assert.True(t, ledger.IsEmpty())

	ledger.Adjust(1, 1)
	ledger.Adjust(1, 1)
	assert.Equal(t, 2, ledger.Quantity(1))
	assertMoney(t, "2.50", ledger.Total())

	ledger.Adjust(1, -1)
	ledger.Adjust(1, -1)
	ledger.Adjust(1, -1)
	assert.Equal(t, 0, ledger.Quantity(1))
	assert.Empty(t, ledger.Lines())
}

func TestLedger_Clear(t *testing.T) {
	catalog := fakeCatalog{1: product(1, "Widget", "10"), 2: product(2, "Gadget", "3")}
	ledger := cart.NewLedger(catalog, currency.BRL, nil)
	ledger.SetQuantity(1, 1)
	ledger.SetQuantity(2, 2)

	ledger.Clear()

	assert.Empty(t, ledger.Lines())
	assertMoney(t, "0", ledger.Total())
	assert.Equal(t, 0, ledger.ItemCount())
}

func TestLedger_LinesReturnsCopy(t *testing.T) {
	catalog := fakeCatalog{1: product(1, "Widget", "10")}
	ledger := cart.NewLedger(catalog, currency.BRL, nil)
	ledger.SetQuantity(1, 1)

	lines := ledger.Lines()
	lines[0].Quantity = 100

	assert.Equal(t, 1, ledger.Quantity(1))
}

func TestLedger_RandomSequencesKeepInvariants(t *testing.T) {
	faker := gofakeit.New(7)

	catalog := fakeCatalog{}
	for i := 1; i <= 5; i++ {
		id := domain.ProductID(i)
		catalog[id] = domain.Product{
			ID:    id,
			Name:  faker.ProductName(),
			Price: domain.NewMoney(decimal.NewFromFloat(faker.Price(0, 100)).Round(2), currency.BRL),
		}
	}

	ledger := cart.NewLedger(catalog, currency.BRL, nil)

	for i := 0; i < 500; i++ {
		id := domain.ProductID(faker.Number(1, 7))
		ledger.SetQuantity(id, faker.Number(-3, 6))

		lines := ledger.Lines()
		seen := map[domain.ProductID]bool{}
		want := decimal.Zero
		count := 0

		for _, l := range lines {
			require.Positive(t, l.Quantity)
			require.False(t, seen[l.ProductID], "duplicate line for %d", l.ProductID)
			seen[l.ProductID] = true

			_, known := catalog[l.ProductID]
			require.True(t, known)

			want = want.Add(l.UnitPrice.Amount.Mul(decimal.NewFromInt(int64(l.Quantity))))
			count += l.Quantity
		}

		require.True(t, want.Equal(ledger.Total().Amount), "total %s, want %s", ledger.Total().Amount, want)
		require.Equal(t, count, ledger.ItemCount())
	}
}

func product(id int64, name, price string) domain.Product {
	return domain.Product{
		ID:    domain.ProductID(id),
		Name:  name,
		Price: domain.NewMoney(decimal.RequireFromString(price), currency.BRL),
	}
}

func line(p domain.Product, qty int) domain.CartLine {
	return domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  qty,
		ImageRef:  p.ImageRef,
	}
}

func assertMoney(t *testing.T, want string, got domain.Money) {
	t.Helper()

	assert.True(t, decimal.RequireFromString(want).Equal(got.Amount), "want %s, got %s", want, got.Amount)
	assert.Equal(t, currency.BRL.String(), got.Currency.String())
}

func moneyComparer() cmp.Option {
	return cmp.Comparer(func(x, y domain.Money) bool {
		return x.Amount.Equal(y.Amount) && x.Currency.String() == y.Currency.String()
	})
}
