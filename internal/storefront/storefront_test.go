package storefront_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nikolayk812/storefront/internal/api"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/messaging"
	"github.com/nikolayk812/storefront/internal/order"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/nikolayk812/storefront/internal/storefront"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote emulates the storefront API.
type fakeRemote struct {
	mu            sync.Mutex
	productsErr   bool
	productsEmpty bool
	ordersErr     bool
	orders        []map[string]any
}

func (f *fakeRemote) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /produtos", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.productsErr {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if f.productsEmpty {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte(`[{"id": 1, "nome": "Widget", "preco": 10.00}, {"id": 2, "nome": "Gadget", "preco": "2.50"}]`))
	})

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req["documento"] != "123" || req["senha"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"usuario": {"nome": "Ana", "email": "ana@example.com", "documento": "123"}}`))
	})

	mux.HandleFunc("POST /pedidos", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.ordersErr {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.orders = append(f.orders, req)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	})

	return mux
}

func (f *fakeRemote) placed() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]map[string]any(nil), f.orders...)
}

type harness struct {
	remote *fakeRemote
	cfg    *config.Config
	out    *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	remote := &fakeRemote{}
	server := httptest.NewServer(remote.handler(t))
	t.Cleanup(server.Close)

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = server.URL
	cfg.API.Username = "store"
	cfg.API.Password = "secret"
	cfg.Messaging.Recipient = "5527992999497"
	cfg.Storage.Path = filepath.Join(t.TempDir(), "session.db")

	return &harness{remote: remote, cfg: cfg, out: &bytes.Buffer{}}
}

func (h *harness) open(t *testing.T) *storefront.Storefront {
	t.Helper()

	sf, closeFn, err := storefront.Open(t.Context(), h.cfg, messaging.NewPrintOpener(h.out), nil)
	require.NoError(t, err)
	t.Cleanup(closeFn)

	return sf
}

func TestStorefront_CheckoutFlow(t *testing.T) {
	h := newHarness(t)
	sf := h.open(t)

	require.NoError(t, sf.Start(t.Context()))
	require.Equal(t, 2, sf.Catalog.Len())

	sf.Cart.SetQuantity(1, 2)
	assert.True(t, decimal.RequireFromString("20").Equal(sf.Cart.Total().Amount))

	sf.Cart.SetQuantity(99, 3)
	assert.Len(t, sf.Cart.Lines(), 1)

	confirmation, err := sf.Orders.Submit(t.Context(), domain.Customer{Name: "Ana"})
	require.NoError(t, err)

	assert.True(t, sf.Cart.IsEmpty())
	assert.Contains(t, confirmation.Summary, "• Widget - 2x - R$ 20.00")
	assert.JSONEq(t, `{"id": 42}`, string(confirmation.Body))
	assert.Contains(t, h.out.String(), confirmation.HandoffURL)

	placed := h.remote.placed()
	require.Len(t, placed, 1)
	assert.Equal(t, []any{
		map[string]any{"produto_id": float64(1), "quantidade": float64(2), "preco": float64(10)},
	}, placed[0]["itens"])
}

func TestStorefront_OrderFailureKeepsCart(t *testing.T) {
	h := newHarness(t)
	h.remote.ordersErr = true
	sf := h.open(t)
	require.NoError(t, sf.Start(t.Context()))

	sf.Cart.SetQuantity(2, 3)

	_, err := sf.Orders.Submit(t.Context(), domain.Customer{Name: "Ana"})

	var orderErr *order.OrderError
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, 3, sf.Cart.Quantity(2))
	assert.Empty(t, h.out.String())
}

func TestStorefront_CatalogFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.remote.productsErr = true
	sf := h.open(t)

	err := sf.Start(t.Context())

	var loadErr *catalog.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 0, sf.Catalog.Len())

	sf.Cart.SetQuantity(1, 1)
	assert.True(t, sf.Cart.IsEmpty())
}

func TestStorefront_ReloadWithEmptyBodyKeepsCatalog(t *testing.T) {
	h := newHarness(t)
	sf := h.open(t)
	require.NoError(t, sf.Start(t.Context()))
	require.Equal(t, 2, sf.Catalog.Len())

	h.remote.mu.Lock()
	h.remote.productsEmpty = true
	h.remote.mu.Unlock()

	err := sf.Catalog.Reload(t.Context())

	var loadErr *catalog.LoadError
	require.ErrorAs(t, err, &loadErr)
	require.ErrorIs(t, err, api.ErrEmptyBody)
	assert.Equal(t, 2, sf.Catalog.Len())
}

func TestStorefront_SessionSurvivesRestart(t *testing.T) {
	h := newHarness(t)

	first := h.open(t)
	require.NoError(t, first.Start(t.Context()))

	_, err := first.Session.Login(t.Context(), "123", "wrong")
	var authErr *session.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, first.Session.Session().LoggedIn())

	_, err = first.Session.Login(t.Context(), "123", "pw")
	require.NoError(t, err)

	second := h.open(t)
	require.NoError(t, second.Start(t.Context()))
	require.True(t, second.Session.Session().LoggedIn())
	assert.Equal(t, "Ana", second.Session.Session().User.Name)

	second.Session.Logout(t.Context())

	third := h.open(t)
	require.NoError(t, third.Start(t.Context()))
	assert.False(t, third.Session.Session().LoggedIn())
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = "redis"

	_, _, err := storefront.Open(t.Context(), cfg, nil, nil)
	require.ErrorContains(t, err, `unknown storage.driver "redis"`)
}
