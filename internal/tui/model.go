// Package tui is the terminal view of the storefront.
//
// Network calls run as tea.Cmds off the update loop. While one is in flight the
// model is busy and ignores every key that would touch the storefront, so the
// cart, catalog and session only ever change from a single goroutine at a time.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/order"
	"github.com/nikolayk812/storefront/internal/storefront"
)

type mode int

const (
	modeBrowse mode = iota
	modeLogin
	modeCheckout
)

const (
	noticeCatalogError = "Erro ao carregar produtos. Tente novamente."
	noticeLoginOK      = "Login realizado com sucesso!"
	noticeLoginError   = "Erro ao fazer login. Verifique suas credenciais."
	noticeLogout       = "Logout realizado!"
	noticeOrderOK      = "Pedido registrado! Confirme pelo WhatsApp:"
	noticeOrderError   = "Erro ao finalizar pedido. Tente novamente."
	noticeEmptyCart    = "Seu carrinho está vazio."
)

// productRow is the view-model of one catalog entry.
type productRow struct {
	ID       domain.ProductID
	Name     string
	Price    string
	Quantity int
}

type cartRow struct {
	Name     string
	Price    string
	Quantity int
	Subtotal string
}

type (
	catalogLoadedMsg struct{ err error }
	loginDoneMsg     struct{ err error }
	logoutDoneMsg    struct{}
	orderDoneMsg     struct {
		confirmation domain.OrderConfirmation
		err          error
	}
)

type Model struct {
	sf     *storefront.Storefront
	ctx    context.Context
	keys   keyMap
	styles styles

	mode mode
	busy bool

	rows   []productRow
	cursor int

	cart      []cartRow
	cartTotal string
	itemCount int
	user      string

	notice    string
	noticeErr bool
	link      string

	login    []textinput.Model
	checkout []textinput.Model
	focus    int

	width int
}

func New(ctx context.Context, sf *storefront.Storefront) *Model {
	m := &Model{
		sf:       sf,
		ctx:      ctx,
		keys:     defaultKeyMap(),
		styles:   defaultStyles(),
		busy:     true,
		login:    newInputs(loginLabels),
		checkout: newInputs(checkoutLabels),
	}
	m.login[1].EchoMode = textinput.EchoPassword
	m.login[1].EchoCharacter = '•'

	return m
}

func newInputs(placeholders []string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}
	return inputs
}

func (m *Model) Init() tea.Cmd {
	sf, ctx := m.sf, m.ctx
	return func() tea.Msg {
		return catalogLoadedMsg{err: sf.Start(ctx)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case catalogLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setNotice(noticeCatalogError, true)
		}
		m.refresh()
		return m, nil

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setNotice(noticeLoginError, true)
			return m, nil
		}
		m.mode = modeBrowse
		resetInputs(m.login)
		m.setNotice(noticeLoginOK, false)
		m.refresh()
		return m, nil

	case logoutDoneMsg:
		m.busy = false
		resetInputs(m.checkout)
		m.setNotice(noticeLogout, false)
		m.refresh()
		return m, nil

	case orderDoneMsg:
		m.busy = false
		if errors.Is(msg.err, order.ErrEmptyCart) {
			m.mode = modeBrowse
			m.setNotice(noticeEmptyCart, true)
			m.refresh()
			return m, nil
		}
		if msg.err != nil {
			m.setNotice(noticeOrderError, true)
			return m, nil
		}
		m.mode = modeBrowse
		resetInputs(m.checkout)
		m.setNotice(noticeOrderOK, false)
		m.link = msg.confirmation.HandoffURL
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case modeLogin:
			return m.updateForm(msg, m.login, m.submitLogin)
		case modeCheckout:
			return m.updateForm(msg, m.checkout, m.submitCheckout)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		m.adjustSelected(1)
	case key.Matches(msg, m.keys.Remove):
		m.adjustSelected(-1)
	case key.Matches(msg, m.keys.Reload):
		m.busy = true
		return m, m.reloadCmd()
	case key.Matches(msg, m.keys.Login):
		if m.sf.Session.Session().LoggedIn() {
			m.busy = true
			return m, m.logoutCmd()
		}
		m.mode = modeLogin
		return m, m.focusInput(m.login, 0)
	case key.Matches(msg, m.keys.Checkout):
		if m.sf.Cart.IsEmpty() {
			return m, nil
		}
		m.prefillCheckout()
		m.mode = modeCheckout
		return m, m.focusInput(m.checkout, 0)
	}

	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg, inputs []textinput.Model, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		inputs[m.focus].Blur()
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.focus < len(inputs)-1 {
			return m, m.focusInput(inputs, m.focus+1)
		}
		m.busy = true
		return m, submit()
	case key.Matches(msg, m.keys.Next):
		return m, m.focusInput(inputs, (m.focus+1)%len(inputs))
	case key.Matches(msg, m.keys.Prev):
		return m, m.focusInput(inputs, (m.focus+len(inputs)-1)%len(inputs))
	}

	var cmd tea.Cmd
	inputs[m.focus], cmd = inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusInput(inputs []textinput.Model, i int) tea.Cmd {
	for j := range inputs {
		inputs[j].Blur()
	}
	m.focus = i
	return inputs[i].Focus()
}

func (m *Model) adjustSelected(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.sf.Cart.Adjust(m.rows[m.cursor].ID, delta)
	m.refresh()
}

// prefillCheckout puts the logged-in user's identity into the form, replacing whatever it held.
func (m *Model) prefillCheckout() {
	if !m.sf.Session.Session().LoggedIn() {
		return
	}

	prefill := m.sf.Session.PrefillCustomer()
	m.checkout[0].SetValue(prefill.Name)
	m.checkout[1].SetValue(prefill.Email)
	m.checkout[3].SetValue(prefill.DocumentID)
}

func (m *Model) reloadCmd() tea.Cmd {
	sf, ctx := m.sf, m.ctx
	return func() tea.Msg {
		return catalogLoadedMsg{err: sf.Catalog.Reload(ctx)}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	sf, ctx := m.sf, m.ctx
	return func() tea.Msg {
		sf.Session.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func (m *Model) submitLogin() tea.Cmd {
	sf, ctx := m.sf, m.ctx
	identifier, secret := m.login[0].Value(), m.login[1].Value()

	return func() tea.Msg {
		_, err := sf.Session.Login(ctx, identifier, secret)
		return loginDoneMsg{err: err}
	}
}

func (m *Model) submitCheckout() tea.Cmd {
	sf, ctx := m.sf, m.ctx
	customer := domain.Customer{
		Name:       m.checkout[0].Value(),
		Email:      m.checkout[1].Value(),
		Phone:      m.checkout[2].Value(),
		DocumentID: m.checkout[3].Value(),
		Address:    m.checkout[4].Value(),
	}

	return func() tea.Msg {
		confirmation, err := sf.Orders.Submit(ctx, customer)
		return orderDoneMsg{confirmation: confirmation, err: err}
	}
}

// refresh rebuilds the view-model from the storefront. Only called from Update while idle.
func (m *Model) refresh() {
	symbol := m.sf.CurrencySymbol

	products := m.sf.Catalog.Products()
	m.rows = make([]productRow, 0, len(products))

	for _, p := range products {
		m.rows = append(m.rows, productRow{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price.Format(symbol),
			Quantity: m.sf.Cart.Quantity(p.ID),
		})
	}

	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}

	lines := m.sf.Cart.Lines()
	m.cart = make([]cartRow, 0, len(lines))
	for _, l := range lines {
		m.cart = append(m.cart, cartRow{
			Name:     l.Name,
			Price:    l.UnitPrice.Format(symbol),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal().Format(symbol),
		})
	}
	m.cartTotal = m.sf.Cart.Total().Format(symbol)
	m.itemCount = m.sf.Cart.ItemCount()

	m.user = ""
	if s := m.sf.Session.Session(); s.LoggedIn() {
		m.user = s.User.Name
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
	m.link = ""
}

func resetInputs(inputs []textinput.Model) {
	for i := range inputs {
		inputs[i].SetValue("")
		inputs[i].Blur()
	}
}
