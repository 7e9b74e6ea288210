package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikolayk812/storefront/internal/storefront"
)

var (
	loginLabels    = []string{"CPF/CNPJ", "Senha"}
	checkoutLabels = []string{"Nome", "E-mail", "Telefone", "CPF/CNPJ", "Endereço"}
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	var right string
	switch m.mode {
	case modeLogin:
		right = m.formView("Entrar", loginLabels, m.login)
	case modeCheckout:
		right = m.formView("Finalizar pedido", checkoutLabels, m.checkout)
	default:
		right = m.cartView()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.catalogView(), " ", right))
	b.WriteString("\n")

	if m.notice != "" {
		style := m.styles.Success
		if m.noticeErr {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.notice))
		if m.link != "" {
			b.WriteString("\n" + m.styles.Muted.Render(m.link))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.helpView())

	return b.String()
}

func (m *Model) header() string {
	title := m.styles.Title.Render("Loja")

	status := "visitante"
	if m.user != "" {
		status = "Olá, " + m.user
	}
	if m.busy {
		status += " · carregando..."
	}

	return title + "  " + m.styles.Muted.Render(status)
}

func (m *Model) catalogView() string {
	var b strings.Builder
	b.WriteString(m.styles.Bold.Render("Produtos") + "\n")

	if len(m.rows) == 0 {
		b.WriteString(m.styles.Muted.Render("Nenhum produto disponível."))
		return m.styles.Panel.Render(b.String())
	}

	for i, r := range m.rows {
		line := fmt.Sprintf("%-28s %12s", truncate(r.Name, 28), r.Price)
		if r.Quantity > 0 {
			line += fmt.Sprintf("  [%d]", r.Quantity)
		}

		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		if i < len(m.rows)-1 {
			b.WriteString("\n")
		}
	}

	return m.styles.Panel.Render(b.String())
}

func (m *Model) cartView() string {
	var b strings.Builder
	b.WriteString(m.styles.Bold.Render(fmt.Sprintf("Carrinho (%d)", m.itemCount)) + "\n")

	if len(m.cart) == 0 {
		b.WriteString(m.styles.Muted.Render("Seu carrinho está vazio."))
		return m.styles.Panel.Render(b.String())
	}

	for _, l := range m.cart {
		fmt.Fprintf(&b, "%s\n  %dx %s = %s\n", truncate(l.Name, 28), l.Quantity, l.Price, l.Subtotal)
	}
	b.WriteString(m.styles.Bold.Render("Total: " + m.cartTotal))

	return m.styles.Panel.Render(b.String())
}

func (m *Model) formView(title string, labels []string, inputs []textinput.Model) string {
	var b strings.Builder
	b.WriteString(m.styles.Bold.Render(title) + "\n")

	for i := range inputs {
		label := labels[i]
		if i == m.focus {
			label = m.styles.Selected.Render(label)
		}
		b.WriteString(label + "\n" + inputs[i].View())
		if i < len(inputs)-1 {
			b.WriteString("\n")
		}
	}

	if m.mode == modeCheckout {
		b.WriteString("\n\n" + m.styles.Bold.Render("Total: "+m.cartTotal))
	}

	return m.styles.Panel.Render(b.String())
}

func (m *Model) helpView() string {
	bindings := m.keys.browseHelp()
	if m.mode != modeBrowse {
		bindings = m.keys.formHelp()
	}

	h := help.New()
	if m.width > 0 {
		h.Width = m.width
	}

	return h.ShortHelpView(bindings)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, sf *storefront.Storefront) error {
	p := tea.NewProgram(New(ctx, sf), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("p.Run: %w", err)
	}
	return nil
}
