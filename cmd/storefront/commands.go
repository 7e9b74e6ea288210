package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/spf13/cobra"
)

func (a *app) productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf, closeFn, err := a.open(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := sf.Catalog.Load(cmd.Context()); err != nil {
				return err
			}

			products := sf.Catalog.Products()
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products available.")
				return nil
			}

			t := table.New().Headers("ID", "NAME", "PRICE")
			for _, p := range products {
				t.Row(strconv.FormatInt(int64(p.ID), 10), p.Name, p.Price.Format(sf.CurrencySymbol))
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func (a *app) loginCmd() *cobra.Command {
	var document, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the user for later runs",
		Long: `Logs in with a CPF/CNPJ and password.

The password may be passed with --password or the STOREFRONT_PASSWORD
environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("STOREFRONT_PASSWORD")
			}
			if password == "" {
				return errors.New("password is required: use --password or STOREFRONT_PASSWORD")
			}

			sf, closeFn, err := a.open(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			s, err := sf.Session.Login(cmd.Context(), document, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", s.User.Name, s.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&document, "document", "", "CPF or CNPJ")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("document")

	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf, closeFn, err := a.open(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			sf.Session.Logout(cmd.Context())

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the remembered user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf, closeFn, err := a.open(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			s := sf.Session.Restore(cmd.Context())
			if !s.LoggedIn() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", s.User.Name, s.User.Email, s.User.DocumentID)
			return nil
		},
	}
}

func (a *app) orderCmd() *cobra.Command {
	var (
		items    []string
		customer domain.Customer
		noOpen   bool
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place an order without the interactive interface",
		Example: `  storefront order --item 1=2 --item 3=1 --name Ana --phone 27999999999 \
    --address "Rua A, 10"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			quantities, err := parseItems(items)
			if err != nil {
				return err
			}

			sf, closeFn, err := a.open(cmd, a.linkOpener(cmd, noOpen))
			if err != nil {
				return err
			}
			defer closeFn()

			if err := sf.Start(cmd.Context()); err != nil {
				return err
			}

			for _, q := range quantities {
				if _, ok := sf.Catalog.Product(q.id); !ok {
					return fmt.Errorf("product %d is not in the catalog", q.id)
				}
				sf.Cart.SetQuantity(q.id, q.quantity)
			}

			confirmation, err := sf.Orders.Submit(cmd.Context(), withPrefill(customer, sf.Session.PrefillCustomer()))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), confirmation.Summary)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&items, "item", nil, "product and quantity as ID=QTY, repeatable")
	cmd.Flags().StringVar(&customer.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&customer.Email, "email", "", "customer e-mail")
	cmd.Flags().StringVar(&customer.Phone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&customer.DocumentID, "document", "", "customer CPF or CNPJ")
	cmd.Flags().StringVar(&customer.Address, "address", "", "delivery address")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "print the WhatsApp link instead of opening it")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

// maxItemQuantity bounds the total ordered per product.
const maxItemQuantity = 10_000

type itemQuantity struct {
	id       domain.ProductID
	quantity int
}

// parseItems reads ID=QTY pairs. Repeated IDs are merged into one entry, in order of first appearance.
func parseItems(raw []string) ([]itemQuantity, error) {
	if len(raw) == 0 {
		return nil, errors.New("at least one --item is required")
	}

	items := make([]itemQuantity, 0, len(raw))
	seen := make(map[domain.ProductID]int, len(raw))
	for _, r := range raw {
		idPart, qtyPart, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("item %q: want ID=QTY", r)
		}

		id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("item %q: bad product id: %w", r, err)
		}

		qty, err := strconv.Atoi(strings.TrimSpace(qtyPart))
		if err != nil {
			return nil, fmt.Errorf("item %q: bad quantity: %w", r, err)
		}
		if qty < 1 {
			return nil, fmt.Errorf("item %q: quantity must be positive", r)
		}
		if qty > maxItemQuantity {
			return nil, fmt.Errorf("item %q: quantity above %d", r, maxItemQuantity)
		}

		pid := domain.ProductID(id)
		if i, ok := seen[pid]; ok {
			if items[i].quantity+qty > maxItemQuantity {
				return nil, fmt.Errorf("product %d: total quantity above %d", id, maxItemQuantity)
			}
			items[i].quantity += qty
			continue
		}

		seen[pid] = len(items)
		items = append(items, itemQuantity{id: pid, quantity: qty})
	}

	return items, nil
}

// withPrefill fills empty customer fields from the logged-in user.
func withPrefill(c, prefill domain.Customer) domain.Customer {
	if c.Name == "" {
		c.Name = prefill.Name
	}
	if c.Email == "" {
		c.Email = prefill.Email
	}
	if c.DocumentID == "" {
		c.DocumentID = prefill.DocumentID
	}
	return c
}
