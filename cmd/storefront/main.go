package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/messaging"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/shutdown"
	"github.com/nikolayk812/storefront/internal/storefront"
	"github.com/nikolayk812/storefront/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}

// app carries what PersistentPreRunE prepares for every command.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Browse the catalog, fill a cart and place orders from the terminal",
		Long: `storefront is a client for the store API.

Run without arguments to start the interactive interface. Placed orders are
handed over to WhatsApp through a deep link.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runInteractive,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.productsCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.orderCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	a.cfg = cfg

	opts := logging.Options{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Verbose:     a.verbose,
	}

	// The terminal UI owns the screen: log to a file or nowhere.
	if cmd == cmd.Root() {
		if cfg.Logging.File == "" {
			a.logger = zap.NewNop()
			return nil
		}
		opts.OutputPaths = []string{cfg.Logging.File}
	}

	logger, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("logging.New: %w", err)
	}
	a.logger = logger

	return nil
}

// linkOpener prints links unless browser hand-off is configured and not suppressed.
func (a *app) linkOpener(cmd *cobra.Command, noOpen bool) port.LinkOpener {
	if a.cfg.Messaging.OpenBrowser && !noOpen {
		return messaging.NewBrowserOpener(a.logger.Named("opener"))
	}
	return messaging.NewPrintOpener(cmd.OutOrStdout())
}

func (a *app) open(cmd *cobra.Command, opener port.LinkOpener) (*storefront.Storefront, func(), error) {
	sf, closeFn, err := storefront.Open(cmd.Context(), a.cfg, opener, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("storefront.Open: %w", err)
	}

	return sf, closeFn, nil
}

func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	// The interface shows the link itself; printing it would corrupt the screen.
	var opener port.LinkOpener
	if a.cfg.Messaging.OpenBrowser {
		opener = messaging.NewBrowserOpener(a.logger.Named("opener"))
	}

	sf, closeFn, err := a.open(cmd, opener)
	if err != nil {
		return err
	}
	defer closeFn()

	return tui.Run(cmd.Context(), sf)
}
