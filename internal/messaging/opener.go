package messaging

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// BrowserOpener launches the platform URL handler and does not wait for it.
type BrowserOpener struct {
	logger *zap.Logger

	// command builds the process to start; tests swap it out.
	command func(ctx context.Context, link string) *exec.Cmd
}

func NewBrowserOpener(logger *zap.Logger) *BrowserOpener {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BrowserOpener{
		logger:  logger,
		command: systemOpenCommand,
	}
}

func (o *BrowserOpener) Open(ctx context.Context, link string) error {
	cmd := o.command(context.WithoutCancel(ctx), link)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cmd.Start: %w", err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			o.logger.Warn("link handler exited with error", zap.Error(err))
		}
	}()

	return nil
}

func systemOpenCommand(ctx context.Context, link string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", link)
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", link)
	default:
		return exec.CommandContext(ctx, "xdg-open", link)
	}
}

// PrintOpener writes the link for the user to follow manually.
type PrintOpener struct {
	w io.Writer
}

func NewPrintOpener(w io.Writer) *PrintOpener {
	return &PrintOpener{w: w}
}

func (o *PrintOpener) Open(_ context.Context, link string) error {
	_, err := fmt.Fprintf(o.w, "Open to confirm your order: %s\n", link)
	return err
}
