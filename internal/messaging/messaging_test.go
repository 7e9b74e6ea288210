package messaging

import (
	"bytes"
	"context"
	"net/url"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLink(t *testing.T) {
	tests := []struct {
		name      string
		baseURL   string
		recipient string
		text      string
		want      string
	}{
		{
			name:      "spaces and newlines: percent-encoded",
			baseURL:   "https://wa.me",
			recipient: "5527992999497",
			text:      "*Novo Pedido - Ana*\n\nTotal: R$ 20.00",
			want:      "https://wa.me/5527992999497?text=%2ANovo%20Pedido%20-%20Ana%2A%0A%0ATotal%3A%20R%24%2020.00",
		},
		{
			name:      "plus and ampersand: escaped",
			baseURL:   "https://wa.me/",
			recipient: "1",
			text:      "a+b&c=d",
			want:      "https://wa.me/1?text=a%2Bb%26c%3Dd",
		},
		{
			name:      "empty base URL: default",
			recipient: "1",
			text:      "hi",
			want:      "https://wa.me/1?text=hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Link(tt.baseURL, tt.recipient, tt.text)
			assert.Equal(t, tt.want, got)

			parsed, err := url.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, tt.text, parsed.Query().Get("text"))
		})
	}
}

func TestLink_Unicode(t *testing.T) {
	text := "• Pão de queijo - 2x"

	parsed, err := url.Parse(Link("", "55", text))
	require.NoError(t, err)
	assert.Equal(t, text, parsed.Query().Get("text"))
}

func TestPrintOpener(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewPrintOpener(&buf).Open(t.Context(), "https://wa.me/1?text=hi"))
	assert.Equal(t, "Open to confirm your order: https://wa.me/1?text=hi\n", buf.String())
}

func TestBrowserOpener(t *testing.T) {
	done := make(chan string, 1)

	o := NewBrowserOpener(nil)
	o.command = func(ctx context.Context, link string) *exec.Cmd {
		done <- link
		return exec.CommandContext(ctx, "true")
	}

	require.NoError(t, o.Open(t.Context(), "https://wa.me/1"))
	assert.Equal(t, "https://wa.me/1", <-done)
}

func TestBrowserOpener_MissingBinary(t *testing.T) {
	o := NewBrowserOpener(nil)
	o.command = func(ctx context.Context, link string) *exec.Cmd {
		return exec.CommandContext(ctx, "/nonexistent/storefront-opener", link)
	}

	require.Error(t, o.Open(t.Context(), "https://wa.me/1"))
}
