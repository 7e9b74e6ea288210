// Package messaging builds and opens the deep link that hands an order over to a chat channel.
package messaging

import (
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://wa.me"

// Link returns <baseURL>/<recipient>?text=<text>, with the text percent-encoded
// the way browsers encode a URI component (spaces as %20).
func Link(baseURL, recipient, text string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")

	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(recipient) + "?text=" + escaped
}
