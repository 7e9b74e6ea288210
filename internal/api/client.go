// Package api is the HTTP client of the remote catalog, login and order API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const (
	productsPath = "/produtos"
	loginPath    = "/login"
	ordersPath   = "/pedidos"

	requestIDHeader = "X-Request-ID"

	maxErrorBody = 4 << 10
)

// ErrEmptyBody is returned when a 2xx response carries no JSON value.
var ErrEmptyBody = errors.New("empty response body")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

type Options struct {
	BaseURL  string
	Username string
	Password string
	// Timeout of zero leaves the transport default in place.
	Timeout  time.Duration
	Currency currency.Unit

	HTTPClient *http.Client
	Logger     *zap.Logger
}

type Client struct {
	baseURL  string
	username string
	password string
	currency currency.Unit

	http   *http.Client
	logger *zap.Logger
}

func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is empty")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:  baseURL,
		username: opts.Username,
		password: opts.Password,
		currency: opts.Currency,
		http:     httpClient,
		logger:   logger,
	}, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO

	if _, err := c.do(ctx, http.MethodGet, productsPath, nil, &dtos); err != nil {
		return nil, fmt.Errorf("c.do: %w", err)
	}
	// a literal null decodes without error; only [] is an empty catalog
	if dtos == nil {
		return nil, fmt.Errorf("products: %w", ErrEmptyBody)
	}

	return mapProductsToDomain(dtos, c.currency), nil
}

func (c *Client) Login(ctx context.Context, identifier, secret string) (domain.User, error) {
	var resp loginResponse

	req := loginRequest{Document: identifier, Password: secret}
	if _, err := c.do(ctx, http.MethodPost, loginPath, req, &resp); err != nil {
		return domain.User{}, fmt.Errorf("c.do: %w", err)
	}

	user, err := mapUserToDomain(resp.User)
	if err != nil {
		return domain.User{}, fmt.Errorf("mapUserToDomain: %w", err)
	}

	return user, nil
}

func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	var body json.RawMessage

	// the acknowledgement is opaque, an empty one still confirms the order
	requestID, err := c.do(ctx, http.MethodPost, ordersPath, mapOrderFromDomain(order), &body)
	if err != nil && !errors.Is(err, ErrEmptyBody) {
		return domain.OrderConfirmation{}, fmt.Errorf("c.do: %w", err)
	}

	return domain.OrderConfirmation{
		RequestID: requestID,
		Body:      body,
	}, nil
}

// do sends one request and decodes a 2xx JSON body into out. It returns the request ID it sent.
// A 2xx response without a body yields ErrEmptyBody.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (string, error) {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return "", fmt.Errorf("json.Marshal: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	requestID := uuid.NewString()

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	logger := c.logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("request failed", zap.Error(err))
		return requestID, fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Warn("unexpected status", zap.Int("status", resp.StatusCode))
		return requestID, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if out == nil {
		return requestID, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return requestID, ErrEmptyBody
		}
		return requestID, fmt.Errorf("json.Decode: %w", err)
	}

	return requestID, nil
}
