// Package api is the REST client for the storefront backend. Every call
// speaks the backend's JSON envelope and resolves into either decoded data
// or an AppError; transport faults never escape as raw errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shopsphere/storefront-client/internal/config"
	apperrors "github.com/shopsphere/storefront-client/internal/errors"
	"github.com/shopsphere/storefront-client/internal/metrics"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means the call goes out anonymous.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func New(cfg *config.API, tokens TokenSource) *Client {

	transport := otelhttp.NewTransport(metrics.RoundTripper(http.DefaultTransport))

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		tokens: tokens,
	}
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodGet, path, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, path, body, dest)
}

func (c *Client) put(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPut, path, body, dest)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.InternalError("Failed to encode request body").WithError(err)
		}

		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.InternalError("Failed to build request").WithError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NetworkError("Could not reach the store service").WithError(err)
	}

	defer resp.Body.Close()

	return decodeResponse(resp, dest)
}
