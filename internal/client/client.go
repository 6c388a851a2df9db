package client

import (
	"bytes"
	"context"
	"encoding/json"
	"maps"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-ticket-web/internal/observability"
	apperrors "github.com/spec-kit/movie-ticket-web/pkg/util/errorutil"
)

// ServiceUnavailableMessage is reported for any 503 from the backend.
const ServiceUnavailableMessage = "Service is temporarily unavailable. Please try again later."

// HeaderSource supplies per-visitor authorization headers.
type HeaderSource interface {
	AuthHeaders(ctx context.Context) map[string]string
}

// UnauthorizedHook runs whenever the backend answers 401.
type UnauthorizedHook func(ctx context.Context)

// Client is the authenticated backend client used by page handlers.
type Client struct {
	transport      *Transport
	headers        HeaderSource
	onUnauthorized UnauthorizedHook
	metrics        *observability.Metrics
	logger         *zap.Logger
}

// New builds a Client. headers and onUnauthorized may be nil.
func New(transport *Transport, headers HeaderSource, onUnauthorized UnauthorizedHook, metrics *observability.Metrics, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		transport:      transport,
		headers:        headers,
		onUnauthorized: onUnauthorized,
		metrics:        metrics,
		logger:         logger.Named("api_client"),
	}
}

// Request sends one backend call and decodes a 2xx body into T.
//
// Headers are layered: JSON content type, then the visitor's auth headers,
// then headers, so callers can override either. A 401 fires the
// unauthorized hook before failing.
func Request[T any](ctx context.Context, c *Client, method, endpoint string, body any, headers map[string]string) (T, error) {
	var zero T

	merged := map[string]string{"Content-Type": "application/json"}
	if c.headers != nil {
		maps.Copy(merged, c.headers.AuthHeaders(ctx))
	}
	maps.Copy(merged, headers)

	resp, err := c.transport.Send(ctx, method, endpoint, body, merged)
	if err != nil {
		return zero, apperrors.NewBadGateway("backend unreachable", err)
	}

	switch {
	case resp.Status == http.StatusUnauthorized:
		c.logger.Info("backend rejected session", zap.String("endpoint", endpoint))
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return zero, apperrors.NewUnauthorized("Unauthorized")
	case resp.Status == http.StatusServiceUnavailable:
		return zero, apperrors.NewServiceUnavailable(ServiceUnavailableMessage)
	case !resp.OK():
		return zero, apperrors.NewUpstreamError(resp.Status, resp.Text())
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return zero, nil
	}
	var out T
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return zero, apperrors.NewBadGateway("invalid backend response", err)
	}
	return out, nil
}

func Get[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return Request[T](ctx, c, http.MethodGet, endpoint, nil, nil)
}

func Post[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	return Request[T](ctx, c, http.MethodPost, endpoint, body, nil)
}

func Put[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	return Request[T](ctx, c, http.MethodPut, endpoint, body, nil)
}

func Delete[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return Request[T](ctx, c, http.MethodDelete, endpoint, nil, nil)
}

// Exec sends a call whose response body is ignored.
func Exec(ctx context.Context, c *Client, method, endpoint string, body any) error {
	_, err := Request[json.RawMessage](ctx, c, method, endpoint, body, nil)
	return err
}
