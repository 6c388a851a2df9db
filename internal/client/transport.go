package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-ticket-web/internal/observability"
)

// Response is a raw backend answer.
type Response struct {
	Status int
	Body   []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Text returns the body as text.
func (r *Response) Text() string {
	return string(r.Body)
}

// Transport sends JSON requests to the movie backend. It reports only
// transport failures as errors; every HTTP status is returned as a Response.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewTransport validates baseURL and builds a Transport bounded by timeout.
func NewTransport(baseURL string, timeout time.Duration, logger *zap.Logger, metrics *observability.Metrics) (*Transport, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("backend"),
		metrics:    metrics,
	}, nil
}

// Send issues method to baseURL+endpoint. A nil body sends no payload.
// Content-Type defaults to JSON and headers override it.
func (t *Transport) Send(ctx context.Context, method, endpoint string, body any, headers map[string]string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	log := t.logger.With(zap.String("method", method), zap.String("endpoint", endpoint))
	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.metrics.RecordUpstream(method, 0)
		log.Warn("backend request failed", zap.Error(err))
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.metrics.RecordUpstream(method, resp.StatusCode)
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	t.metrics.RecordUpstream(method, resp.StatusCode)
	log.Debug("backend responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// Ping checks that the backend answers HTTP at all; any status counts.
func (t *Transport) Ping(ctx context.Context) error {
	_, err := t.Send(ctx, http.MethodGet, "/", nil, nil)
	return err
}
