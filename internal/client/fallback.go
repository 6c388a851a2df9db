package client

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-ticket-web/internal/observability"
	apperrors "github.com/spec-kit/movie-ticket-web/pkg/util/errorutil"
)

var errNoCandidates = errors.New("fallback chain has no candidates")

// Candidate is one way of obtaining a result.
type Candidate[T any] struct {
	Name string
	Call func(ctx context.Context) (T, error)
}

// Chain tries candidates in order and returns the first success. Retry
// decides whether a failure moves on to the next candidate; nil retries
// every failure. When all candidates fail the first error is returned.
type Chain[T any] struct {
	Operation  string
	Candidates []Candidate[T]
	Retry      func(error) bool
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// Run executes the chain.
func (ch Chain[T]) Run(ctx context.Context) (T, error) {
	var zero T
	var first error
	logger := ch.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for i, candidate := range ch.Candidates {
		if i > 0 {
			if ctx.Err() != nil {
				break
			}
			ch.Metrics.RecordFallback(ch.Operation)
		}
		out, err := candidate.Call(ctx)
		if err == nil {
			return out, nil
		}
		if first == nil {
			first = err
		}
		if ch.Retry != nil && !ch.Retry(err) {
			return zero, err
		}
		logger.Debug("fallback candidate failed",
			zap.String("operation", ch.Operation),
			zap.String("candidate", candidate.Name),
			zap.Error(err),
		)
	}
	if first == nil {
		first = errNoCandidates
	}
	return zero, first
}

// RetryUnlessUnauthorized keeps going on everything but a rejected session.
func RetryUnlessUnauthorized(err error) bool {
	return !errors.Is(err, apperrors.ErrUnauthorized)
}

// RetryOnStatus keeps going only on the given backend statuses.
func RetryOnStatus(statuses ...int) func(error) bool {
	return func(err error) bool {
		status, ok := apperrors.UpstreamStatus(err)
		if !ok {
			return false
		}
		for _, s := range statuses {
			if s == status {
				return true
			}
		}
		return false
	}
}

// endpointCandidates turns a list of GET endpoints into candidates.
func endpointCandidates[T any](c *Client, endpoints ...string) []Candidate[T] {
	candidates := make([]Candidate[T], 0, len(endpoints))
	for _, endpoint := range endpoints {
		candidates = append(candidates, Candidate[T]{
			Name: endpoint,
			Call: func(ctx context.Context) (T, error) {
				return Get[T](ctx, c, endpoint)
			},
		})
	}
	return candidates
}
