package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// TokenSlot names the single slot holding the bearer token.
const TokenSlot = "movie_ticket_jwt"

// Tokens is the token persistence seen by the auth service.
type Tokens interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// TokenStore keeps the bearer token of one visitor session.
type TokenStore struct {
	kv     KV
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewTokenStore binds a store to one fully derived key.
func NewTokenStore(kv KV, key string, ttl time.Duration, logger *zap.Logger) *TokenStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenStore{kv: kv, key: key, ttl: ttl, logger: logger}
}

// Get reports the stored token. Read failures count as absent.
func (s *TokenStore) Get(ctx context.Context) (string, bool) {
	token, err := s.kv.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("token read failed", zap.Error(err))
		}
		return "", false
	}
	return token, token != ""
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	return s.kv.Save(ctx, s.key, token, s.ttl)
}

func (s *TokenStore) Remove(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}

func (s *TokenStore) touch(ctx context.Context) error {
	return s.kv.Touch(ctx, s.key, s.ttl)
}

// noopTokens is used when no visitor session is bound to the context.
type noopTokens struct{}

func (noopTokens) Get(context.Context) (string, bool) { return "", false }
func (noopTokens) Set(context.Context, string) error  { return nil }
func (noopTokens) Remove(context.Context) error       { return nil }

type tokenStoreKey struct{}

// WithTokenStore binds a token store to ctx.
func WithTokenStore(ctx context.Context, tokens Tokens) context.Context {
	return context.WithValue(ctx, tokenStoreKey{}, tokens)
}

// TokenStoreFromContext returns the bound store, or a no-op store outside a session.
func TokenStoreFromContext(ctx context.Context) Tokens {
	if ctx != nil {
		if tokens, ok := ctx.Value(tokenStoreKey{}).(Tokens); ok && tokens != nil {
			return tokens
		}
	}
	return noopTokens{}
}
