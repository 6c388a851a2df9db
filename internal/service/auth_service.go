package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/spec-kit/movie-ticket-web/internal/auth"
	"github.com/spec-kit/movie-ticket-web/internal/client"
	"github.com/spec-kit/movie-ticket-web/internal/domain"
	"github.com/spec-kit/movie-ticket-web/internal/events"
	"github.com/spec-kit/movie-ticket-web/internal/guard"
	"github.com/spec-kit/movie-ticket-web/internal/session"
	apperrors "github.com/spec-kit/movie-ticket-web/pkg/util/errorutil"
)

// Failure messages surfaced to the login and registration pages.
const (
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
	MsgUserDataFailed     = "Failed to get user data"
)

// AuthService coordinates login, registration and identity resolution for
// the visitor session bound to a request context.
type AuthService struct {
	transport  *client.Transport
	dispatcher events.Dispatcher
	logger     *zap.Logger
	lookups    singleflight.Group
	now        func() time.Time
}

// NewAuthService builds the service. dispatcher may be nil.
func NewAuthService(transport *client.Transport, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		transport:  transport,
		dispatcher: dispatcher,
		logger:     logger.Named("auth"),
		now:        time.Now,
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token and resolves the user behind it.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	return s.authenticate(ctx, "/api/auth/login", creds, MsgLoginFailed, events.EventLoggedIn)
}

// Register creates an account and signs the visitor in.
func (s *AuthService) Register(ctx context.Context, data domain.RegisterData) (*domain.AuthResult, error) {
	return s.authenticate(ctx, "/api/auth/register", data, MsgRegistrationFailed, events.EventRegistered)
}

func (s *AuthService) authenticate(ctx context.Context, endpoint string, payload any, failure string, eventType events.EventType) (*domain.AuthResult, error) {
	resp, err := s.transport.Send(ctx, http.MethodPost, endpoint, payload, nil)
	if err != nil {
		return nil, apperrors.NewBadGateway("backend unreachable", err)
	}
	if !resp.OK() {
		return nil, apperrors.NewAuthError(failure, resp.Text())
	}

	var body tokenResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil || body.Token == "" {
		return nil, apperrors.NewAuthError(failure, "")
	}

	if err := session.TokenStoreFromContext(ctx).Set(ctx, body.Token); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user, _ := s.CurrentUser(ctx)
	if user == nil {
		return nil, apperrors.NewAuthError(MsgUserDataFailed, "")
	}

	s.publish(ctx, events.NewEvent(eventType, string(user.ID), events.LoginPayload{Role: string(user.Role)}))
	return &domain.AuthResult{Token: body.Token, User: user}, nil
}

// Logout forgets the stored token. The backend is not contacted.
func (s *AuthService) Logout(ctx context.Context) error {
	tokens := session.TokenStoreFromContext(ctx)
	token, ok := tokens.Get(ctx)
	if err := tokens.Remove(ctx); err != nil {
		return apperrors.NewInternalError(err)
	}
	if ok {
		s.publish(ctx, events.NewEvent(events.EventLoggedOut, subjectOf(token), nil))
	}
	return nil
}

// Invalidate drops the stored token after the backend rejected it.
func (s *AuthService) Invalidate(ctx context.Context) {
	tokens := session.TokenStoreFromContext(ctx)
	token, ok := tokens.Get(ctx)
	if !ok {
		return
	}
	s.invalidate(ctx, tokens, token, events.ReasonRejected)
}

// HandleUnauthorized is the backend client's 401 hook: the session ends and
// the visitor is sent to the login page.
func (s *AuthService) HandleUnauthorized(ctx context.Context) {
	s.Invalidate(ctx)
	guard.NavigatorFromContext(ctx).Navigate(auth.LoginPath)
}

// CurrentUser resolves the visitor's identity. It returns nil without an
// error when there is no usable session.
//
// Order: stored token, payload decode, expiry, then the backend profile.
// A profile 401 ends the session; any other profile failure falls back to
// the identity carried in the token.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	tokens := session.TokenStoreFromContext(ctx)
	token, ok := tokens.Get(ctx)
	if !ok {
		return nil, nil
	}

	claims := auth.Decode(token)
	if claims == nil {
		s.invalidate(ctx, tokens, token, events.ReasonMalformedToken)
		return nil, nil
	}
	if claims.Expired(s.now()) {
		s.invalidate(ctx, tokens, token, events.ReasonTokenExpired)
		return nil, nil
	}

	profile, err := s.profile(ctx, token)
	switch {
	case err == nil:
		return mergeIdentity(profile, claims), nil
	case errors.Is(err, apperrors.ErrUnauthorized):
		s.invalidate(ctx, tokens, token, events.ReasonRejected)
		return nil, nil
	default:
		s.logger.Debug("profile lookup failed, using token claims", zap.Error(err))
		return claims.User(), nil
	}
}

// AuthHeaders returns the bearer header for the stored token, if any.
func (s *AuthService) AuthHeaders(ctx context.Context) map[string]string {
	token, ok := session.TokenStoreFromContext(ctx).Get(ctx)
	if !ok {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// profile looks the token up on the backend. Concurrent lookups of the same
// token share one request.
func (s *AuthService) profile(ctx context.Context, token string) (domain.User, error) {
	v, err, _ := s.lookups.Do(token, func() (any, error) {
		endpoint := "/api/auth/user?token=" + url.QueryEscape(token)
		resp, err := s.transport.Send(ctx, http.MethodGet, endpoint, nil, map[string]string{
			"Authorization": "Bearer " + token,
		})
		if err != nil {
			return nil, err
		}
		switch {
		case resp.Status == http.StatusUnauthorized:
			return nil, apperrors.NewUnauthorized("Unauthorized")
		case !resp.OK():
			return nil, apperrors.NewUpstreamError(resp.Status, resp.Text())
		}
		var user domain.User
		if err := json.Unmarshal(resp.Body, &user); err != nil {
			return nil, apperrors.NewBadGateway("invalid profile response", err)
		}
		return user, nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return v.(domain.User), nil
}

func (s *AuthService) invalidate(ctx context.Context, tokens session.Tokens, token, reason string) {
	if err := tokens.Remove(ctx); err != nil {
		s.logger.Warn("failed to remove token", zap.Error(err))
	}
	s.publish(ctx, events.NewEvent(events.EventSessionInvalidated, subjectOf(token), events.InvalidationPayload{Reason: reason}))
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// mergeIdentity prefers the backend profile and fills gaps from the token.
func mergeIdentity(profile domain.User, claims *auth.Claims) *domain.User {
	fallback := claims.User()
	user := profile
	if user.ID == "" {
		user.ID = fallback.ID
	}
	if user.Name == "" {
		user.Name = fallback.Name
	}
	if user.Email == "" {
		user.Email = fallback.Email
	}
	if user.Role == "" || user.Role == domain.RoleUnknown {
		user.Role = fallback.Role
	}
	return &user
}

func subjectOf(token string) string {
	if claims := auth.Decode(token); claims != nil {
		return claims.Subject
	}
	return ""
}
