package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-ticket-web/internal/events"
	"github.com/spec-kit/movie-ticket-web/internal/observability"
)

// AuditService records session lifecycle events in logs and metrics.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoggedIn, a.handleSignedIn)
	a.dispatcher.Subscribe(events.EventRegistered, a.handleSignedIn)
	a.dispatcher.Subscribe(events.EventLoggedOut, a.handleLoggedOut)
	a.dispatcher.Subscribe(events.EventSessionInvalidated, a.handleInvalidated)
}

func (a *AuditService) handleSignedIn(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	a.metrics.RecordAuthEvent(string(event.Type))
	return nil
}

func (a *AuditService) handleLoggedOut(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), zap.String("user_id", event.UserID))
	a.metrics.RecordAuthEvent(string(event.Type))
	return nil
}

func (a *AuditService) handleInvalidated(_ context.Context, event events.Event) error {
	reason := ""
	if payload, ok := event.Payload.(events.InvalidationPayload); ok {
		reason = payload.Reason
	}
	a.logger.Warn("session invalidated", zap.String("user_id", event.UserID), zap.String("reason", reason))
	a.metrics.RecordAuthEvent(string(event.Type))
	return nil
}
