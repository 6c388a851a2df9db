package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-ticket-web/internal/service"
	"github.com/spec-kit/movie-ticket-web/internal/session"
)

// StartAuditWorker registers the session audit handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}

// StartSessionJanitor purges expired sessions in the background until ctx
// is cancelled. The returned channel closes once the janitor has exited.
func StartSessionJanitor(ctx context.Context, kv session.KV, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		session.RunJanitor(ctx, kv, interval, logger)
	}()
	return done
}
