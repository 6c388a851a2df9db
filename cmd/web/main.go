package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/movie-ticket-web/internal/api/http"
	"github.com/spec-kit/movie-ticket-web/internal/api/http/handlers"
	"github.com/spec-kit/movie-ticket-web/internal/auth"
	"github.com/spec-kit/movie-ticket-web/internal/client"
	"github.com/spec-kit/movie-ticket-web/internal/config"
	"github.com/spec-kit/movie-ticket-web/internal/events"
	"github.com/spec-kit/movie-ticket-web/internal/observability"
	"github.com/spec-kit/movie-ticket-web/internal/persistence"
	"github.com/spec-kit/movie-ticket-web/internal/service"
	"github.com/spec-kit/movie-ticket-web/internal/session"
	"github.com/spec-kit/movie-ticket-web/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	kv, closeStore, err := persistence.OpenSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open session store", zap.String("store", cfg.Session.Store), zap.Error(err))
	}
	defer closeStore()
	janitorDone := worker.StartSessionJanitor(ctx, kv, cfg.Session.JanitorInterval(), logger)

	sessions := session.NewManager(kv, session.NewKeyer(cfg.Session.KeyPrefix, cfg.Session.Secret), session.ManagerConfig{
		CookieName:   cfg.Session.CookieName,
		TTL:          cfg.Session.TTL(),
		SecureCookie: cfg.Session.SecureCookie,
	}, logger)

	transport, err := client.NewTransport(cfg.Backend.BaseURL, cfg.Backend.ClientTimeout(), logger, metrics)
	if err != nil {
		logger.Fatal("invalid backend url", zap.String("url", cfg.Backend.BaseURL), zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	authService := service.NewAuthService(transport, dispatcher, logger)
	api := client.New(transport, authService, authService.HandleUnauthorized, metrics, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, kv, transport),
		Auth:           handlers.NewAuthHandler(authService),
		Customer:       handlers.NewCustomerHandler(api),
		Admin:          handlers.NewAdminHandler(api),
		Sessions:       sessions.Middleware(),
		Identity:       auth.NewIdentityMiddleware(authService),
		MetricsHandler: metrics.Handler(),
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("backend", cfg.Backend.BaseURL),
			zap.String("session_store", cfg.Session.Store))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	<-janitorDone
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
