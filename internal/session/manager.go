package session

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ManagerConfig configures the session cookie.
type ManagerConfig struct {
	CookieName   string
	TTL          time.Duration
	SecureCookie bool
}

// Manager issues session cookies and binds a TokenStore to every request.
type Manager struct {
	kv     KV
	keyer  Keyer
	cfg    ManagerConfig
	logger *zap.Logger
}

// NewManager builds a Manager.
func NewManager(kv KV, keyer Keyer, cfg ManagerConfig, logger *zap.Logger) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "sid"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{kv: kv, keyer: keyer, cfg: cfg, logger: logger.Named("session")}
}

// Store returns the token store for a session id.
func (m *Manager) Store(sessionID string) *TokenStore {
	return NewTokenStore(m.kv, m.keyer.Key(sessionID, TokenSlot), m.cfg.TTL, m.logger)
}

// Middleware resolves or mints the session id, binds the token store into
// the request's user context and slides the TTL after the handler ran.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(m.cfg.CookieName)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}
		m.setCookie(c, sessionID)

		store := m.Store(sessionID)
		c.SetUserContext(WithTokenStore(c.UserContext(), store))

		err := c.Next()

		touchCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if touchErr := store.touch(touchCtx); touchErr != nil {
			m.logger.Warn("session touch failed", zap.Error(touchErr))
		}
		return err
	}
}

func (m *Manager) setCookie(c *fiber.Ctx, sessionID string) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HTTPOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// RunJanitor purges expired sessions until ctx is done. Stores that expire
// entries themselves (Redis) are left alone.
func RunJanitor(ctx context.Context, kv KV, interval time.Duration, logger *zap.Logger) {
	purger, ok := kv.(Purger)
	if !ok || interval <= 0 {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("session_janitor")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("session janitor stopped")
			return
		case <-ticker.C:
			removed, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Debug("expired sessions purged", zap.Int64("removed", removed))
			}
		}
	}
}
