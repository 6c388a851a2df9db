package guard

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-ticket-web/internal/auth"
	"github.com/spec-kit/movie-ticket-web/internal/domain"
	apperrors "github.com/spec-kit/movie-ticket-web/pkg/util/errorutil"
)

const stateLocal = "guard_state"

// AccessDenied is the placeholder shown on forbidden pages.
const AccessDenied = "access denied"

// fiberNavigator records the first navigation issued during a request.
type fiberNavigator struct {
	mu     sync.Mutex
	target string
}

func (n *fiberNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.target == "" {
		n.target = path
	}
}

func (n *fiberNavigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// Navigation binds a per-request Navigator into the user context. When
// anything downstream navigated, the response becomes a 303 to that path
// and the downstream error, if any, is dropped.
func Navigation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		nav := &fiberNavigator{}
		c.SetUserContext(WithNavigator(c.UserContext(), nav))

		err := c.Next()
		target := nav.Target()
		if target == "" {
			return err
		}
		return Redirect(c, target)
	}
}

// Redirect answers with 303 See Other and a JSON hint for API callers.
func Redirect(c *fiber.Ctx, path string) error {
	body := fiber.Map{"redirect": path}
	if state, ok := c.Locals(stateLocal).(State); ok && state == StateForbidden {
		body["message"] = AccessDenied
	}
	c.Set(fiber.HeaderLocation, path)
	return c.Status(fiber.StatusSeeOther).JSON(body)
}

// Require admits only visitors holding one of allowed; with no roles any
// authenticated visitor passes. Must run after the identity middleware.
func Require(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, loading := principal(c)
		decision := Evaluate(user, loading, allowed)
		c.Locals(stateLocal, decision.State)

		switch decision.State {
		case StateAuthorized:
			return c.Next()
		case StateLoading:
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"state": decision.State})
		case StateForbidden:
			// already on the role home, so a redirect would loop
			if decision.Redirect == c.Path() {
				return apperrors.NewForbidden(AccessDenied)
			}
		}

		nav, bound := boundNavigator(c.UserContext())
		if !bound {
			return Redirect(c, decision.Redirect)
		}
		New(nav, allowed...).Update(user, loading)
		return c.Status(fiber.StatusSeeOther).JSON(fiber.Map{"state": decision.State})
	}
}

// PublicOnly sends authenticated visitors of public entry pages to their
// role home.
func PublicOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, loading := principal(c)
		if loading || user == nil {
			return c.Next()
		}
		home := auth.HomePath(user.Role)
		nav, bound := boundNavigator(c.UserContext())
		if !bound {
			return Redirect(c, home)
		}
		nav.Navigate(home)
		return nil
	}
}

func principal(c *fiber.Ctx) (*domain.User, bool) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok || p == nil {
		return nil, false
	}
	return p.User, p.Loading
}
