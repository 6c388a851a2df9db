package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-ticket-web/internal/domain"
)

const principalKey = "auth_principal"

// Principal is the identity resolved for the current request. Loading stays
// true only while resolution has not completed.
type Principal struct {
	User    *domain.User
	Loading bool
}

// Authenticated reports whether a user was resolved.
func (p *Principal) Authenticated() bool {
	return p != nil && p.User != nil
}

// IdentityResolver resolves the visitor behind a request context.
type IdentityResolver interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// IdentityMiddleware resolves the current user once per request.
type IdentityMiddleware struct {
	resolver IdentityResolver
}

// NewIdentityMiddleware constructs middleware.
func NewIdentityMiddleware(resolver IdentityResolver) *IdentityMiddleware {
	return &IdentityMiddleware{resolver: resolver}
}

// Handle stores the resolved Principal in the request locals. Resolution
// failures leave the request anonymous.
func (m *IdentityMiddleware) Handle(c *fiber.Ctx) error {
	principal := &Principal{Loading: true}
	c.Locals(principalKey, principal)

	user, err := m.resolver.CurrentUser(c.UserContext())
	if err != nil {
		user = nil
	}
	principal.User = user
	principal.Loading = false
	return c.Next()
}

// PrincipalFromContext retrieves the resolved identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
