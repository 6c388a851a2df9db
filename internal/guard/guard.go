// Package guard decides whether a visitor may see a protected page and
// where to send them otherwise.
package guard

import (
	"sync"

	"github.com/spec-kit/movie-ticket-web/internal/auth"
	"github.com/spec-kit/movie-ticket-web/internal/domain"
)

// State of a guarded page.
type State string

const (
	StateLoading         State = "LOADING"
	StateAuthorized      State = "AUTHORIZED"
	StateUnauthenticated State = "UNAUTHENTICATED"
	StateForbidden       State = "FORBIDDEN"
)

// Decision is the outcome of evaluating a visitor against a page.
type Decision struct {
	State    State
	Redirect string
}

// Evaluate maps (user, loading) onto a guard state. An empty allowed list
// admits any authenticated user.
func Evaluate(user *domain.User, loading bool, allowed []domain.Role) Decision {
	switch {
	case loading:
		return Decision{State: StateLoading}
	case user == nil:
		return Decision{State: StateUnauthenticated, Redirect: auth.LoginPath}
	case !auth.HasRole(user, allowed...):
		return Decision{State: StateForbidden, Redirect: auth.HomePath(user.Role)}
	default:
		return Decision{State: StateAuthorized}
	}
}

// Guard tracks one protected page. Navigation is issued at most once for
// as long as the page stays in a non-authorized state.
type Guard struct {
	mu          sync.Mutex
	nav         Navigator
	allowed     []domain.Role
	redirecting bool
}

// New builds a Guard admitting the given roles.
func New(nav Navigator, allowed ...domain.Role) *Guard {
	if nav == nil {
		nav = noopNavigator{}
	}
	return &Guard{nav: nav, allowed: allowed}
}

// Update re-evaluates the page and navigates when a redirect is due.
func (g *Guard) Update(user *domain.User, loading bool) Decision {
	decision := Evaluate(user, loading, g.allowed)

	g.mu.Lock()
	defer g.mu.Unlock()
	switch decision.State {
	case StateAuthorized:
		g.redirecting = false
	case StateUnauthenticated, StateForbidden:
		if !g.redirecting {
			g.redirecting = true
			g.nav.Navigate(decision.Redirect)
		}
	}
	return decision
}

// Redirecting reports whether navigation has been issued.
func (g *Guard) Redirecting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.redirecting
}
