package auth

import "github.com/spec-kit/movie-ticket-web/internal/domain"

// Landing paths per role.
const (
	LoginPath  = "/login"
	AdminHome  = "/admin"
	BrowseHome = "/browse"
)

// HomePath returns where a user with role lands after login. Anything that
// is not exactly ADMIN lands on the customer side.
func HomePath(role domain.Role) string {
	if role.IsAdmin() {
		return AdminHome
	}
	return BrowseHome
}

// HasRole reports whether user holds one of allowed. An empty allowed list
// admits any authenticated user. RoleCustomer admits every role except
// ADMIN, so unknown roles use the customer side; RoleAdmin is an exact match.
func HasRole(user *domain.User, allowed ...domain.Role) bool {
	if user == nil {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, role := range allowed {
		switch role {
		case domain.RoleCustomer:
			if !user.Role.IsAdmin() {
				return true
			}
		default:
			if user.Role == role {
				return true
			}
		}
	}
	return false
}
