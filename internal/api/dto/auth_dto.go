package dto

import "github.com/spec-kit/movie-ticket-web/internal/domain"

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest payload for POST /register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is returned by login and registration. The bearer token
// stays in the server-side session and is never sent to the browser.
type AuthResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

// SessionResponse describes the visitor behind the current session.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user"`
	IsAdmin       bool         `json:"is_admin"`
	IsCustomer    bool         `json:"is_customer"`
}
