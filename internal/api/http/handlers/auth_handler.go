package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-ticket-web/internal/api/dto"
	"github.com/spec-kit/movie-ticket-web/internal/auth"
	"github.com/spec-kit/movie-ticket-web/internal/domain"
	"github.com/spec-kit/movie-ticket-web/internal/guard"
)

// Authenticator signs visitors in and out of their session.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	Register(ctx context.Context, data domain.RegisterData) (*domain.AuthResult, error)
	Logout(ctx context.Context) error
}

// AuthHandler exposes the public entry pages and session endpoints.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authenticator Authenticator) *AuthHandler {
	return &AuthHandler{auth: authenticator}
}

// Page serves a public entry page by name.
func (h *AuthHandler) Page(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": fiber.Map{"page": name}})
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Register(c.UserContext(), domain.RegisterData{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": authResponse(result)})
}

// Logout handles POST /logout and sends the visitor to the login page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if err := h.auth.Logout(ctx); err != nil {
		return err
	}
	guard.NavigatorFromContext(ctx).Navigate(auth.LoginPath)
	return c.SendStatus(http.StatusNoContent)
}

// Session handles GET /session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	resp := dto.SessionResponse{}
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Authenticated() {
		resp.Authenticated = true
		resp.User = principal.User
		resp.IsAdmin = principal.User.IsAdmin()
		resp.IsCustomer = principal.User.Role == domain.RoleCustomer
	}
	return c.JSON(fiber.Map{"data": resp})
}

func authResponse(result *domain.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{User: result.User, Redirect: auth.HomePath(result.User.Role)}
}
