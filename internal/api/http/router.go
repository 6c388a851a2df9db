package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/movie-ticket-web/internal/api/http/handlers"
	"github.com/spec-kit/movie-ticket-web/internal/auth"
	"github.com/spec-kit/movie-ticket-web/internal/domain"
	"github.com/spec-kit/movie-ticket-web/internal/guard"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Customer *handlers.CustomerHandler
	Admin    *handlers.AdminHandler
	// Sessions binds the visitor's token store; Identity resolves the user.
	Sessions       fiber.Handler
	Identity       *auth.IdentityMiddleware
	MetricsHandler http.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.MetricsHandler))
	}

	web := app.Group("", cfg.Sessions, cfg.Identity.Handle)

	// Prefix-less groups in fiber apply their handlers to every later route,
	// so the public and customer guards are attached per route.
	publicOnly := guard.PublicOnly()
	web.Get("/", publicOnly, cfg.Auth.Page("home"))
	web.Get("/login", publicOnly, cfg.Auth.Page("login"))
	web.Get("/register", publicOnly, cfg.Auth.Page("register"))

	web.Post("/login", cfg.Auth.Login)
	web.Post("/register", cfg.Auth.Register)
	web.Post("/logout", cfg.Auth.Logout)
	web.Get("/session", cfg.Auth.Session)

	customer := guard.Require(domain.RoleCustomer)
	web.Get("/browse", customer, cfg.Customer.Browse)
	web.Get("/search", customer, cfg.Customer.Search)
	web.Get("/movies/:id", customer, cfg.Customer.Movie)
	web.Get("/movies/:id/showtimes", customer, cfg.Customer.MovieShowtimes)
	web.Get("/showtimes/:id", customer, cfg.Customer.Showtime)
	web.Post("/bookings", customer, cfg.Customer.CreateBooking)
	web.Get("/bookings/my", customer, cfg.Customer.MyBookings)
	web.Get("/profile", customer, cfg.Customer.Profile)

	admin := web.Group("/admin", guard.Require(domain.RoleAdmin))
	admin.Get("/", cfg.Admin.Dashboard)

	admin.Get("/movies", cfg.Admin.ListMovies)
	admin.Post("/movies", cfg.Admin.CreateMovie)
	admin.Get("/movies/:id", cfg.Admin.GetMovie)
	admin.Put("/movies/:id", cfg.Admin.UpdateMovie)
	admin.Delete("/movies/:id", cfg.Admin.DeleteMovie)

	admin.Get("/theaters", cfg.Admin.ListTheaters)
	admin.Post("/theaters", cfg.Admin.CreateTheater)
	admin.Put("/theaters/:id", cfg.Admin.UpdateTheater)
	admin.Delete("/theaters/:id", cfg.Admin.DeleteTheater)

	admin.Get("/showtimes", cfg.Admin.ListShowtimes)
	admin.Post("/showtimes", cfg.Admin.CreateShowtime)
	admin.Put("/showtimes/:id", cfg.Admin.UpdateShowtime)
	admin.Delete("/showtimes/:id", cfg.Admin.DeleteShowtime)

	admin.Get("/bookings", cfg.Admin.ListBookings)
	admin.Get("/bookings/search", cfg.Admin.SearchBookings)
	admin.Get("/bookings/user/:userId", cfg.Admin.UserBookings)
	admin.Put("/bookings/:id/status", cfg.Admin.UpdateBookingStatus)
	admin.Delete("/bookings/:id", cfg.Admin.DeleteBooking)

	admin.Post("/users/:id/make-admin", cfg.Admin.MakeAdmin)
}
