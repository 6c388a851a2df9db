package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-ticket-web/internal/api/dto"
	"github.com/spec-kit/movie-ticket-web/internal/client"
	"github.com/spec-kit/movie-ticket-web/internal/domain"
)

// CustomerHandler serves the customer pages.
type CustomerHandler struct {
	api *client.Client
}

// NewCustomerHandler constructs handler.
func NewCustomerHandler(api *client.Client) *CustomerHandler {
	return &CustomerHandler{api: api}
}

// Browse GET /browse.
func (h *CustomerHandler) Browse(c *fiber.Ctx) error {
	movies, err := h.api.Movies(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nonNil(movies)})
}

// Search GET /search?title=. A blank title searches nothing.
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		return c.JSON(fiber.Map{"data": []domain.Movie{}})
	}
	movies, err := h.api.SearchMovies(c.UserContext(), title)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nonNil(movies)})
}

// Movie GET /movies/:id.
func (h *CustomerHandler) Movie(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	movie, err := h.api.MovieWithFallback(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": movie})
}

// MovieShowtimes GET /movies/:id/showtimes.
func (h *CustomerHandler) MovieShowtimes(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	showtimes, err := h.api.MovieShowtimes(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nonNil(showtimes)})
}

// Showtime GET /showtimes/:id.
func (h *CustomerHandler) Showtime(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	showtime, err := h.api.Showtime(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": showtime})
}

// CreateBooking POST /bookings.
func (h *CustomerHandler) CreateBooking(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	booking, err := h.api.CreateBooking(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": booking})
}

// MyBookings GET /bookings/my.
func (h *CustomerHandler) MyBookings(c *fiber.Ctx) error {
	bookings, err := h.api.MyBookings(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookings})
}

// Profile GET /profile.
func (h *CustomerHandler) Profile(c *fiber.Ctx) error {
	profile, err := h.api.UserProfile(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profile})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
