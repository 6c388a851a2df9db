package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-ticket-web/internal/api/dto"
	"github.com/spec-kit/movie-ticket-web/internal/client"
	apperrors "github.com/spec-kit/movie-ticket-web/pkg/util/errorutil"
)

// AdminHandler serves the back-office pages.
type AdminHandler struct {
	api *client.Client
}

// NewAdminHandler constructs handler.
func NewAdminHandler(api *client.Client) *AdminHandler {
	return &AdminHandler{api: api}
}

// Dashboard GET /admin.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.api.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	stats.RecentBookings = nonNil(stats.RecentBookings)
	return c.JSON(fiber.Map{"data": stats})
}

// ListMovies GET /admin/movies.
func (h *AdminHandler) ListMovies(c *fiber.Ctx) error {
	movies, err := h.api.AdminMovies(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nonNil(movies)})
}

// GetMovie GET /admin/movies/:id.
func (h *AdminHandler) GetMovie(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	movie, err := h.api.AdminMovie(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": movie})
}

// CreateMovie POST /admin/movies.
func (h *AdminHandler) CreateMovie(c *fiber.Ctx) error {
	var req dto.MovieRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	movie, err := h.api.CreateMovie(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": movie})
}

// UpdateMovie PUT /admin/movies/:id.
func (h *AdminHandler) UpdateMovie(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.MovieRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	movie, err := h.api.UpdateMovie(c.UserContext(), id, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": movie})
}

// DeleteMovie DELETE /admin/movies/:id.
func (h *AdminHandler) DeleteMovie(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.api.DeleteMovie(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListTheaters GET /admin/theaters.
func (h *AdminHandler) ListTheaters(c *fiber.Ctx) error {
	theaters, err := h.api.AdminTheaters(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nonNil(theaters)})
}

// CreateTheater POST /admin/theaters.
func (h *AdminHandler) CreateTheater(c *fiber.Ctx) error {
	var req dto.TheaterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	theater, err := h.api.CreateTheater(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": theater})
}

// UpdateTheater PUT /admin/theaters/:id.
func (h *AdminHandler) UpdateTheater(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.TheaterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	theater, err := h.api.UpdateTheater(c.UserContext(), id, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": theater})
}

// DeleteTheater DELETE /admin/theaters/:id.
func (h *AdminHandler) DeleteTheater(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.api.DeleteTheater(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListShowtimes GET /admin/showtimes.
func (h *AdminHandler) ListShowtimes(c *fiber.Ctx) error {
	showtimes, err := h.api.AdminShowtimes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": showtimes})
}

// CreateShowtime POST /admin/showtimes.
func (h *AdminHandler) CreateShowtime(c *fiber.Ctx) error {
	var req dto.ShowtimeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	showtime, err := h.api.CreateShowtime(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": showtime})
}

// UpdateShowtime PUT /admin/showtimes/:id.
func (h *AdminHandler) UpdateShowtime(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ShowtimeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	showtime, err := h.api.UpdateShowtime(c.UserContext(), id, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": showtime})
}

// DeleteShowtime DELETE /admin/showtimes/:id.
func (h *AdminHandler) DeleteShowtime(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.api.DeleteShowtime(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListBookings GET /admin/bookings.
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.api.AdminBookings(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nonNil(bookings)})
}

// SearchBookings GET /admin/bookings/search?q=.
func (h *AdminHandler) SearchBookings(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return apperrors.NewValidationError("q is required", nil)
	}
	bookings, err := h.api.SearchAdminBookings(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nonNil(bookings)})
}

// UserBookings GET /admin/bookings/user/:userId.
func (h *AdminHandler) UserBookings(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId is required", nil)
	}
	bookings, err := h.api.AdminBookingsByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nonNil(bookings)})
}

// UpdateBookingStatus PUT /admin/bookings/:id/status.
func (h *AdminHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.BookingStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.api.UpdateBookingStatus(c.UserContext(), id, req.Status); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteBooking DELETE /admin/bookings/:id.
func (h *AdminHandler) DeleteBooking(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.api.DeleteBooking(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// MakeAdmin POST /admin/users/:id/make-admin.
func (h *AdminHandler) MakeAdmin(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return apperrors.NewValidationError("id is required", nil)
	}
	if err := h.api.MakeUserAdmin(c.UserContext(), userID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
