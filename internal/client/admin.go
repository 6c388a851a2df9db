package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spec-kit/movie-ticket-web/internal/domain"
	apperrors "github.com/spec-kit/movie-ticket-web/pkg/util/errorutil"
)

// ShowtimeUnavailableMessage replaces any showtime write failure.
const ShowtimeUnavailableMessage = "Showtime service is temporarily unavailable. Please try again later."

// Movies

func (c *Client) AdminMovies(ctx context.Context) ([]domain.Movie, error) {
	return Get[[]domain.Movie](ctx, c, "/api/admin/movies")
}

func (c *Client) AdminMovie(ctx context.Context, id int64) (domain.Movie, error) {
	return Get[domain.Movie](ctx, c, fmt.Sprintf("/api/admin/movies/%d", id))
}

func (c *Client) CreateMovie(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	return Post[domain.Movie](ctx, c, "/api/admin/movies", movie)
}

func (c *Client) UpdateMovie(ctx context.Context, id int64, movie domain.Movie) (domain.Movie, error) {
	return Put[domain.Movie](ctx, c, fmt.Sprintf("/api/admin/movies/%d", id), movie)
}

func (c *Client) DeleteMovie(ctx context.Context, id int64) error {
	return Exec(ctx, c, http.MethodDelete, fmt.Sprintf("/api/admin/movies/%d", id), nil)
}

// Theaters

func (c *Client) AdminTheaters(ctx context.Context) ([]domain.Theater, error) {
	return Get[[]domain.Theater](ctx, c, "/api/admin/theaters")
}

func (c *Client) CreateTheater(ctx context.Context, theater domain.Theater) (domain.Theater, error) {
	return Post[domain.Theater](ctx, c, "/api/admin/theaters", theater)
}

func (c *Client) UpdateTheater(ctx context.Context, id int64, theater domain.Theater) (domain.Theater, error) {
	return Put[domain.Theater](ctx, c, fmt.Sprintf("/api/admin/theaters/%d", id), theater)
}

func (c *Client) DeleteTheater(ctx context.Context, id int64) error {
	return Exec(ctx, c, http.MethodDelete, fmt.Sprintf("/api/admin/theaters/%d", id), nil)
}

// Showtimes

// AdminShowtimes lists showtimes, degrading to an empty list on failure.
func (c *Client) AdminShowtimes(ctx context.Context) ([]domain.Showtime, error) {
	showtimes, err := Get[[]domain.Showtime](ctx, c, "/api/admin/showtimes")
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, err
		}
		c.degraded(OpAdminShowtimes, err)
		return []domain.Showtime{}, nil
	}
	if showtimes == nil {
		showtimes = []domain.Showtime{}
	}
	return showtimes, nil
}

func (c *Client) CreateShowtime(ctx context.Context, showtime domain.Showtime) (domain.Showtime, error) {
	created, err := Post[domain.Showtime](ctx, c, "/api/admin/showtimes", showtime)
	return created, showtimeWriteError(err)
}

func (c *Client) UpdateShowtime(ctx context.Context, id int64, showtime domain.Showtime) (domain.Showtime, error) {
	updated, err := Put[domain.Showtime](ctx, c, fmt.Sprintf("/api/admin/showtimes/%d", id), showtime)
	return updated, showtimeWriteError(err)
}

func (c *Client) DeleteShowtime(ctx context.Context, id int64) error {
	err := Exec(ctx, c, http.MethodDelete, fmt.Sprintf("/api/admin/showtimes/%d", id), nil)
	return showtimeWriteError(err)
}

// showtimeWriteError normalises write failures to one user-facing message.
// A rejected session is left as is so the caller still sees it.
func showtimeWriteError(err error) error {
	if err == nil || errors.Is(err, apperrors.ErrUnauthorized) {
		return err
	}
	return apperrors.NewServiceUnavailable(ShowtimeUnavailableMessage)
}

// Bookings

func (c *Client) AdminBookings(ctx context.Context) ([]domain.AdminBooking, error) {
	return Get[[]domain.AdminBooking](ctx, c, "/api/admin/bookings")
}

func (c *Client) AdminBookingsByUser(ctx context.Context, userID string) ([]domain.AdminBooking, error) {
	return Get[[]domain.AdminBooking](ctx, c, "/api/admin/bookings/user/"+url.PathEscape(userID))
}

func (c *Client) SearchAdminBookings(ctx context.Context, query string) ([]domain.AdminBooking, error) {
	return Get[[]domain.AdminBooking](ctx, c, "/api/admin/bookings/search?q="+url.QueryEscape(query))
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	return Exec(ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/bookings/%d/status", id), map[string]string{"status": status})
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return Exec(ctx, c, http.MethodDelete, fmt.Sprintf("/api/admin/bookings/%d", id), nil)
}

// Users and dashboard

func (c *Client) MakeUserAdmin(ctx context.Context, userID string) error {
	return Exec(ctx, c, http.MethodPost, "/api/admin/users/"+url.PathEscape(userID)+"/make-admin", nil)
}

func (c *Client) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	return Get[domain.DashboardStats](ctx, c, "/api/admin/dashboard/stats")
}
