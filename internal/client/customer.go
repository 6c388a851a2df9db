package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-ticket-web/internal/domain"
	apperrors "github.com/spec-kit/movie-ticket-web/pkg/util/errorutil"
)

// MovieUnavailableMessage is reported when neither movie lookup could reach
// the movie service.
const MovieUnavailableMessage = "Movie service is temporarily unavailable. Please try again in a few moments."

// Fallback operation names, used as metric labels.
const (
	OpMyBookings     = "my_bookings"
	OpUserProfile    = "user_profile"
	OpMovie          = "movie"
	OpAdminShowtimes = "admin_showtimes"
)

var myBookingsEndpoints = []string{
	"/api/bookings/my-bookings",
	"/api/user/bookings",
	"/api/bookings",
	"/api/customer/bookings",
	"/api/booking/user-bookings",
}

var profileEndpoints = []string{
	"/api/user/profile",
	"/api/users/profile",
	"/api/auth/profile",
}

func (c *Client) Movies(ctx context.Context) ([]domain.Movie, error) {
	return Get[[]domain.Movie](ctx, c, "/api/movies")
}

func (c *Client) Movie(ctx context.Context, id int64) (domain.Movie, error) {
	return Get[domain.Movie](ctx, c, fmt.Sprintf("/api/movies/%d", id))
}

func (c *Client) SearchMovies(ctx context.Context, title string) ([]domain.Movie, error) {
	return Get[[]domain.Movie](ctx, c, "/api/movies/search?title="+url.QueryEscape(title))
}

func (c *Client) MovieShowtimes(ctx context.Context, movieID int64) ([]domain.Showtime, error) {
	return Get[[]domain.Showtime](ctx, c, fmt.Sprintf("/api/showtimes/movie/%d", movieID))
}

func (c *Client) Showtime(ctx context.Context, id int64) (domain.Showtime, error) {
	return Get[domain.Showtime](ctx, c, fmt.Sprintf("/api/showtimes/%d", id))
}

func (c *Client) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	return Post[domain.Booking](ctx, c, "/api/bookings", req)
}

// MyBookings walks the known booking endpoints. Bookings are a read the
// customer pages can live without, so total failure yields an empty list.
// A rejected session still propagates.
func (c *Client) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	chain := Chain[[]domain.Booking]{
		Operation:  OpMyBookings,
		Candidates: endpointCandidates[[]domain.Booking](c, myBookingsEndpoints...),
		Retry:      RetryUnlessUnauthorized,
		Metrics:    c.metrics,
		Logger:     c.logger,
	}
	bookings, err := chain.Run(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, err
		}
		c.degraded(OpMyBookings, err)
		return []domain.Booking{}, nil
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

// UserProfile tries the profile endpoints, moving on only when one is
// missing or forbidden.
func (c *Client) UserProfile(ctx context.Context) (domain.User, error) {
	chain := Chain[domain.User]{
		Operation:  OpUserProfile,
		Candidates: endpointCandidates[domain.User](c, profileEndpoints...),
		Retry:      RetryOnStatus(http.StatusForbidden, http.StatusNotFound),
		Metrics:    c.metrics,
		Logger:     c.logger,
	}
	return chain.Run(ctx)
}

// MovieWithFallback fetches a movie directly and, failing that, scans the
// full listing for it.
func (c *Client) MovieWithFallback(ctx context.Context, id int64) (domain.Movie, error) {
	movie, err := c.Movie(ctx, id)
	if err == nil {
		return movie, nil
	}
	if errors.Is(err, apperrors.ErrUnauthorized) {
		return domain.Movie{}, err
	}
	c.logger.Warn("direct movie fetch failed, scanning listing", zap.Int64("movie_id", id), zap.Error(err))
	c.metrics.RecordFallback(OpMovie)

	movies, listErr := c.Movies(ctx)
	if listErr != nil {
		if unavailable(listErr) {
			return domain.Movie{}, apperrors.NewServiceUnavailable(MovieUnavailableMessage)
		}
		return domain.Movie{}, listErr
	}
	for _, m := range movies {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Movie{}, apperrors.NewNotFound(fmt.Sprintf("Movie with ID %d", id), nil)
}

// unavailable matches a 503 or any error whose text names one.
func unavailable(err error) bool {
	if errors.Is(err, apperrors.ErrServiceUnavailable) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "503") || strings.Contains(msg, "Service Unavailable")
}

func (c *Client) degraded(operation string, err error) {
	c.metrics.RecordDegraded(operation)
	c.logger.Warn("backend read degraded to empty result",
		zap.String("operation", operation),
		zap.Error(err),
	)
}
