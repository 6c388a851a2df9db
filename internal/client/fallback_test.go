package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-ticket-web/internal/domain"
	"github.com/spec-kit/movie-ticket-web/internal/observability"
	apperrors "github.com/spec-kit/movie-ticket-web/pkg/util/errorutil"
)

// routes answers by path and records the order of hits.
type routes struct {
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     []string
}

func (r *routes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.hits = append(r.hits, req.URL.Path)
	h, ok := r.handlers[req.URL.Path]
	r.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w, req)
}

func (r *routes) Hits() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.hits...)
}

func call(name string, err error) Candidate[string] {
	return Candidate[string]{Name: name, Call: func(context.Context) (string, error) {
		if err != nil {
			return "", err
		}
		return name, nil
	}}
}

func TestChain_FirstSuccessWins(t *testing.T) {
	chain := Chain[string]{Candidates: []Candidate[string]{
		call("a", errors.New("a failed")),
		call("b", nil),
		call("c", nil),
	}}

	out, err := chain.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", out)
}

func TestChain_ExhaustedReturnsFirstError(t *testing.T) {
	first := errors.New("first")
	chain := Chain[string]{Candidates: []Candidate[string]{
		call("a", first),
		call("b", errors.New("second")),
	}}

	_, err := chain.Run(context.Background())
	assert.Same(t, first, err)
}

func TestChain_NonRetryableStops(t *testing.T) {
	stop := errors.New("stop")
	var reached bool
	chain := Chain[string]{
		Candidates: []Candidate[string]{
			call("a", stop),
			{Name: "b", Call: func(context.Context) (string, error) { reached = true; return "b", nil }},
		},
		Retry: func(err error) bool { return !errors.Is(err, stop) },
	}

	_, err := chain.Run(context.Background())
	assert.ErrorIs(t, err, stop)
	assert.False(t, reached)
}

func TestChain_Empty(t *testing.T) {
	_, err := Chain[string]{}.Run(context.Background())
	assert.Error(t, err)
}

func TestChain_RecordsFallbackHops(t *testing.T) {
	metrics := observability.NewMetrics()
	chain := Chain[string]{
		Operation:  "test_op",
		Candidates: []Candidate[string]{call("a", errors.New("x")), call("b", errors.New("y")), call("c", nil)},
		Metrics:    metrics,
	}
	_, err := chain.Run(context.Background())
	require.NoError(t, err)

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	var hops float64
	for _, family := range families {
		if family.GetName() == "web_fallback_attempts_total" {
			for _, m := range family.GetMetric() {
				hops += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, float64(2), hops)
}

func TestRetryOnStatus(t *testing.T) {
	retry := RetryOnStatus(http.StatusForbidden, http.StatusNotFound)

	assert.True(t, retry(apperrors.NewUpstreamError(404, "")))
	assert.True(t, retry(apperrors.NewUpstreamError(403, "")))
	assert.False(t, retry(apperrors.NewUpstreamError(500, "")))
	assert.False(t, retry(apperrors.NewUnauthorized("Unauthorized")))
	assert.False(t, retry(errors.New("network")))
}

func TestMyBookings_FallsThroughEndpoints(t *testing.T) {
	r := &routes{handlers: map[string]http.HandlerFunc{
		"/api/user/bookings": respond(http.StatusInternalServerError, "boom"),
		"/api/bookings":      respond(http.StatusOK, `[{"id":1,"showtimeId":2,"numberOfSeats":3}]`),
	}}
	c, _ := newTestClient(t, r, nil)

	bookings, err := c.MyBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(1), bookings[0].ID)
	assert.Equal(t, []string{"/api/bookings/my-bookings", "/api/user/bookings", "/api/bookings"}, r.Hits())
}

func TestMyBookings_TotalFailureDegrades(t *testing.T) {
	r := &routes{}
	c, _ := newTestClient(t, r, nil)

	bookings, err := c.MyBookings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
	assert.Equal(t, myBookingsEndpoints, r.Hits())
}

func TestMyBookings_UnauthorizedStops(t *testing.T) {
	r := &routes{handlers: map[string]http.HandlerFunc{
		"/api/bookings/my-bookings": respond(http.StatusUnauthorized, ""),
	}}
	c, hooks := newTestClient(t, r, nil)

	_, err := c.MyBookings(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Len(t, r.Hits(), 1)
	assert.Equal(t, int32(1), hooks.calls.Load())
}

func TestUserProfile_RetriesOnlyMissingOrForbidden(t *testing.T) {
	r := &routes{handlers: map[string]http.HandlerFunc{
		"/api/user/profile":  respond(http.StatusForbidden, "nope"),
		"/api/users/profile": respond(http.StatusOK, `{"id":3,"name":"n","email":"e","role":"ROLE_CUSTOMER"}`),
	}}
	c, _ := newTestClient(t, r, nil)

	user, err := c.UserProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("3"), user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)
}

func TestUserProfile_ServerErrorPropagates(t *testing.T) {
	r := &routes{handlers: map[string]http.HandlerFunc{
		"/api/user/profile": respond(http.StatusInternalServerError, "down"),
	}}
	c, _ := newTestClient(t, r, nil)

	_, err := c.UserProfile(context.Background())
	require.Error(t, err)
	assert.Equal(t, "down", err.Error())
	assert.Equal(t, []string{"/api/user/profile"}, r.Hits())
}

func TestUserProfile_ExhaustedReturnsOriginalError(t *testing.T) {
	r := &routes{handlers: map[string]http.HandlerFunc{
		"/api/user/profile": respond(http.StatusForbidden, "first"),
	}}
	c, _ := newTestClient(t, r, nil)

	_, err := c.UserProfile(context.Background())
	require.Error(t, err)
	assert.Equal(t, "first", err.Error())
	assert.Len(t, r.Hits(), 3)
}

func TestAdminShowtimes_Degrades(t *testing.T) {
	c, _ := newTestClient(t, respond(http.StatusInternalServerError, "boom"), nil)

	showtimes, err := c.AdminShowtimes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, showtimes)
	assert.Empty(t, showtimes)
}

func TestShowtimeWrites_NormaliseErrors(t *testing.T) {
	for _, status := range []int{http.StatusServiceUnavailable, http.StatusInternalServerError, http.StatusBadRequest} {
		c, _ := newTestClient(t, respond(status, "raw"), nil)
		ctx := context.Background()

		_, err := c.CreateShowtime(ctx, domain.Showtime{MovieID: 1})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
		assert.Equal(t, ShowtimeUnavailableMessage, err.Error())

		err = c.DeleteShowtime(ctx, 1)
		require.Error(t, err)
		assert.Equal(t, ShowtimeUnavailableMessage, err.Error())
		assert.NotEqual(t, "HTTP 503", err.Error())

		_, err = c.UpdateShowtime(ctx, 1, domain.Showtime{})
		assert.Equal(t, ShowtimeUnavailableMessage, err.Error())
	}
}

func TestShowtimeWrites_Succeed(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, `{"id":9,"movieId":1,"theaterId":2}`)
	}), nil)

	created, err := c.CreateShowtime(context.Background(), domain.Showtime{MovieID: 1, TheaterID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.NoError(t, c.DeleteShowtime(context.Background(), 9))
}

func TestMovieWithFallback(t *testing.T) {
	listing := `[{"id":1,"title":"One"},{"id":2,"title":"Two"}]`

	t.Run("direct", func(t *testing.T) {
		r := &routes{handlers: map[string]http.HandlerFunc{
			"/api/movies/2": respond(http.StatusOK, `{"id":2,"title":"Two"}`),
		}}
		c, _ := newTestClient(t, r, nil)

		movie, err := c.MovieWithFallback(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "Two", movie.Title)
		assert.Len(t, r.Hits(), 1)
	})

	t.Run("listing scan", func(t *testing.T) {
		r := &routes{handlers: map[string]http.HandlerFunc{
			"/api/movies/2": respond(http.StatusInternalServerError, ""),
			"/api/movies":   respond(http.StatusOK, listing),
		}}
		c, _ := newTestClient(t, r, nil)

		movie, err := c.MovieWithFallback(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "Two", movie.Title)
	})

	t.Run("not found", func(t *testing.T) {
		r := &routes{handlers: map[string]http.HandlerFunc{
			"/api/movies": respond(http.StatusOK, listing),
		}}
		c, _ := newTestClient(t, r, nil)

		_, err := c.MovieWithFallback(context.Background(), 99)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("service unavailable", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusServiceUnavailable, ""), nil)

		_, err := c.MovieWithFallback(context.Background(), 2)
		require.Error(t, err)
		assert.Equal(t, MovieUnavailableMessage, err.Error())
	})

	t.Run("listing error propagates", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusBadRequest, "bad"), nil)

		_, err := c.MovieWithFallback(context.Background(), 2)
		require.Error(t, err)
		assert.Equal(t, "bad", err.Error())
	})
}
