package dto

import "github.com/spec-kit/movie-ticket-web/internal/domain"

// CreateBookingRequest payload for POST /bookings.
type CreateBookingRequest struct {
	ShowtimeID    int64 `json:"showtimeId" validate:"required,gt=0"`
	NumberOfSeats int   `json:"numberOfSeats" validate:"required,min=1,max=10"`
}

// ToDomain converts the payload for the backend.
func (r CreateBookingRequest) ToDomain() domain.BookingRequest {
	return domain.BookingRequest{ShowtimeID: r.ShowtimeID, NumberOfSeats: r.NumberOfSeats}
}

// MovieDetail is the movie page: the movie and its showtimes.
type MovieDetail struct {
	Movie     domain.Movie      `json:"movie"`
	Showtimes []domain.Showtime `json:"showtimes"`
}
