package dto

import "github.com/spec-kit/movie-ticket-web/internal/domain"

// MovieRequest payload for admin movie create/update.
type MovieRequest struct {
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	Genre             string `json:"genre" validate:"required"`
	DurationInMinutes int    `json:"durationInMinutes" validate:"required,gt=0"`
	ReleaseDate       string `json:"releaseDate" validate:"required"`
	PosterURL         string `json:"posterUrl" validate:"omitempty,url"`
	TrailerURL        string `json:"trailerUrl" validate:"omitempty,url"`
}

func (r MovieRequest) ToDomain() domain.Movie {
	return domain.Movie{
		Title:             r.Title,
		Description:       r.Description,
		Genre:             r.Genre,
		DurationInMinutes: r.DurationInMinutes,
		ReleaseDate:       r.ReleaseDate,
		PosterURL:         r.PosterURL,
		TrailerURL:        r.TrailerURL,
	}
}

// TheaterRequest payload for admin theater create/update.
type TheaterRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Location        string `json:"location" validate:"required"`
	SeatingCapacity int    `json:"seatingCapacity" validate:"required,gt=0"`
}

func (r TheaterRequest) ToDomain() domain.Theater {
	return domain.Theater{Name: r.Name, Location: r.Location, SeatingCapacity: r.SeatingCapacity}
}

// ShowtimeRequest payload for admin showtime create/update.
type ShowtimeRequest struct {
	MovieID        int64   `json:"movieId" validate:"required,gt=0"`
	TheaterID      int64   `json:"theaterId" validate:"required,gt=0"`
	ShowDateTime   string  `json:"showDateTime" validate:"required"`
	TicketPrice    float64 `json:"ticketPrice" validate:"gte=0"`
	AvailableSeats int     `json:"availableSeats" validate:"gte=0"`
}

func (r ShowtimeRequest) ToDomain() domain.Showtime {
	return domain.Showtime{
		MovieID:        r.MovieID,
		TheaterID:      r.TheaterID,
		ShowDateTime:   r.ShowDateTime,
		TicketPrice:    r.TicketPrice,
		AvailableSeats: r.AvailableSeats,
	}
}

// BookingStatusRequest payload for PUT /admin/bookings/:id/status.
type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED CANCELLED PENDING"`
}
