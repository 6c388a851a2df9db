package domain

// Movie as served by the movie service.
type Movie struct {
	ID                int64  `json:"id,omitempty"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Genre             string `json:"genre"`
	DurationInMinutes int    `json:"durationInMinutes"`
	ReleaseDate       string `json:"releaseDate"`
	PosterURL         string `json:"posterUrl,omitempty"`
	TrailerURL        string `json:"trailerUrl,omitempty"`
}

// Theater as served by the theater service.
type Theater struct {
	ID              int64  `json:"id,omitempty"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	SeatingCapacity int    `json:"seatingCapacity"`
}

// Showtime links a movie to a theater at a point in time.
type Showtime struct {
	ID             int64    `json:"id,omitempty"`
	MovieID        int64    `json:"movieId"`
	MovieTitle     string   `json:"movieTitle,omitempty"`
	TheaterID      int64    `json:"theaterId"`
	TheaterName    string   `json:"theaterName,omitempty"`
	ShowDateTime   string   `json:"showDateTime"`
	TicketPrice    float64  `json:"ticketPrice"`
	AvailableSeats int      `json:"availableSeats"`
	Movie          *Movie   `json:"movie,omitempty"`
	Theater        *Theater `json:"theater,omitempty"`
}
