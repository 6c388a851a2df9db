package domain

// Booking is a reservation of seats for one showtime.
type Booking struct {
	ID            int64     `json:"id"`
	UserID        UserID    `json:"userId"`
	ShowtimeID    int64     `json:"showtimeId"`
	NumberOfSeats int       `json:"numberOfSeats"`
	TotalPrice    float64   `json:"totalPrice"`
	BookingTime   string    `json:"bookingTime"`
	Status        string    `json:"status,omitempty"`
	Showtime      *Showtime `json:"showtime,omitempty"`
}

// AdminBooking carries the joined fields the admin views show when the
// backend provides them.
type AdminBooking struct {
	Booking
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	MovieTitle    string `json:"movieTitle,omitempty"`
	TheaterName   string `json:"theaterName,omitempty"`
}

// BookingRequest is the payload for POST /api/bookings.
type BookingRequest struct {
	ShowtimeID    int64 `json:"showtimeId"`
	NumberOfSeats int   `json:"numberOfSeats"`
}

// RecentBooking is a dashboard row.
type RecentBooking struct {
	ID           int64   `json:"id"`
	MovieTitle   string  `json:"movieTitle"`
	CustomerName string  `json:"customerName"`
	TotalPrice   float64 `json:"totalPrice"`
	BookingDate  string  `json:"bookingDate"`
}

// DashboardStats backs the admin home page.
type DashboardStats struct {
	TotalMovies    int             `json:"totalMovies"`
	TotalBookings  int             `json:"totalBookings"`
	TotalRevenue   float64         `json:"totalRevenue"`
	TotalCustomers int             `json:"totalCustomers"`
	RecentBookings []RecentBooking `json:"recentBookings"`
}
