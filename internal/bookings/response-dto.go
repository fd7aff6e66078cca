package bookings

import "time"

// BookingResponse is the API representation of a booking.
type BookingResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EventID      string    `json:"event_id"`
	SlotName     string    `json:"slot_name"`
	Date         string    `json:"date"`
	NumSeats     int       `json:"num_seats"`
	PricePerSeat float64   `json:"price_per_seat"`
	TotalPrice   float64   `json:"total_price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToResponse converts a Booking to its API representation.
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:           b.ID.String(),
		UserID:       b.UserID.String(),
		EventID:      b.EventID.String(),
		SlotName:     b.SlotName,
		Date:         b.Date,
		NumSeats:     b.NumSeats,
		PricePerSeat: b.PricePerSeat,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status.String(),
		CreatedAt:    b.CreatedAt,
	}
}

// PaginatedBookings wraps a booking list with its total count.
type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
}
