package bookings

// CreateBookingRequest starts a booking attempt for one capacity cell.
type CreateBookingRequest struct {
	EventID  string `json:"event_id" binding:"required,uuid"`
	SlotName string `json:"slot_name" binding:"required"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	NumSeats int    `json:"num_seats" binding:"required,min=1"`
}
