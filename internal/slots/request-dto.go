package slots

// HoldSeatsRequest asks for a temporary hold on seats in one capacity cell.
type HoldSeatsRequest struct {
	EventID   string `json:"event_id" validate:"required,uuid"`
	BookingID string `json:"booking_id" validate:"required"`
	SlotName  string `json:"slot_name" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	NumSeats  int    `json:"num_seats" validate:"required,min=1"`
}

// UpdateSlotDataRequest carries a partial slot-data document to deep-merge
// into the stored one.
type UpdateSlotDataRequest struct {
	SlotData SlotDocument `json:"slot_data" validate:"required"`
}
