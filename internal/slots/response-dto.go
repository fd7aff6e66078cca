package slots

// HoldSeatsResponse reports the outcome of a hold or release attempt.
// Business denials (capacity, missing slot, ended event) come back with
// Success=false and a reason, not an HTTP error.
type HoldSeatsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AvailabilityResponse describes one capacity cell.
type AvailabilityResponse struct {
	EventID        string  `json:"event_id"`
	Date           string  `json:"date"`
	SlotName       string  `json:"slot_name"`
	Capacity       int     `json:"capacity"`
	HeldSeats      int     `json:"held_seats"`
	ApprovedSeats  int     `json:"approved_seats"`
	AvailableSeats int     `json:"available_seats"`
	Price          float64 `json:"price"`
}

// SlotDataResponse returns the stored slot configuration for an event.
type SlotDataResponse struct {
	EventID  string       `json:"event_id"`
	SlotData SlotDocument `json:"slot_data"`
}
