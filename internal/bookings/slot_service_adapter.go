package bookings

import (
	"context"

	"eventbook/internal/slots"

	"github.com/google/uuid"
)

// slotServiceAdapter adapts the slot subsystem's service to the narrower
// SlotService interface bookings consume, avoiding a package cycle.
type slotServiceAdapter struct {
	slots slots.Service
}

// NewSlotServiceAdapter wraps a slots.Service for use by the booking service.
func NewSlotServiceAdapter(s slots.Service) SlotService {
	return &slotServiceAdapter{slots: s}
}

func (a *slotServiceAdapter) Hold(ctx context.Context, eventID, bookingID, slotName, date string, numSeats int) (bool, string, error) {
	return a.slots.Hold(ctx, slots.HoldSeatsRequest{
		EventID:   eventID,
		BookingID: bookingID,
		SlotName:  slotName,
		Date:      date,
		NumSeats:  numSeats,
	})
}

func (a *slotServiceAdapter) Release(ctx context.Context, eventID, bookingID string) (bool, string, error) {
	return a.slots.Release(ctx, eventID, bookingID)
}

func (a *slotServiceAdapter) SlotPrice(ctx context.Context, eventID uuid.UUID, date, slotName string) (float64, error) {
	return a.slots.SlotPrice(ctx, eventID.String(), date, slotName)
}
