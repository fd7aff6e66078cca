package slots

import (
	"errors"
	"fmt"
)

// ErrSlotNotFound indicates the (date, slot name) cell does not exist in the
// slot configuration document.
var ErrSlotNotFound = errors.New("slot not found")

// Available derives the number of seats still open for holding in a
// (date, slotName) cell: configured capacity minus currently held seats minus
// already approved bookings. The result can go negative if the stored data
// violates the capacity invariant; callers must treat negative as zero
// availability rather than fail.
func Available(slotData SlotDocument, heldSeats HoldDocument, approvedCount int, date, slotName string) (int, error) {
	fields, ok := slotData.Definition(date, slotName)
	if !ok {
		return 0, fmt.Errorf("%w: slot %s for date %s", ErrSlotNotFound, slotName, date)
	}

	held := heldSeats.HeldSeats(date, slotName)
	return fields.Capacity() - held - approvedCount, nil
}

// CanHold reports whether requestedSeats can currently be held in the cell,
// with a caller-facing reason. Business denials come back as (false, reason),
// never as an error.
func CanHold(slotData SlotDocument, heldSeats HoldDocument, approvedCount int, date, slotName string, requestedSeats int) (bool, string) {
	available, err := Available(slotData, heldSeats, approvedCount, date, slotName)
	if err != nil {
		return false, fmt.Sprintf("slot %s not found for date %s", slotName, date)
	}

	if available < requestedSeats {
		if available < 0 {
			available = 0
		}
		return false, fmt.Sprintf("cannot hold %d seats, only %d seats available for holding", requestedSeats, available)
	}

	return true, fmt.Sprintf("can hold %d seats", requestedSeats)
}
