package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlotData() SlotDocument {
	return SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": slotFields(100, 25.0, "10:00", "14:00"),
		},
	}
}

func TestAvailableFullCapacity(t *testing.T) {
	available, err := Available(testSlotData(), HoldDocument{}, 0, "2026-09-01", "morning")
	require.NoError(t, err)
	assert.Equal(t, 100, available)
}

func TestAvailableSubtractsHeldAndApproved(t *testing.T) {
	held := HoldDocument{}
	held.AddHold("2026-09-01", "morning", "booking-1", 10, time.Now())
	held.AddHold("2026-09-01", "morning", "booking-2", 5, time.Now())

	available, err := Available(testSlotData(), held, 30, "2026-09-01", "morning")
	require.NoError(t, err)
	assert.Equal(t, 55, available)
}

func TestAvailableIgnoresOtherCells(t *testing.T) {
	held := HoldDocument{}
	held.AddHold("2026-09-02", "morning", "booking-1", 10, time.Now())
	held.AddHold("2026-09-01", "evening", "booking-2", 10, time.Now())

	available, err := Available(testSlotData(), held, 0, "2026-09-01", "morning")
	require.NoError(t, err)
	assert.Equal(t, 100, available)
}

func TestAvailableSlotNotFound(t *testing.T) {
	_, err := Available(testSlotData(), HoldDocument{}, 0, "2026-09-01", "midnight")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = Available(testSlotData(), HoldDocument{}, 0, "2026-12-25", "morning")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestAvailableCanGoNegative(t *testing.T) {
	available, err := Available(testSlotData(), HoldDocument{}, 120, "2026-09-01", "morning")
	require.NoError(t, err)
	assert.Equal(t, -20, available)
}

func TestCanHoldSuccess(t *testing.T) {
	ok, msg := CanHold(testSlotData(), HoldDocument{}, 0, "2026-09-01", "morning", 100)
	assert.True(t, ok)
	assert.Equal(t, "can hold 100 seats", msg)
}

func TestCanHoldInsufficientSeats(t *testing.T) {
	held := HoldDocument{}
	held.AddHold("2026-09-01", "morning", "booking-1", 95, time.Now())

	ok, msg := CanHold(testSlotData(), held, 0, "2026-09-01", "morning", 10)
	assert.False(t, ok)
	assert.Equal(t, "cannot hold 10 seats, only 5 seats available for holding", msg)
}

func TestCanHoldNegativeAvailabilityReportsZero(t *testing.T) {
	ok, msg := CanHold(testSlotData(), HoldDocument{}, 150, "2026-09-01", "morning", 1)
	assert.False(t, ok)
	assert.Equal(t, "cannot hold 1 seats, only 0 seats available for holding", msg)
}

func TestCanHoldUnknownSlot(t *testing.T) {
	ok, msg := CanHold(testSlotData(), HoldDocument{}, 0, "2026-09-01", "midnight", 1)
	assert.False(t, ok)
	assert.Equal(t, "slot midnight not found for date 2026-09-01", msg)
}

func TestSlotFieldsNumericCoercion(t *testing.T) {
	// jsonb decoding hands back float64 for every number
	fields := SlotFields{
		"capacity": float64(250),
		"price":    float64(19),
	}
	assert.Equal(t, 250, fields.Capacity())
	assert.Equal(t, 19.0, fields.Price())

	// unset fields fall back to zero values
	empty := SlotFields{}
	assert.Equal(t, 0, empty.Capacity())
	assert.Equal(t, 0.0, empty.Price())
	assert.Equal(t, "", empty.StartTime())
}
