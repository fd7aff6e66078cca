package slots

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddHoldAndHeldSeats(t *testing.T) {
	doc := HoldDocument{}
	now := time.Now()

	doc.AddHold("2026-09-01", "morning", "booking-1", 4, now)
	doc.AddHold("2026-09-01", "morning", "booking-2", 2, now)
	doc.AddHold("2026-09-01", "evening", "booking-3", 8, now)

	assert.Equal(t, 6, doc.HeldSeats("2026-09-01", "morning"))
	assert.Equal(t, 8, doc.HeldSeats("2026-09-01", "evening"))
	assert.Equal(t, 0, doc.HeldSeats("2026-09-02", "morning"))
}

func TestAddHoldOverwritesSameBooking(t *testing.T) {
	doc := HoldDocument{}
	doc.AddHold("2026-09-01", "morning", "booking-1", 4, time.Now())
	doc.AddHold("2026-09-01", "morning", "booking-1", 7, time.Now())

	assert.Equal(t, 7, doc.HeldSeats("2026-09-01", "morning"))
}

func TestRemoveBookingReleasesAcrossCells(t *testing.T) {
	doc := HoldDocument{}
	now := time.Now()
	doc.AddHold("2026-09-01", "morning", "booking-1", 4, now)
	doc.AddHold("2026-09-02", "evening", "booking-1", 3, now)
	doc.AddHold("2026-09-01", "morning", "booking-2", 2, now)

	released := doc.RemoveBooking("booking-1")
	assert.Equal(t, 7, released)
	assert.Equal(t, 2, doc.HeldSeats("2026-09-01", "morning"))

	// Emptied cells are pruned entirely
	_, exists := doc["2026-09-02"]
	assert.False(t, exists)
}

func TestRemoveBookingIdempotent(t *testing.T) {
	doc := HoldDocument{}
	doc.AddHold("2026-09-01", "morning", "booking-1", 4, time.Now())

	assert.Equal(t, 4, doc.RemoveBooking("booking-1"))
	assert.Equal(t, 0, doc.RemoveBooking("booking-1"))
	assert.Equal(t, 0, doc.RemoveBooking("never-existed"))
	assert.True(t, doc.IsEmpty())
}

func TestPruneExpiredBoundary(t *testing.T) {
	cutoff := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	doc := HoldDocument{}
	doc.AddHold("2026-09-01", "morning", "older", 2, cutoff.Add(-time.Second))
	doc.AddHold("2026-09-01", "morning", "exact", 3, cutoff)
	doc.AddHold("2026-09-01", "morning", "newer", 5, cutoff.Add(time.Second))

	removed := doc.PruneExpired(cutoff)
	assert.Equal(t, 1, removed)

	holds := doc["2026-09-01"]["morning"]
	assert.NotContains(t, holds, "older")
	assert.Contains(t, holds, "exact")
	assert.Contains(t, holds, "newer")
	assert.Equal(t, 8, doc.HeldSeats("2026-09-01", "morning"))
}

func TestPruneExpiredRemovesUnparsableTimestamps(t *testing.T) {
	doc := HoldDocument{
		"2026-09-01": {
			"morning": {
				"garbage": {Seats: 2, HeldAt: "not-a-timestamp"},
			},
		},
	}

	removed := doc.PruneExpired(time.Now())
	assert.Equal(t, 1, removed)
	assert.True(t, doc.IsEmpty())
}

func TestPruneExpiredPrunesEmptySubtrees(t *testing.T) {
	cutoff := time.Now()
	doc := HoldDocument{}
	doc.AddHold("2026-09-01", "morning", "booking-1", 2, cutoff.Add(-time.Hour))
	doc.AddHold("2026-09-02", "evening", "booking-2", 4, cutoff.Add(time.Hour))

	removed := doc.PruneExpired(cutoff)
	assert.Equal(t, 1, removed)

	_, exists := doc["2026-09-01"]
	assert.False(t, exists)
	assert.Equal(t, 4, doc.HeldSeats("2026-09-02", "evening"))
}

func TestHoldDocumentScanValueRoundTrip(t *testing.T) {
	doc := HoldDocument{}
	doc.AddHold("2026-09-01", "morning", "booking-1", 4, time.Now())

	value, err := doc.Value()
	require.NoError(t, err)

	var loaded HoldDocument
	require.NoError(t, loaded.Scan(value))
	assert.Equal(t, doc, loaded)
	assert.Equal(t, 4, loaded.HeldSeats("2026-09-01", "morning"))
}

func TestSlotDocumentScanWireShape(t *testing.T) {
	raw := []byte(`{
		"2026-09-01": {
			"morning": {"capacity": 100, "price": 25.5, "start_time": "10:00", "end_time": "14:00", "stage": "main"}
		}
	}`)

	var doc SlotDocument
	require.NoError(t, doc.Scan(raw))

	fields, ok := doc.Definition("2026-09-01", "morning")
	require.True(t, ok)
	assert.Equal(t, 100, fields.Capacity())
	assert.Equal(t, 25.5, fields.Price())
	assert.Equal(t, "10:00", fields.StartTime())
	// free-form organizer fields survive untouched
	assert.Equal(t, "main", fields["stage"])
}

func TestHoldEntryWireFormat(t *testing.T) {
	doc := HoldDocument{}
	heldAt := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	doc.AddHold("2026-09-01", "morning", "booking-1", 4, heldAt)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]map[string]map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	entry := decoded["2026-09-01"]["morning"]["booking-1"]
	assert.Equal(t, float64(4), entry["seats"])
	assert.Equal(t, "2026-09-01T12:30:00Z", entry["held_at"])
}
