package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotFields(capacity int, price float64, start, end string) map[string]interface{} {
	return map[string]interface{}{
		"capacity":   capacity,
		"price":      price,
		"start_time": start,
		"end_time":   end,
	}
}

func TestMergeEmptyExisting(t *testing.T) {
	incoming := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": slotFields(100, 25.0, "10:00", "14:00"),
		},
	}

	merged := Merge(nil, incoming)
	assert.Equal(t, incoming, merged)

	merged = Merge(SlotDocument{}, incoming)
	assert.Equal(t, incoming, merged)
}

func TestMergeEmptyIncoming(t *testing.T) {
	existing := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": slotFields(100, 25.0, "10:00", "14:00"),
		},
	}

	merged := Merge(existing, nil)
	assert.Equal(t, existing, merged)
}

func TestMergePreservesOmittedFields(t *testing.T) {
	existing := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": slotFields(100, 25.0, "10:00", "14:00"),
		},
	}
	incoming := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": map[string]interface{}{
				"capacity": 150,
			},
		},
	}

	merged := Merge(existing, incoming)

	fields, ok := merged.Definition("2026-09-01", "morning")
	require.True(t, ok)
	assert.Equal(t, 150, fields.Capacity())
	assert.Equal(t, 25.0, fields.Price())
	assert.Equal(t, "10:00", fields.StartTime())
	assert.Equal(t, "14:00", fields.EndTime())
}

func TestMergePreservesSiblingSlotsAndDates(t *testing.T) {
	existing := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": slotFields(100, 25.0, "10:00", "14:00"),
			"evening": slotFields(200, 40.0, "18:00", "22:00"),
		},
		"2026-09-02": map[string]interface{}{
			"evening": slotFields(200, 40.0, "18:00", "22:00"),
		},
	}
	incoming := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"evening": map[string]interface{}{"price": 55.0},
		},
	}

	merged := Merge(existing, incoming)

	// Untouched sibling slot survives
	morning, ok := merged.Definition("2026-09-01", "morning")
	require.True(t, ok)
	assert.Equal(t, 100, morning.Capacity())

	// Untouched sibling date survives
	_, ok = merged.Definition("2026-09-02", "evening")
	assert.True(t, ok)

	evening, ok := merged.Definition("2026-09-01", "evening")
	require.True(t, ok)
	assert.Equal(t, 55.0, evening.Price())
	assert.Equal(t, 200, evening.Capacity())
}

func TestMergeAddsNewDateAndSlot(t *testing.T) {
	existing := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": slotFields(100, 25.0, "10:00", "14:00"),
		},
	}
	incoming := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"evening": slotFields(200, 40.0, "18:00", "22:00"),
		},
		"2026-09-03": map[string]interface{}{
			"matinee": slotFields(80, 15.0, "13:00", "16:00"),
		},
	}

	merged := Merge(existing, incoming)

	_, ok := merged.Definition("2026-09-01", "morning")
	assert.True(t, ok)
	_, ok = merged.Definition("2026-09-01", "evening")
	assert.True(t, ok)
	_, ok = merged.Definition("2026-09-03", "matinee")
	assert.True(t, ok)
}

func TestMergeShapeMismatchReplacesSubtree(t *testing.T) {
	existing := SlotDocument{
		"2026-09-01": "corrupted",
	}
	incoming := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": slotFields(100, 25.0, "10:00", "14:00"),
		},
	}

	merged := Merge(existing, incoming)

	fields, ok := merged.Definition("2026-09-01", "morning")
	require.True(t, ok)
	assert.Equal(t, 100, fields.Capacity())

	// Incoming scalar over an existing map also replaces outright
	merged = Merge(incoming, existing)
	_, ok = merged.Definition("2026-09-01", "morning")
	assert.False(t, ok)
	assert.Equal(t, "corrupted", merged["2026-09-01"])
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": slotFields(100, 25.0, "10:00", "14:00"),
		},
	}
	incoming := SlotDocument{
		"2026-09-01": map[string]interface{}{
			"morning": map[string]interface{}{"capacity": 999},
		},
	}

	merged := Merge(existing, incoming)

	origFields, ok := existing.Definition("2026-09-01", "morning")
	require.True(t, ok)
	assert.Equal(t, 100, origFields.Capacity())

	// Mutating the result must not leak back into either input
	mergedFields, ok := merged.Definition("2026-09-01", "morning")
	require.True(t, ok)
	mergedFields["capacity"] = 1

	assert.Equal(t, 100, origFields.Capacity())
	inFields, ok := incoming.Definition("2026-09-01", "morning")
	require.True(t, ok)
	assert.Equal(t, 999, inFields.Capacity())
}
