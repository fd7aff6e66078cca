package slots

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SlotDocument is the per-event slot configuration document, keyed by date
// ("2006-01-02"), then slot name. Leaves are SlotFields. The document is
// schemaless on purpose: organizers attach arbitrary fields to a slot, so the
// persisted jsonb shape is kept as-is and typed access goes through the
// SlotFields accessors.
type SlotDocument map[string]interface{}

// SlotFields holds one slot definition: start_time, end_time, capacity, price
// plus any free-form fields an organizer added.
type SlotFields map[string]interface{}

// HoldEntry is one temporary seat reservation inside a HoldDocument.
type HoldEntry struct {
	Seats  int    `json:"seats"`
	HeldAt string `json:"held_at"`
}

// HoldDocument tracks temporary seat holds, keyed by date, then slot name,
// then booking ID. Presence of a booking ID entry means the hold is active.
type HoldDocument map[string]map[string]map[string]HoldEntry

// Value implements the driver.Valuer interface for database storage
func (d SlotDocument) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for database retrieval
func (d *SlotDocument) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, d)
}

// GormDataType tells GORM how to handle this type
func (SlotDocument) GormDataType() string {
	return "jsonb"
}

// Value implements the driver.Valuer interface for database storage
func (d HoldDocument) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for database retrieval
func (d *HoldDocument) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, d)
}

// GormDataType tells GORM how to handle this type
func (HoldDocument) GormDataType() string {
	return "jsonb"
}

// Definition returns the slot fields for a (date, slotName) cell.
func (d SlotDocument) Definition(date, slotName string) (SlotFields, bool) {
	dateSlots, ok := d[date].(map[string]interface{})
	if !ok {
		return nil, false
	}
	fields, ok := dateSlots[slotName].(map[string]interface{})
	if !ok {
		return nil, false
	}
	return SlotFields(fields), true
}

// Capacity returns the configured seat capacity, 0 when unset.
func (f SlotFields) Capacity() int {
	return intField(f["capacity"])
}

// Price returns the per-seat price, 0 when unset.
func (f SlotFields) Price() float64 {
	switch v := f["price"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		p, _ := v.Float64()
		return p
	}
	return 0
}

// StartTime returns the slot start time string, "" when unset.
func (f SlotFields) StartTime() string {
	s, _ := f["start_time"].(string)
	return s
}

// EndTime returns the slot end time string, "" when unset.
func (f SlotFields) EndTime() string {
	s, _ := f["end_time"].(string)
	return s
}

// intField coerces a decoded JSON number to int. jsonb round trips integers
// as float64.
func intField(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	}
	return 0
}

// HeldSeats sums the seats currently held for a (date, slotName) cell.
// Returns 0 when the cell has no holds.
func (d HoldDocument) HeldSeats(date, slotName string) int {
	total := 0
	for _, entry := range d[date][slotName] {
		total += entry.Seats
	}
	return total
}

// AddHold records a hold for bookingID in the given cell, creating the
// intermediate maps as needed. The caller owns capacity checking.
func (d HoldDocument) AddHold(date, slotName, bookingID string, seats int, heldAt time.Time) {
	if d[date] == nil {
		d[date] = make(map[string]map[string]HoldEntry)
	}
	if d[date][slotName] == nil {
		d[date][slotName] = make(map[string]HoldEntry)
	}
	d[date][slotName][bookingID] = HoldEntry{
		Seats:  seats,
		HeldAt: heldAt.UTC().Format(time.RFC3339Nano),
	}
}

// RemoveBooking deletes every hold belonging to bookingID across all cells
// and returns the number of seats released. Empty sub-maps are pruned so the
// document does not accumulate dead keys.
func (d HoldDocument) RemoveBooking(bookingID string) int {
	released := 0
	for date, dateSlots := range d {
		for slotName, holds := range dateSlots {
			if entry, ok := holds[bookingID]; ok {
				released += entry.Seats
				delete(holds, bookingID)
			}
			if len(holds) == 0 {
				delete(dateSlots, slotName)
			}
		}
		if len(dateSlots) == 0 {
			delete(d, date)
		}
	}
	return released
}

// PruneExpired removes every hold whose held_at timestamp is strictly older
// than cutoff and returns the number of holds removed. A hold exactly at the
// cutoff is retained. Holds with unparsable timestamps are removed as well;
// they can never age out otherwise.
func (d HoldDocument) PruneExpired(cutoff time.Time) int {
	removed := 0
	for date, dateSlots := range d {
		for slotName, holds := range dateSlots {
			for bookingID, entry := range holds {
				heldAt, err := time.Parse(time.RFC3339Nano, entry.HeldAt)
				if err != nil || heldAt.Before(cutoff) {
					delete(holds, bookingID)
					removed++
				}
			}
			if len(holds) == 0 {
				delete(dateSlots, slotName)
			}
		}
		if len(dateSlots) == 0 {
			delete(d, date)
		}
	}
	return removed
}

// IsEmpty reports whether the document holds no active entries.
func (d HoldDocument) IsEmpty() bool {
	return len(d) == 0
}
