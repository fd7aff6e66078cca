package slots

import (
	"time"

	"github.com/google/uuid"
)

// EventSlot is the slot record owning both documents for one event. Holds are
// never persisted outside this row; every mutation of HeldSeats happens in
// the same transaction that row-locks the record.
type EventSlot struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID   uuid.UUID    `json:"event_id" gorm:"type:uuid;uniqueIndex;not null"`
	SlotData  SlotDocument `json:"slot_data" gorm:"type:jsonb"`
	HeldSeats HoldDocument `json:"held_seats" gorm:"type:jsonb"`
	CreatedAt time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (EventSlot) TableName() string {
	return "event_slots"
}
