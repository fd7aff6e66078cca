package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking defines the main booking structure. Bookings are never deleted by
// this subsystem; cancellation is a status change.
type Booking struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	SlotName     string     `gorm:"type:varchar(100);not null" json:"slot_name"`
	Date         string     `gorm:"type:varchar(10);index;not null" json:"date"`
	NumSeats     int        `gorm:"not null;check:num_seats > 0" json:"num_seats"`
	PricePerSeat float64    `gorm:"not null" json:"price_per_seat"`
	TotalPrice   float64    `gorm:"not null" json:"total_price"`
	Status       Status     `gorm:"type:varchar(20);check:status IN ('PROCESSING', 'APPROVED', 'FAILED', 'CANCELLED');default:'PROCESSING'" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// IsApproved reports whether the booking's seats count permanently against
// slot capacity.
func (b *Booking) IsApproved() bool {
	return b.Status == StatusApproved
}

// Cancel marks the booking cancelled. Callers must have verified the
// transition is allowed.
func (b *Booking) Cancel() {
	b.Status = StatusCancelled
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}
