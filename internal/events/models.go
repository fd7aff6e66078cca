package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the bookable entity. Slot capacity and holds live in the
// event_slots row owned by the slots package; the event carries lifecycle
// status and the date range bookings are allowed in.
type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Venue       string    `json:"venue" gorm:"size:255"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	Status      Status    `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

// HasEnded reports whether the event's end date lies before the given day.
// Comparison is by calendar date, not instant: an event ending today still
// accepts bookings.
func (e *Event) HasEnded(now time.Time) bool {
	endDay := e.EndDate.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)
	return endDay.Before(today)
}

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=255"`
	Description string    `json:"description" binding:"max=2000"`
	Venue       string    `json:"venue" binding:"max=255"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToResponse converts an Event to its API representation.
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
		Venue:       e.Venue,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
