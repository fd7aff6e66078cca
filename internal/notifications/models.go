package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingApproved  NotificationType = "BOOKING_APPROVED"
	NotificationTypeBookingFailed    NotificationType = "BOOKING_FAILED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

// BookingNotification is the message published when a booking reaches a
// terminal status. Downstream consumers fan it out to delivery channels.
type BookingNotification struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`

	UserID    uuid.UUID `json:"user_id"`
	BookingID uuid.UUID `json:"booking_id"`
	EventID   uuid.UUID `json:"event_id"`

	SlotName   string  `json:"slot_name"`
	Date       string  `json:"date"`
	NumSeats   int     `json:"num_seats"`
	TotalPrice float64 `json:"total_price"`

	BookingStatus string    `json:"booking_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewBookingNotification builds a notification for a booking status change.
func NewBookingNotification(notType NotificationType, userID, bookingID, eventID uuid.UUID) *BookingNotification {
	return &BookingNotification{
		ID:        uuid.New(),
		Type:      notType,
		Priority:  GetDefaultPriority(notType),
		UserID:    userID,
		BookingID: bookingID,
		EventID:   eventID,
		CreatedAt: time.Now(),
	}
}

func GetDefaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypeBookingApproved:
		return NotificationPriorityHigh
	case NotificationTypeBookingFailed:
		return NotificationPriorityHigh
	case NotificationTypeBookingCancelled:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityMedium
	}
}

// GetPartitionKey keys messages by user so one user's notifications stay
// ordered within a partition.
func (bn *BookingNotification) GetPartitionKey() string {
	return bn.UserID.String()
}

func (bn *BookingNotification) ToJSON() ([]byte, error) {
	return json.Marshal(bn)
}
