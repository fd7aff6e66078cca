package notifications

import (
	"context"
	"fmt"

	"eventbook/internal/bookings"
)

// BookingNotifier adapts the Kafka producer to the interface the booking
// service publishes through.
type BookingNotifier struct {
	producer Producer
}

func NewBookingNotifier(producer Producer) *BookingNotifier {
	return &BookingNotifier{producer: producer}
}

func (n *BookingNotifier) NotifyBookingStatus(ctx context.Context, booking *bookings.Booking) error {
	var notType NotificationType
	switch booking.Status {
	case bookings.StatusApproved:
		notType = NotificationTypeBookingApproved
	case bookings.StatusFailed:
		notType = NotificationTypeBookingFailed
	case bookings.StatusCancelled:
		notType = NotificationTypeBookingCancelled
	default:
		return fmt.Errorf("no notification defined for booking status %s", booking.Status)
	}

	notification := NewBookingNotification(notType, booking.UserID, booking.ID, booking.EventID)
	notification.SlotName = booking.SlotName
	notification.Date = booking.Date
	notification.NumSeats = booking.NumSeats
	notification.TotalPrice = booking.TotalPrice
	notification.BookingStatus = booking.Status.String()

	return n.producer.PublishBookingNotification(ctx, notification)
}
