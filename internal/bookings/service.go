package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbook/pkg/logger"

	"github.com/google/uuid"
)

// SlotService is the slice of the slot subsystem bookings depend on. Holds
// are keyed by booking ID so the same booking can never hold seats twice.
type SlotService interface {
	Hold(ctx context.Context, eventID, bookingID, slotName, date string, numSeats int) (bool, string, error)
	Release(ctx context.Context, eventID, bookingID string) (bool, string, error)
	SlotPrice(ctx context.Context, eventID uuid.UUID, date, slotName string) (float64, error)
}

// Notifier publishes booking lifecycle events. Implementations must be safe
// for concurrent use.
type Notifier interface {
	NotifyBookingStatus(ctx context.Context, booking *Booking) error
}

type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error)
	FailBooking(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error

	CheckExistingBooking(ctx context.Context, userID, eventID uuid.UUID, numSeats int) (bool, string, *Booking, error)

	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) (*PaginatedBookings, error)

	SetNotifier(n Notifier)
}

type service struct {
	repo     Repository
	slots    SlotService
	notifier Notifier
}

func NewService(repo Repository, slots SlotService) Service {
	return &service{
		repo:  repo,
		slots: slots,
	}
}

// SetNotifier wires an optional notification publisher. Booking flows work
// without one.
func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

// CheckExistingBooking decides whether a user may start another booking for
// the same event and seat count, based on the status of their latest matching
// booking. Returns (canBook, reason, latest matching booking).
func (s *service) CheckExistingBooking(ctx context.Context, userID, eventID uuid.UUID, numSeats int) (bool, string, *Booking, error) {
	existing, err := s.repo.GetLatestBooking(ctx, userID, eventID, numSeats)
	if err != nil {
		return false, "", nil, fmt.Errorf("failed to check existing booking: %w", err)
	}

	if existing == nil {
		return true, "no existing booking", nil, nil
	}

	switch existing.Status {
	case StatusApproved:
		return true, "previous booking approved, can book more tickets", existing, nil
	case StatusProcessing:
		return false, "booking already under processing, wait for approval", existing, nil
	case StatusFailed:
		return true, "previous booking failed, can create new booking", existing, nil
	case StatusCancelled:
		return true, "previous booking cancelled, can create new booking", existing, nil
	default:
		return false, fmt.Sprintf("existing booking with status: %s", existing.Status), existing, nil
	}
}

// CreateBooking holds seats first, then records the booking as PROCESSING.
// If the insert fails after the hold succeeded, the hold is released so the
// seats are not stranded until expiry.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.New("invalid event ID")
	}

	canBook, reason, _, err := s.CheckExistingBooking(ctx, userID, eventID, req.NumSeats)
	if err != nil {
		return nil, err
	}
	if !canBook {
		return nil, errors.New(reason)
	}

	price, err := s.slots.SlotPrice(ctx, eventID, req.Date, req.SlotName)
	if err != nil {
		return nil, err
	}

	bookingID := uuid.New()

	held, message, err := s.slots.Hold(ctx, req.EventID, bookingID.String(), req.SlotName, req.Date, req.NumSeats)
	if err != nil {
		return nil, fmt.Errorf("failed to hold seats: %w", err)
	}
	if !held {
		return nil, errors.New(message)
	}

	booking := &Booking{
		ID:           bookingID,
		UserID:       userID,
		EventID:      eventID,
		SlotName:     req.SlotName,
		Date:         req.Date,
		NumSeats:     req.NumSeats,
		PricePerSeat: price,
		TotalPrice:   price * float64(req.NumSeats),
		Status:       StatusProcessing,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		// Compensate: the hold belongs to a booking that will never exist.
		if _, _, relErr := s.slots.Release(ctx, req.EventID, bookingID.String()); relErr != nil {
			logger.GetDefault().ErrorWithContext(ctx, "failed to release hold after booking insert error", relErr,
				map[string]interface{}{"booking_id": bookingID.String(), "event_id": req.EventID})
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.GetDefault().LogBookingCreated(ctx, bookingID.String(), userID.String(), req.EventID, req.NumSeats)

	resp := booking.ToResponse()
	return &resp, nil
}

// ConfirmBooking moves a PROCESSING booking to APPROVED and releases its
// hold; from then on the seats count through the approved-bookings sum.
func (s *service) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error) {
	return s.finalizeBooking(ctx, bookingID, StatusApproved)
}

// FailBooking moves a PROCESSING booking to FAILED and releases its hold,
// returning the seats to the available pool immediately.
func (s *service) FailBooking(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error) {
	return s.finalizeBooking(ctx, bookingID, StatusFailed)
}

func (s *service) finalizeBooking(ctx context.Context, bookingID uuid.UUID, target Status) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, errors.New("booking not found")
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("cannot move booking from %s to %s", booking.Status, target)
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, target, nil); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if _, _, err := s.slots.Release(ctx, booking.EventID.String(), bookingID.String()); err != nil {
		// The hold expires on its own; log and keep going.
		logger.GetDefault().ErrorWithContext(ctx, "failed to release hold on finalize", err,
			map[string]interface{}{"booking_id": bookingID.String(), "status": target.String()})
	}

	booking.Status = target
	logger.GetDefault().LogBookingStatusChanged(ctx, bookingID.String(), StatusProcessing.String(), target.String())
	s.notify(ctx, booking)

	resp := booking.ToResponse()
	return &resp, nil
}

// CancelBooking cancels a user's own PROCESSING booking and releases its
// hold. Approved bookings cannot be cancelled through this subsystem.
func (s *service) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return errors.New("booking not found")
	}

	if booking.UserID != userID {
		return errors.New("booking does not belong to user")
	}

	if !booking.Status.CanTransitionTo(StatusCancelled) {
		return fmt.Errorf("cannot cancel booking with status %s", booking.Status)
	}

	now := time.Now()
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, StatusCancelled, &now); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if _, _, err := s.slots.Release(ctx, booking.EventID.String(), bookingID.String()); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to release hold on cancel", err,
			map[string]interface{}{"booking_id": bookingID.String()})
	}

	booking.Status = StatusCancelled
	booking.CancelledAt = &now
	logger.GetDefault().LogBookingStatusChanged(ctx, bookingID.String(), StatusProcessing.String(), StatusCancelled.String())
	s.notify(ctx, booking)

	return nil
}

func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetBookingByID(ctx, bookingID)
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) (*PaginatedBookings, error) {
	bookings, total, err := s.repo.GetUserBookings(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

func (s *service) notify(ctx context.Context, booking *Booking) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyBookingStatus(ctx, booking); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to publish booking notification", err,
			map[string]interface{}{"booking_id": booking.ID.String()})
	}
}
