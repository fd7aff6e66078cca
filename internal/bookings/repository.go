package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Core booking operations
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error

	// Gating query for repeat booking attempts
	GetLatestBooking(ctx context.Context, userID, eventID uuid.UUID, numSeats int) (*Booking, error)

	// User booking operations
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error)

	// Admin operations
	GetBookingsByEventID(ctx context.Context, eventID uuid.UUID) ([]Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}

	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// GetLatestBooking returns the most recent booking a user made for the same
// event and seat count, or nil when no such booking exists.
func (r *repository) GetLatestBooking(ctx context.Context, userID, eventID uuid.UUID, numSeats int) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ? AND num_seats = ?", userID, eventID, numSeats).
		Order("created_at DESC").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) GetBookingsByEventID(ctx context.Context, eventID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&bookings).Error

	return bookings, err
}
