package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetByStatus(ctx context.Context, status Status) ([]Event, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// MarkEndedEvents flips ACTIVE events whose end date has passed to ENDED
	// and returns the number of rows touched.
	MarkEndedEvents(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetByStatus(ctx context.Context, status Status) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *repository) MarkEndedEvents(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("status = ? AND end_date < ?", StatusActive, now.UTC().Truncate(24*time.Hour)).
		Update("status", StatusEnded)
	return result.RowsAffected, result.Error
}
