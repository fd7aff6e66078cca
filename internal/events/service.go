package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateEvent(ctx context.Context, createdBy uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEvent(ctx context.Context, id string) (*EventResponse, error)
	ListActiveEvents(ctx context.Context) ([]EventResponse, error)
	DeactivateEvent(ctx context.Context, id string) error

	// MarkEndedEvents is called by the background sweeper so events whose end
	// date has passed stop accepting holds.
	MarkEndedEvents(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateEvent(ctx context.Context, createdBy uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("end date cannot be before start date")
	}

	event := &Event{
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      StatusActive,
		CreatedBy:   createdBy,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEvent(ctx context.Context, id string) (*EventResponse, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event not found")
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) ListActiveEvents(ctx context.Context) ([]EventResponse, error) {
	active, err := s.repo.GetByStatus(ctx, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]EventResponse, 0, len(active))
	for i := range active {
		responses = append(responses, active[i].ToResponse())
	}
	return responses, nil
}

func (s *service) DeactivateEvent(ctx context.Context, id string) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("event not found")
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	return s.repo.UpdateStatus(ctx, eventID, StatusInactive)
}

func (s *service) MarkEndedEvents(ctx context.Context) (int64, error) {
	return s.repo.MarkEndedEvents(ctx, time.Now())
}
