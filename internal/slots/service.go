package slots

import (
	"context"
	"errors"
	"fmt"

	"eventbook/internal/shared/config"
	"eventbook/internal/shared/constants"
	"eventbook/pkg/cache"
	"eventbook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	// Hold lifecycle
	Hold(ctx context.Context, req HoldSeatsRequest) (bool, string, error)
	Release(ctx context.Context, eventID, bookingID string) (bool, string, error)
	CleanupExpiredHolds(ctx context.Context, slotID uuid.UUID) (int, error)
	CleanupAllExpiredHolds(ctx context.Context) (int, error)

	// Availability reads
	Availability(ctx context.Context, eventID, date, slotName string) (*AvailabilityResponse, error)
	HeldSeatsCount(ctx context.Context, eventID, date, slotName string) (int, error)
	SlotPrice(ctx context.Context, eventID, date, slotName string) (float64, error)

	// Slot configuration
	GetSlotData(ctx context.Context, eventID string) (*SlotDataResponse, error)
	UpdateSlotData(ctx context.Context, eventID string, incoming SlotDocument) (*SlotDataResponse, error)

	// Dependency injection
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	config       *config.Config
	cacheService cache.Service
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		config: cfg,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

//  HOLD LIFECYCLE

func (s *service) Hold(ctx context.Context, req HoldSeatsRequest) (bool, string, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return false, "", fmt.Errorf("invalid event ID: %w", err)
	}
	if req.NumSeats <= 0 {
		return false, "number of seats must be positive", nil
	}

	held, message, err := s.repo.HoldSeats(ctx, eventID, req.BookingID, req.SlotName, req.Date, req.NumSeats, s.config.Holds.TTL)
	if err != nil {
		return false, "", fmt.Errorf("failed to hold seats: %w", err)
	}

	if held {
		logger.GetDefault().LogHoldCreated(ctx, req.BookingID, req.EventID, req.SlotName, req.Date, req.NumSeats)
		s.invalidateAvailability(ctx, req.EventID)
	}

	return held, message, nil
}

func (s *service) Release(ctx context.Context, eventIDStr, bookingID string) (bool, string, error) {
	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return false, "", fmt.Errorf("invalid event ID: %w", err)
	}

	ok, message, err := s.repo.ReleaseHeldSeats(ctx, eventID, bookingID)
	if err != nil {
		return false, "", fmt.Errorf("failed to release held seats: %w", err)
	}

	if ok {
		logger.GetDefault().LogHoldReleased(ctx, bookingID, eventIDStr, message)
		s.invalidateAvailability(ctx, eventIDStr)
	}

	return ok, message, nil
}

func (s *service) CleanupExpiredHolds(ctx context.Context, slotID uuid.UUID) (int, error) {
	removed, err := s.repo.CleanupExpiredHolds(ctx, slotID, s.config.Holds.TTL)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up expired holds: %w", err)
	}
	return removed, nil
}

// CleanupAllExpiredHolds sweeps every slot record carrying held seats. Called
// periodically by the hold sweeper so abandoned holds stop counting against
// capacity even when no new booking traffic touches the slot.
func (s *service) CleanupAllExpiredHolds(ctx context.Context) (int, error) {
	slotIDs, err := s.repo.SlotIDsWithHeldSeats(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list slot records with holds: %w", err)
	}

	total := 0
	for _, slotID := range slotIDs {
		removed, err := s.repo.CleanupExpiredHolds(ctx, slotID, s.config.Holds.TTL)
		if err != nil {
			logger.GetDefault().ErrorWithContext(ctx, "expired hold cleanup failed for slot record", err,
				map[string]interface{}{"slot_id": slotID.String()})
			continue
		}
		total += removed
	}

	if total > 0 {
		logger.GetDefault().LogHoldsExpired(ctx, total)
	}
	return total, nil
}

//  AVAILABILITY READS

func (s *service) Availability(ctx context.Context, eventIDStr, date, slotName string) (*AvailabilityResponse, error) {
	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	cacheKey := constants.BuildSlotAvailabilityKey(eventIDStr, date, slotName)
	if s.cacheService != nil {
		var cached AvailabilityResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	slot, err := s.repo.GetSlotByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event slot not found")
		}
		return nil, fmt.Errorf("failed to load slot record: %w", err)
	}

	fields, ok := slot.SlotData.Definition(date, slotName)
	if !ok {
		return nil, fmt.Errorf("%w: slot %s for date %s", ErrSlotNotFound, slotName, date)
	}

	approved, err := s.repo.ApprovedSeatsCount(ctx, eventID, date, slotName)
	if err != nil {
		return nil, fmt.Errorf("failed to count approved seats: %w", err)
	}

	available, err := Available(slot.SlotData, slot.HeldSeats, approved, date, slotName)
	if err != nil {
		return nil, err
	}
	if available < 0 {
		available = 0
	}

	resp := &AvailabilityResponse{
		EventID:        eventIDStr,
		Date:           date,
		SlotName:       slotName,
		Capacity:       fields.Capacity(),
		HeldSeats:      slot.HeldSeats.HeldSeats(date, slotName),
		ApprovedSeats:  approved,
		AvailableSeats: available,
		Price:          fields.Price(),
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, resp, constants.TTL_SLOT_AVAILABILITY); err != nil {
			logger.GetDefault().DebugWithContext(ctx, "failed to cache slot availability",
				map[string]interface{}{"key": cacheKey, "error": err.Error()})
		}
	}

	return resp, nil
}

func (s *service) HeldSeatsCount(ctx context.Context, eventIDStr, date, slotName string) (int, error) {
	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return 0, fmt.Errorf("invalid event ID: %w", err)
	}

	slot, err := s.repo.GetSlotByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load slot record: %w", err)
	}

	return slot.HeldSeats.HeldSeats(date, slotName), nil
}

func (s *service) SlotPrice(ctx context.Context, eventIDStr, date, slotName string) (float64, error) {
	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return 0, fmt.Errorf("invalid event ID: %w", err)
	}

	slot, err := s.repo.GetSlotByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("event slot not found")
		}
		return 0, fmt.Errorf("failed to load slot record: %w", err)
	}

	fields, ok := slot.SlotData.Definition(date, slotName)
	if !ok {
		return 0, fmt.Errorf("%w: slot %s for date %s", ErrSlotNotFound, slotName, date)
	}

	return fields.Price(), nil
}

//  SLOT CONFIGURATION

func (s *service) GetSlotData(ctx context.Context, eventIDStr string) (*SlotDataResponse, error) {
	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	cacheKey := constants.BuildSlotDataKey(eventIDStr)
	if s.cacheService != nil {
		var cached SlotDataResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	slot, err := s.repo.GetSlotByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event slot not found")
		}
		return nil, fmt.Errorf("failed to load slot record: %w", err)
	}

	resp := &SlotDataResponse{
		EventID:  eventIDStr,
		SlotData: slot.SlotData,
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, resp, constants.TTL_SLOT_DATA); err != nil {
			logger.GetDefault().DebugWithContext(ctx, "failed to cache slot data",
				map[string]interface{}{"key": cacheKey, "error": err.Error()})
		}
	}

	return resp, nil
}

func (s *service) UpdateSlotData(ctx context.Context, eventIDStr string, incoming SlotDocument) (*SlotDataResponse, error) {
	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}
	if len(incoming) == 0 {
		return nil, fmt.Errorf("slot data cannot be empty")
	}

	slot, err := s.repo.MergeSlotData(ctx, eventID, incoming)
	if err != nil {
		return nil, fmt.Errorf("failed to merge slot data: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Delete(ctx, constants.BuildSlotDataKey(eventIDStr)); err != nil {
			logger.GetDefault().DebugWithContext(ctx, "failed to invalidate slot data cache",
				map[string]interface{}{"event_id": eventIDStr, "error": err.Error()})
		}
	}
	s.invalidateAvailability(ctx, eventIDStr)

	return &SlotDataResponse{
		EventID:  eventIDStr,
		SlotData: slot.SlotData,
	}, nil
}

func (s *service) invalidateAvailability(ctx context.Context, eventID string) {
	if s.cacheService == nil {
		return
	}
	pattern := constants.BuildEventAvailabilityPattern(eventID)
	if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
		logger.GetDefault().DebugWithContext(ctx, "failed to invalidate availability cache",
			map[string]interface{}{"pattern": pattern, "error": err.Error()})
	}
}
