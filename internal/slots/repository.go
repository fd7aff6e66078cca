package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbook/internal/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Reads
	GetSlotByEventID(ctx context.Context, eventID uuid.UUID) (*EventSlot, error)
	ApprovedSeatsCount(ctx context.Context, eventID uuid.UUID, date, slotName string) (int, error)
	SlotIDsWithHeldSeats(ctx context.Context) ([]uuid.UUID, error)

	// Hold lifecycle. Each call is one transaction that row-locks the slot
	// record before touching either document.
	HoldSeats(ctx context.Context, eventID uuid.UUID, bookingID, slotName, date string, numSeats int, ttl time.Duration) (bool, string, error)
	ReleaseHeldSeats(ctx context.Context, eventID uuid.UUID, bookingID string) (bool, string, error)
	CleanupExpiredHolds(ctx context.Context, slotID uuid.UUID, ttl time.Duration) (int, error)

	// Slot configuration
	MergeSlotData(ctx context.Context, eventID uuid.UUID, incoming SlotDocument) (*EventSlot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetSlotByEventID(ctx context.Context, eventID uuid.UUID) (*EventSlot, error) {
	var slot EventSlot
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// ApprovedSeatsCount sums the seats of APPROVED bookings for one capacity
// cell. Approved bookings count against capacity permanently, unlike holds.
func (r *repository) ApprovedSeatsCount(ctx context.Context, eventID uuid.UUID, date, slotName string) (int, error) {
	return approvedSeats(r.db.WithContext(ctx), eventID, date, slotName)
}

func approvedSeats(tx *gorm.DB, eventID uuid.UUID, date, slotName string) (int, error) {
	var count int
	err := tx.Table("bookings").
		Where("event_id = ? AND date = ? AND slot_name = ? AND status = 'APPROVED'",
			eventID, date, slotName).
		Select("COALESCE(SUM(num_seats), 0)").
		Scan(&count).Error
	return count, err
}

func (r *repository) SlotIDsWithHeldSeats(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&EventSlot{}).
		Where("held_seats IS NOT NULL AND held_seats::text <> '{}'").
		Pluck("id", &ids).Error
	return ids, err
}

// HoldSeats places a temporary hold on numSeats in the (date, slotName) cell
// of the event's slot record. The whole flow runs in one transaction with the
// slot row locked FOR UPDATE, so two concurrent holds on the same row are
// serialized and cannot both pass the capacity check. Expired holds are
// pruned first so reclaimed capacity is visible to this attempt.
func (r *repository) HoldSeats(ctx context.Context, eventID uuid.UUID, bookingID, slotName, date string, numSeats int, ttl time.Duration) (bool, string, error) {
	held := false
	message := ""

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event events.Event
		if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				message = "event not found"
				return nil
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		if !event.Status.IsBookable() {
			message = "event is not open for booking"
			return nil
		}
		if event.HasEnded(time.Now()) {
			message = "event has already ended"
			return nil
		}

		var slot EventSlot
		if err := lockForUpdate(tx).
			Where("event_id = ?", eventID).
			First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				message = "event slot not found"
				return nil
			}
			return fmt.Errorf("failed to lock slot record: %w", err)
		}

		if slot.HeldSeats == nil {
			slot.HeldSeats = make(HoldDocument)
		}

		now := time.Now()
		pruned := slot.HeldSeats.PruneExpired(now.Add(-ttl))

		approved, err := approvedSeats(tx, eventID, date, slotName)
		if err != nil {
			return fmt.Errorf("failed to count approved seats: %w", err)
		}

		canHold, reason := CanHold(slot.SlotData, slot.HeldSeats, approved, date, slotName, numSeats)
		if !canHold {
			// Keep the pruning even when the hold is denied; the freed
			// capacity belongs to everyone.
			if pruned > 0 {
				if err := saveHeldSeats(tx, slot.ID, slot.HeldSeats); err != nil {
					return err
				}
			}
			message = reason
			return nil
		}

		slot.HeldSeats.AddHold(date, slotName, bookingID, numSeats, now)
		if err := saveHeldSeats(tx, slot.ID, slot.HeldSeats); err != nil {
			return err
		}

		held = true
		message = fmt.Sprintf("successfully held %d seats", numSeats)
		return nil
	})
	if err != nil {
		return false, "", err
	}

	return held, message, nil
}

// ReleaseHeldSeats removes every hold belonging to bookingID across all cells
// of the event's slot record. Releasing a booking that holds nothing is a
// successful no-op.
func (r *repository) ReleaseHeldSeats(ctx context.Context, eventID uuid.UUID, bookingID string) (bool, string, error) {
	released := 0
	message := ""
	ok := true

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event events.Event
		if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ok = false
				message = "event not found"
				return nil
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		var slot EventSlot
		if err := lockForUpdate(tx).
			Where("event_id = ?", eventID).
			First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				message = "no held seats found"
				return nil
			}
			return fmt.Errorf("failed to lock slot record: %w", err)
		}

		if slot.HeldSeats.IsEmpty() {
			message = "no held seats found"
			return nil
		}

		released = slot.HeldSeats.RemoveBooking(bookingID)
		if released == 0 {
			message = "no held seats found for this booking"
			return nil
		}

		if err := saveHeldSeats(tx, slot.ID, slot.HeldSeats); err != nil {
			return err
		}

		message = fmt.Sprintf("released %d held seats", released)
		return nil
	})
	if err != nil {
		return false, "", err
	}

	return ok, message, nil
}

// CleanupExpiredHolds removes holds strictly older than ttl from one slot
// record and returns how many were removed. Runs as its own transaction with
// the row locked.
func (r *repository) CleanupExpiredHolds(ctx context.Context, slotID uuid.UUID, ttl time.Duration) (int, error) {
	removed := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot EventSlot
		if err := lockForUpdate(tx).
			Where("id = ?", slotID).
			First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to lock slot record: %w", err)
		}

		if slot.HeldSeats.IsEmpty() {
			return nil
		}

		removed = slot.HeldSeats.PruneExpired(time.Now().Add(-ttl))
		if removed == 0 {
			return nil
		}

		return saveHeldSeats(tx, slot.ID, slot.HeldSeats)
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// MergeSlotData deep-merges a partial slot-data update into the stored
// document, creating the slot record when the event's slots are defined for
// the first time. The row is locked so a concurrent hold cannot interleave
// with the rewrite.
func (r *repository) MergeSlotData(ctx context.Context, eventID uuid.UUID, incoming SlotDocument) (*EventSlot, error) {
	var result *EventSlot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot EventSlot
		err := lockForUpdate(tx).
			Where("event_id = ?", eventID).
			First(&slot).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			slot = EventSlot{
				EventID:   eventID,
				SlotData:  Merge(nil, incoming),
				HeldSeats: make(HoldDocument),
			}
			if err := tx.Create(&slot).Error; err != nil {
				return fmt.Errorf("failed to create slot record: %w", err)
			}
			result = &slot
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to lock slot record: %w", err)
		}

		slot.SlotData = Merge(slot.SlotData, incoming)
		if err := tx.Model(&EventSlot{}).
			Where("id = ?", slot.ID).
			Updates(map[string]interface{}{
				"slot_data":  slot.SlotData,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return fmt.Errorf("failed to update slot data: %w", err)
		}

		result = &slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// lockForUpdate appends a FOR UPDATE row lock to the query. Every hold,
// release, cleanup, and merge transaction goes through this before reading the
// slot record, so concurrent writers to the same row serialize.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func saveHeldSeats(tx *gorm.DB, slotID uuid.UUID, doc HoldDocument) error {
	if err := tx.Model(&EventSlot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{
			"held_seats": doc,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update held seats: %w", err)
	}
	return nil
}
