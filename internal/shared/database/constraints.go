package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes and constraints the capacity queries rely on
func MigrateConstraints(db *gorm.DB) error {
	// One slot document per event; hold and availability lookups key on it
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_event_slot_per_event
		ON event_slots (event_id);
	`).Error
	if err != nil {
		return err
	}

	// Approved-seats sums filter on exactly these columns
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_capacity_cell
		ON bookings (event_id, date, slot_name, status);
	`).Error
	if err != nil {
		return err
	}

	// Repeat-booking gate looks up the latest booking per user and event
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_event
		ON bookings (user_id, event_id, num_seats, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
