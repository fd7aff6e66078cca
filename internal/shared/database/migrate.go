package database

import (
	"eventbook/internal/bookings"
	"eventbook/internal/events"
	"eventbook/internal/slots"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&events.Event{},
		&slots.EventSlot{},
		&bookings.Booking{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
