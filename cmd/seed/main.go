package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"eventbook/internal/bookings"
	"eventbook/internal/events"
	"eventbook/internal/shared/config"
	"eventbook/internal/shared/database"
	"eventbook/internal/slots"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Eventbook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seeder.Seed(ctx); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Println("✅ Seeding complete")
}

func (s *Seeder) Seed(ctx context.Context) error {
	adminID := uuid.New()
	userID := uuid.New()

	event := events.Event{
		ID:          uuid.New(),
		Name:        "Summer Music Festival",
		Description: "Three day open air festival with two stages",
		Venue:       "Riverside Park",
		StartDate:   time.Now().AddDate(0, 0, 14),
		EndDate:     time.Now().AddDate(0, 0, 16),
		Status:      events.StatusActive,
		CreatedBy:   adminID,
	}

	if err := s.db.PostgreSQL.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to seed event: %w", err)
	}
	fmt.Printf("  created event %s (%s)\n", event.Name, event.ID)

	day1 := event.StartDate.Format("2006-01-02")
	day2 := event.StartDate.AddDate(0, 0, 1).Format("2006-01-02")

	slotData := slots.SlotDocument{
		day1: map[string]interface{}{
			"morning": map[string]interface{}{
				"capacity":   200,
				"price":      49.99,
				"start_time": "10:00",
				"end_time":   "14:00",
			},
			"evening": map[string]interface{}{
				"capacity":   350,
				"price":      79.99,
				"start_time": "18:00",
				"end_time":   "23:00",
			},
		},
		day2: map[string]interface{}{
			"evening": map[string]interface{}{
				"capacity":   350,
				"price":      89.99,
				"start_time": "18:00",
				"end_time":   "23:00",
			},
		},
	}

	slot := slots.EventSlot{
		ID:        uuid.New(),
		EventID:   event.ID,
		SlotData:  slotData,
		HeldSeats: slots.HoldDocument{},
	}

	if err := s.db.PostgreSQL.WithContext(ctx).Create(&slot).Error; err != nil {
		return fmt.Errorf("failed to seed event slots: %w", err)
	}
	fmt.Printf("  created slot document for %d dates\n", len(slotData))

	booking := bookings.Booking{
		ID:           uuid.New(),
		UserID:       userID,
		EventID:      event.ID,
		SlotName:     "evening",
		Date:         day1,
		NumSeats:     2,
		PricePerSeat: 79.99,
		TotalPrice:   159.98,
		Status:       bookings.StatusApproved,
	}

	if err := s.db.PostgreSQL.WithContext(ctx).Create(&booking).Error; err != nil {
		return fmt.Errorf("failed to seed booking: %w", err)
	}
	fmt.Printf("  created approved booking %s (%d seats)\n", booking.ID, booking.NumSeats)

	return nil
}
