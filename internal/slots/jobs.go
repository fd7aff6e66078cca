package slots

import (
	"context"
	"log"
	"time"
)

// HoldSweeper periodically reclaims capacity leaked by abandoned holds. The
// hold path already prunes lazily, but a slot nobody tries to book again
// would otherwise keep its expired holds forever.
type HoldSweeper struct {
	service Service
	config  *SweeperConfig
	done    chan struct{}
}

// SweeperConfig contains configuration for the background sweep
type SweeperConfig struct {
	Interval time.Duration
}

// DefaultSweeperConfig returns default sweeper configuration
func DefaultSweeperConfig() *SweeperConfig {
	return &SweeperConfig{
		Interval: 1 * time.Minute,
	}
}

// NewHoldSweeper creates a new hold sweeper
func NewHoldSweeper(service Service, config *SweeperConfig) *HoldSweeper {
	if config == nil {
		config = DefaultSweeperConfig()
	}

	return &HoldSweeper{
		service: service,
		config:  config,
		done:    make(chan struct{}),
	}
}

// Start starts the background sweep loop
func (hs *HoldSweeper) Start(ctx context.Context) {
	log.Printf("Starting expired hold sweeper with %v interval", hs.config.Interval)
	go hs.run(ctx)
}

// Stop stops the background sweep loop
func (hs *HoldSweeper) Stop() {
	log.Println("Stopping expired hold sweeper...")
	close(hs.done)
}

func (hs *HoldSweeper) run(ctx context.Context) {
	ticker := time.NewTicker(hs.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			hs.sweep(ctx)
		case <-hs.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (hs *HoldSweeper) sweep(ctx context.Context) {
	removed, err := hs.service.CleanupAllExpiredHolds(ctx)
	if err != nil {
		log.Printf("Error sweeping expired holds: %v", err)
		return
	}

	if removed > 0 {
		log.Printf("Released %d expired holds", removed)
	}
}
