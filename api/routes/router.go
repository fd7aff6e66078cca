// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"eventbook/internal/bookings"
	"eventbook/internal/events"
	"eventbook/internal/notifications"
	"eventbook/internal/shared/config"
	"eventbook/internal/shared/database"
	"eventbook/internal/slots"
	"eventbook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	producer     notifications.Producer

	slotService  slots.Service  // For dependency injection into bookings
	eventService events.Service // For the background event sweep
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	r := &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}

	if db.Redis != nil {
		r.cacheService = cache.NewService(db.Redis)
	}

	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Setup event routes
		r.setupEventRoutes(api)

		// Setup slot routes (must be before booking routes for dependency injection)
		r.setupSlotRoutes(api)

		// Setup booking routes
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "eventbook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "eventbook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)
	eventController := events.NewController(eventService)

	// Store event service for the background sweep
	r.eventService = eventService

	events.SetupEventRoutes(rg, eventController)
}

// setupSlotRoutes configures slot and hold routes
func (r *Router) setupSlotRoutes(rg *gin.RouterGroup) {
	slotRepo := slots.NewRepository(r.db.GetPostgreSQL())
	slotService := slots.NewService(slotRepo, r.config)

	// Inject cache service dependency
	if r.cacheService != nil {
		slotService.SetCacheService(r.cacheService)
	}

	// Store slot service for dependency injection
	r.slotService = slotService

	slotController := slots.NewController(slotService)
	slots.SetupSlotRoutes(rg, slotController)
}

// setupBookingRoutes configures booking management routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, bookings.NewSlotServiceAdapter(r.slotService))

	// Inject notification publisher when Kafka is configured
	if r.producer != nil {
		bookingService.SetNotifier(notifications.NewBookingNotifier(r.producer))
	}

	bookingController := bookings.NewController(bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)
}

// SlotService exposes the slot service for background jobs
func (r *Router) SlotService() slots.Service {
	return r.slotService
}

// EventService exposes the event service for background jobs
func (r *Router) EventService() events.Service {
	return r.eventService
}
