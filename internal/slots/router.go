package slots

import (
	"eventbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSlotRoutes configures slot and hold routes
func SetupSlotRoutes(rg *gin.RouterGroup, controller *Controller) {

	// HOLD OPERATIONS (booking flow)

	slots := rg.Group("/slots")
	slots.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		slots.POST("/hold", controller.HoldSeats)                            // POST /api/v1/slots/hold
		slots.DELETE("/hold/:eventId/:bookingId", controller.ReleaseHold)    // DELETE /api/v1/slots/hold/:eventId/:bookingId
	}

	// AVAILABILITY AND SLOT CONFIGURATION READS

	events := rg.Group("/events")
	{
		events.GET("/:eventId/availability", controller.GetAvailability) // GET /api/v1/events/:eventId/availability?date=X&slot=Y
		events.GET("/:eventId/slots", controller.GetSlotData)            // GET /api/v1/events/:eventId/slots
	}

	// ADMIN SLOT EDITING

	adminEvents := rg.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.PUT("/:eventId/slots", controller.UpdateSlotData) // PUT /api/v1/admin/events/:eventId/slots
	}
}
