package events

import (
	"eventbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupEventRoutes configures event routes
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	events := rg.Group("/events")
	{
		events.GET("", controller.ListEvents)          // GET /api/v1/events
		events.GET("/:eventId", controller.GetEvent)   // GET /api/v1/events/:eventId
	}

	adminEvents := rg.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)                            // POST /api/v1/admin/events
		adminEvents.POST("/:eventId/deactivate", controller.DeactivateEvent)    // POST /api/v1/admin/events/:eventId/deactivate
	}
}
