package bookings

import (
	"eventbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Booking routes
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		bookings.POST("", controller.CreateBooking)            // POST /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		bookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
	}

	// Approval transitions are admin-only; in production a payment callback
	// or back-office tool drives these.
	adminBookings := rg.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBookings.POST("/:id/confirm", controller.ConfirmBooking) // POST /api/v1/admin/bookings/:id/confirm
		adminBookings.POST("/:id/fail", controller.FailBooking)       // POST /api/v1/admin/bookings/:id/fail
	}

	// User-specific booking routes
	users := rg.Group("/users")
	users.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		users.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}
}
