package slots

import (
	"net/http"

	"eventbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// HoldSeats handles POST /api/v1/slots/hold
func (c *Controller) HoldSeats(ctx *gin.Context) {
	var req HoldSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	held, message, err := c.service.Hold(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to hold seats", nil, err.Error())
		return
	}

	result := HoldSeatsResponse{Success: held, Message: message}
	if !held {
		// Business denial, not a server fault
		response.RespondJSON(ctx, "error", http.StatusConflict, message, result, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, message, result, nil)
}

// ReleaseHold handles DELETE /api/v1/slots/hold/:eventId/:bookingId
func (c *Controller) ReleaseHold(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	bookingID := ctx.Param("bookingId")

	ok, message, err := c.service.Release(ctx.Request.Context(), eventID, bookingID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to release held seats", nil, err.Error())
		return
	}

	result := HoldSeatsResponse{Success: ok, Message: message}
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusNotFound, message, result, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, message, result, nil)
}

// GetAvailability handles GET /api/v1/events/:eventId/availability?date=YYYY-MM-DD&slot=slot_1
func (c *Controller) GetAvailability(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	date := ctx.Query("date")
	slotName := ctx.Query("slot")

	if date == "" || slotName == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "date and slot query parameters are required", nil, nil)
		return
	}

	availability, err := c.service.Availability(ctx.Request.Context(), eventID, date, slotName)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Failed to get availability", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", availability, nil)
}

// GetSlotData handles GET /api/v1/events/:eventId/slots
func (c *Controller) GetSlotData(ctx *gin.Context) {
	slotData, err := c.service.GetSlotData(ctx.Request.Context(), ctx.Param("eventId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Failed to get slot data", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slot data retrieved successfully", slotData, nil)
}

// UpdateSlotData handles PUT /api/v1/admin/events/:eventId/slots
//
// The request body carries a partial document; it is deep-merged into the
// stored one so sibling dates, slots, and fields survive the update.
func (c *Controller) UpdateSlotData(ctx *gin.Context) {
	var req UpdateSlotDataRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	slotData, err := c.service.UpdateSlotData(ctx.Request.Context(), ctx.Param("eventId"), req.SlotData)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to update slot data", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slot data updated successfully", slotData, nil)
}
