package events

import (
	"net/http"

	"eventbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateEvent handles POST /api/v1/admin/events
func (c *Controller) CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	createdBy := uuid.Nil
	if userID, exists := ctx.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			if parsed, err := uuid.Parse(userIDStr); err == nil {
				createdBy = parsed
			}
		}
	}

	event, err := c.service.CreateEvent(ctx.Request.Context(), createdBy, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create event", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Event created successfully", event, nil)
}

// GetEvent handles GET /api/v1/events/:eventId
func (c *Controller) GetEvent(ctx *gin.Context) {
	event, err := c.service.GetEvent(ctx.Request.Context(), ctx.Param("eventId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

// ListEvents handles GET /api/v1/events
func (c *Controller) ListEvents(ctx *gin.Context) {
	list, err := c.service.ListActiveEvents(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list events", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Events retrieved successfully", list, nil)
}

// DeactivateEvent handles POST /api/v1/admin/events/:eventId/deactivate
func (c *Controller) DeactivateEvent(ctx *gin.Context) {
	if err := c.service.DeactivateEvent(ctx.Request.Context(), ctx.Param("eventId")); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to deactivate event", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event deactivated", nil, nil)
}
